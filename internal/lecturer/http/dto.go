package http

import (
	"time"

	"github.com/campushub/campus-services-backend/internal/lecturer"
)

type LecturerResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FullName   string    `json:"full_name"`
	Department string    `json:"department"`
	Office     string    `json:"office"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewLecturerResponse(l *lecturer.Lecturer) LecturerResponse {
	return LecturerResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		FirstName:  l.FirstName,
		LastName:   l.LastName,
		FullName:   l.FullName(),
		Department: l.Department,
		Office:     l.Office,
		CreatedAt:  l.CreatedAt,
	}
}

type ListLecturersQuery struct {
	Department string `form:"department"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type CreateLecturerBody struct {
	UserID     string `json:"user_id" binding:"omitempty,uuid"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
	Office     string `json:"office"`
}

type UpdateLecturerBody struct {
	UserID     *string `json:"user_id" binding:"omitempty,uuid"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Department *string `json:"department"`
	Office     *string `json:"office"`
}

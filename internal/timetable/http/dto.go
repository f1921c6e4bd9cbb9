package http

import (
	"time"

	"github.com/campushub/campus-services-backend/internal/timetable"
)

type ClassResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DayOfWeek    int       `json:"day_of_week"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	RoomID       string    `json:"room_id"`
	RoomName     string    `json:"room_name"`
	LecturerID   string    `json:"lecturer_id"`
	LecturerName string    `json:"lecturer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewClassResponse(cl *timetable.Class) ClassResponse {
	return ClassResponse{
		ID:           cl.ID,
		Name:         cl.Name,
		DayOfWeek:    int(cl.DayOfWeek),
		StartTime:    cl.Start.String(),
		EndTime:      cl.End.String(),
		RoomID:       cl.RoomID,
		RoomName:     cl.RoomName,
		LecturerID:   cl.LecturerID,
		LecturerName: cl.LecturerName,
		CreatedAt:    cl.CreatedAt,
	}
}

func newClassResponses(classes []*timetable.Class) []ClassResponse {
	items := make([]ClassResponse, 0, len(classes))
	for _, cl := range classes {
		items = append(items, NewClassResponse(cl))
	}
	return items
}

type ListClassesQuery struct {
	DayOfWeek  *int   `form:"day_of_week" binding:"omitempty,min=0,max=6"`
	RoomID     string `form:"room_id" binding:"omitempty,uuid"`
	LecturerID string `form:"lecturer_id" binding:"omitempty,uuid"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type CreateClassBody struct {
	Name       string `json:"name" binding:"required"`
	DayOfWeek  int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	RoomID     string `json:"room_id" binding:"required,uuid"`
	LecturerID string `json:"lecturer_id" binding:"required,uuid"`
}

type UpdateClassBody struct {
	Name       *string `json:"name"`
	DayOfWeek  *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	RoomID     *string `json:"room_id" binding:"omitempty,uuid"`
	LecturerID *string `json:"lecturer_id" binding:"omitempty,uuid"`
}

type EnrollBody struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
}

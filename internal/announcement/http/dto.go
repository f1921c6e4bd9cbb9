package http

import (
	"time"

	"github.com/campushub/campus-services-backend/internal/announcement"
)

type AnnouncementResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Audience     string    `json:"audience"`
	PostedBy     string    `json:"posted_by"`
	PostedByName string    `json:"posted_by_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewAnnouncementResponse(a *announcement.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:           a.ID,
		Title:        a.Title,
		Content:      a.Content,
		Audience:     string(a.Audience),
		PostedBy:     a.PostedBy,
		PostedByName: a.PostedByName,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

type ListAnnouncementsQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

type CreateAnnouncementBody struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Audience string `json:"audience" binding:"omitempty,oneof=all students lecturers"`
}

type UpdateAnnouncementBody struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Audience *string `json:"audience" binding:"omitempty,oneof=all students lecturers"`
}

package http

import (
	"time"

	"github.com/campushub/campus-services-backend/internal/maintenance"
)

type PhotoResponse struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewPhotoResponse(p *maintenance.Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:          p.ID,
		Filename:    p.Filename,
		ContentType: p.ContentType,
		Size:        p.Size,
		URL:         "/maintenance/photos/" + p.ID,
		CreatedAt:   p.CreatedAt,
	}
	if p.ThumbnailPath != nil {
		resp.Thumbnail = "/maintenance/photos/" + p.ID + "/thumbnail"
	}
	return resp
}

type RequestResponse struct {
	ID            string          `json:"id"`
	RoomID        string          `json:"room_id"`
	RoomName      string          `json:"room_name"`
	RequesterID   string          `json:"requester_id"`
	RequesterName string          `json:"requester_name"`
	Description   string          `json:"description"`
	Priority      string          `json:"priority"`
	Status        string          `json:"status"`
	AdminFeedback string          `json:"admin_feedback,omitempty"`
	Photos        []PhotoResponse `json:"photos"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewRequestResponse(m *maintenance.Request) RequestResponse {
	photos := make([]PhotoResponse, 0, len(m.Photos))
	for _, p := range m.Photos {
		photos = append(photos, NewPhotoResponse(p))
	}

	return RequestResponse{
		ID:            m.ID,
		RoomID:        m.RoomID,
		RoomName:      m.RoomName,
		RequesterID:   m.RequesterID,
		RequesterName: m.RequesterName,
		Description:   m.Description,
		Priority:      string(m.Priority),
		Status:        string(m.Status),
		AdminFeedback: m.AdminFeedback,
		Photos:        photos,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type CreateRequestBody struct {
	RoomID      string `json:"room_id" binding:"required,uuid"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type UpdateStatusBody struct {
	Status        string `json:"status" binding:"required,oneof=pending in_progress resolved rejected"`
	AdminFeedback string `json:"admin_feedback"`
}

type ListRequestsQuery struct {
	RoomID   string `form:"room_id" binding:"omitempty,uuid"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=pending in_progress resolved rejected"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

package http

import (
	"time"

	"github.com/campushub/campus-services-backend/internal/reservation"
)

type CreateReservationBody struct {
	ResourceKind string `json:"resource_kind" binding:"required,oneof=room consultation"`
	ResourceID   string `json:"resource_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	Purpose      string `json:"purpose"`
}

type UpdateStatusBody struct {
	Status string `json:"status" binding:"required,oneof=approved rejected cancelled"`
}

// ConflictsQuery checks availability without committing anything.
type ConflictsQuery struct {
	ResourceKind string `form:"resource_kind" binding:"required,oneof=room consultation"`
	ResourceID   string `form:"resource_id" binding:"required,uuid"`
	Date         string `form:"date" binding:"required"`
	StartTime    string `form:"start_time" binding:"required"`
	EndTime      string `form:"end_time" binding:"required"`
}

type ListReservationsQuery struct {
	ResourceKind string `form:"resource_kind" binding:"omitempty,oneof=room consultation"`
	ResourceID   string `form:"resource_id" binding:"omitempty,uuid"`
	Status       string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	Date         string `form:"date"`
	UserID       string `form:"user_id" binding:"omitempty,uuid"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

type ResourceTag struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RequesterTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ReservationResponse struct {
	ID        string       `json:"id"`
	Resource  ResourceTag  `json:"resource"`
	Requester RequesterTag `json:"requester"`
	Date      string       `json:"date"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Purpose   string       `json:"purpose,omitempty"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        r.ID,
		Resource:  ResourceTag{Kind: string(r.ResourceKind), ID: r.ResourceID, Name: r.ResourceName},
		Requester: RequesterTag{ID: r.RequesterID, Name: r.RequesterName},
		Date:      r.Date,
		StartTime: r.Start.String(),
		EndTime:   r.End.String(),
		Purpose:   r.Purpose,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func newReservationResponses(rs []*reservation.Reservation) []ReservationResponse {
	items := make([]ReservationResponse, len(rs))
	for i, r := range rs {
		items[i] = NewReservationResponse(r)
	}
	return items
}

// ConflictListResponse is the 409 payload carrying the overlapping
// reservations so the caller can pick another slot.
type ConflictListResponse struct {
	Error     string                `json:"error"`
	Conflicts []ReservationResponse `json:"conflicts"`
}

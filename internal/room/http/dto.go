package http

import (
	"time"

	"github.com/campushub/campus-services-backend/internal/room"
)

type RoomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Building  string    `json:"building"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRoomResponse(rm *room.Room) RoomResponse {
	return RoomResponse{
		ID:        rm.ID,
		Name:      rm.Name,
		Building:  rm.Building,
		Capacity:  rm.Capacity,
		CreatedAt: rm.CreatedAt,
	}
}

type ListRoomsQuery struct {
	Building string `form:"building"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type CreateRoomBody struct {
	Name     string `json:"name" binding:"required"`
	Building string `json:"building" binding:"required"`
	Capacity int    `json:"capacity" binding:"omitempty,min=1"`
}

type UpdateRoomBody struct {
	Name     *string `json:"name"`
	Building *string `json:"building"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1"`
}

package room

import (
	"net/http"
	"time"

	"github.com/campushub/campus-services-backend/internal/pkg/apperror"
)

var (
	ErrNotFound  = apperror.New(http.StatusNotFound, "room not found")
	ErrEmptyName = apperror.New(http.StatusBadRequest, "name cannot be empty")
)

// Room is a bookable study room.
type Room struct {
	ID        string
	Name      string
	Building  string
	Capacity  int
	CreatedAt time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	Building string
	Page     int
	PageSize int
}

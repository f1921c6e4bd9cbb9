package maintenance

import (
	"net/http"
	"time"

	"github.com/campushub/campus-services-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "maintenance request not found")
	ErrPhotoNotFound    = apperror.New(http.StatusNotFound, "photo not found")
	ErrEmptyDescription = apperror.New(http.StatusBadRequest, "description cannot be empty")
	ErrInvalidPriority  = apperror.New(http.StatusBadRequest, "invalid priority")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid status")
	ErrForbidden        = apperror.New(http.StatusForbidden, "permission denied")
	ErrNoThumbnail      = apperror.New(http.StatusNotFound, "thumbnail not available")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Request is a reported facility problem for a room.
type Request struct {
	ID            string
	RoomID        string
	RoomName      string
	RequesterID   string
	RequesterName string
	Description   string
	Priority      Priority
	Status        Status
	AdminFeedback string
	Photos        []*Photo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Photo is an uploaded image attached to a request. Storage paths are
// internal; clients fetch content through the photo endpoints.
type Photo struct {
	ID            string
	RequestID     string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

type Filter struct {
	RoomID      string
	RequesterID string
	Status      string
	Priority    string
	Page        int
	PageSize    int
}

package notification

import (
	"net/http"
	"time"

	"github.com/campushub/campus-services-backend/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "notification not found")

type Type string

const (
	TypeReservation Type = "reservation"
	TypeMaintenance Type = "maintenance"
	TypeSystem      Type = "system"
)

// Notification is a per-user inbox entry. RelatedID points at the
// record that caused it (reservation or maintenance request) so the
// client can link through.
type Notification struct {
	ID        string
	UserID    string
	Type      Type
	Title     string
	Message   string
	RelatedID string
	IsRead    bool
	CreatedAt time.Time
}

type Filter struct {
	UnreadOnly bool
	Page       int
	PageSize   int
}

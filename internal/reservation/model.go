package reservation

import (
	"net/http"
	"time"

	"github.com/campushub/campus-services-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "reservation not found")
	ErrMissingField      = apperror.New(http.StatusBadRequest, "missing required field")
	ErrInvalidDate       = apperror.New(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	ErrInvalidInterval   = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrResourceNotFound  = apperror.New(http.StatusNotFound, "resource not found")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid reservation status")
	ErrIllegalTransition = apperror.New(http.StatusBadRequest, "illegal status transition")
	ErrForbidden         = apperror.New(http.StatusForbidden, "permission denied")
)

// Kind identifies what class of resource a reservation occupies.
type Kind string

const (
	KindRoom         Kind = "room"         // a study room
	KindConsultation Kind = "consultation" // a lecturer's consultation availability
)

func (k Kind) Valid() bool {
	return k == KindRoom || k == KindConsultation
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Occupies reports whether a reservation in this status holds its time
// slot. Rejected and cancelled reservations free the interval and are
// excluded from conflict checks.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusApproved
}

// Reservation is a claim on a resource for a half-open time interval on
// a calendar date. Room bookings and consultation appointments share
// this one model, distinguished by ResourceKind.
type Reservation struct {
	ID            string
	ResourceKind  Kind
	ResourceID    string
	ResourceName  string
	RequesterID   string
	RequesterName string
	Date          string // DateLayout
	Start         TimeOfDay
	End           TimeOfDay
	Purpose       string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Interval returns the reservation's time range.
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.Start, End: r.End}
}

// Filter defines parameters for listing reservations.
type Filter struct {
	RequesterID  string
	ResourceKind string
	ResourceID   string
	Status       string
	Date         string
	Page         int
	PageSize     int
}

// ConflictError is returned when a reservation cannot be committed
// because the slot is already occupied. It carries the overlapping
// reservations so the caller can act on them.
type ConflictError struct {
	Conflicts []*Reservation
}

func (e *ConflictError) Error() string {
	return "time slot already reserved"
}

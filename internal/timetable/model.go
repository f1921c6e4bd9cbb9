package timetable

import (
	"net/http"
	"time"

	"github.com/campushub/campus-services-backend/internal/pkg/apperror"
	"github.com/campushub/campus-services-backend/internal/reservation"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "class not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "class name cannot be empty")
	ErrInvalidDay      = apperror.New(http.StatusBadRequest, "invalid day of week")
	ErrInvalidInterval = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrAlreadyEnrolled = apperror.New(http.StatusConflict, "student already enrolled")
	ErrNotEnrolled     = apperror.New(http.StatusNotFound, "student not enrolled")
)

// Class is a recurring weekly session. DayOfWeek follows time.Weekday
// numbering (Sunday = 0).
type Class struct {
	ID           string
	Name         string
	DayOfWeek    time.Weekday
	Start        reservation.TimeOfDay
	End          reservation.TimeOfDay
	RoomID       string
	RoomName     string
	LecturerID   string
	LecturerName string
	CreatedAt    time.Time
}

func (c *Class) Interval() reservation.Interval {
	return reservation.Interval{Start: c.Start, End: c.End}
}

type Filter struct {
	DayOfWeek  *time.Weekday
	RoomID     string
	LecturerID string
	Page       int
	PageSize   int
}

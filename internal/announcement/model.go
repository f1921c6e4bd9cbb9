package announcement

import (
	"net/http"
	"time"

	"github.com/campushub/campus-services-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "announcement not found")
	ErrEmptyTitle      = apperror.New(http.StatusBadRequest, "title cannot be empty")
	ErrEmptyContent    = apperror.New(http.StatusBadRequest, "content cannot be empty")
	ErrInvalidAudience = apperror.New(http.StatusBadRequest, "invalid audience")
)

type Audience string

const (
	AudienceAll       Audience = "all"
	AudienceStudents  Audience = "students"
	AudienceLecturers Audience = "lecturers"
)

func (a Audience) Valid() bool {
	switch a {
	case AudienceAll, AudienceStudents, AudienceLecturers:
		return true
	}
	return false
}

type Announcement struct {
	ID           string
	Title        string
	Content      string
	Audience     Audience
	PostedBy     string
	PostedByName string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Filter struct {
	// Audiences restricts results to the given audiences. Empty means
	// no restriction.
	Audiences []Audience
	Page      int
	PageSize  int
}

package lecturer

import (
	"net/http"
	"strings"
	"time"

	"github.com/campushub/campus-services-backend/internal/pkg/apperror"
)

var (
	ErrNotFound  = apperror.New(http.StatusNotFound, "lecturer not found")
	ErrEmptyName = apperror.New(http.StatusBadRequest, "lecturer name cannot be empty")
)

// Lecturer is a staff member who can be booked for consultations.
// UserID links the profile to a login account; it is empty for
// profiles created before the lecturer registered.
type Lecturer struct {
	ID         string
	UserID     string
	FirstName  string
	LastName   string
	Department string
	Office     string
	CreatedAt  time.Time
}

func (l *Lecturer) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

type Filter struct {
	Department string
	Page       int
	PageSize   int
}

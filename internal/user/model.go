package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidRole        = errors.New("invalid role")
)

// Role is the campus-wide role carried in the JWT and checked by route
// middleware and by the reservation transition guard.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleLecturer || r == RoleAdmin
}

// User represents an account in the system.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Role         Role
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}

// UserFilter defines filter options for listing users.
type UserFilter struct {
	Email       string
	DisplayName string
	Role        string
	IsActive    *bool // pointer to distinguish false from not set

	Page     int
	PageSize int
}

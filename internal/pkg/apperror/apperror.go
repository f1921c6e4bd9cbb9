// Package apperror carries an HTTP status alongside an error so handlers can
// map service failures to responses without switching on sentinel values.
package apperror

// AppError is an error with a user-facing message and the HTTP status it
// should produce. Err, when set, holds the underlying cause and is never
// sent to clients.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New returns an AppError for the given status and message. Packages declare
// these as sentinels and compare with errors.Is.
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

package board

import "fmt"

// BoardError is a custom error type for board-related errors
type BoardError string

// Error implements the error interface
func (e BoardError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrMissingField      BoardError = "required field is missing"
	ErrFieldTooLong      BoardError = "field is too long"
	ErrInvalidVibe       BoardError = "vibe is not one of the allowed choices"
	ErrInvalidInterval   BoardError = "end time must be after start time"
	ErrDurationExceeded  BoardError = "session is longer than the maximum duration"
	ErrInvalidTimeFormat BoardError = "invalid time, use the format: 02:30 PM"
	ErrInvalidDate       BoardError = "invalid date, use the format: 2006-01-02"
	ErrUnauthorized      BoardError = "incorrect secret key"
	ErrSessionNotFound   BoardError = "session not found"
	ErrNilConfig         BoardError = "config cannot be nil"
	ErrNilSessionRepo    BoardError = "session repository cannot be nil"
	ErrNilLocator        BoardError = "location resolver cannot be nil"
	ErrNilKeeper         BoardError = "secret keeper cannot be nil"
	ErrNilClock          BoardError = "clock cannot be nil"
	ErrNilUUIDGenerator  BoardError = "UUID generator cannot be nil"
)

// FieldError ties a validation failure to the input field that caused it.
// errors.Is(err, ErrMissingField) and friends see through it.
type FieldError struct {
	Field string
	Err   BoardError
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err BoardError) error {
	return &FieldError{Field: field, Err: err}
}

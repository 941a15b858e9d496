package utils

import (
	"errors"
	"fmt"
)

var (
	ErrRunNotFound     = errors.New("itinerary run not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
)

// RequiresInputError is the halt signal for missing discovery data. It names
// the field the caller must supply before planning can proceed; downstream
// orchestration treats it as "fetch more data", not as a failure.
type RequiresInputError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *RequiresInputError) Error() string {
	return fmt.Sprintf("requires input: %s: %s", e.Field, e.Message)
}

func NewRequiresInput(field, message string) *RequiresInputError {
	return &RequiresInputError{Field: field, Message: message}
}

// AsRequiresInput unwraps err into a RequiresInputError if it is one.
func AsRequiresInput(err error) (*RequiresInputError, bool) {
	var ri *RequiresInputError
	if errors.As(err, &ri) {
		return ri, true
	}
	return nil, false
}

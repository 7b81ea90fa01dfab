package models

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the service-level error taxonomy. Handlers map
// these to HTTP statuses; raw storage errors must never reach clients.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicate          = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a field-level problem with an inbound request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is the sentinel that every validation failure unwraps to.
// Callers use errors.Is(err, ErrValidation) to classify an error without
// caring which rule was violated.
var ErrValidation = errors.New("validation failed")

// ValidationError is a validation failure whose message is safe to return
// verbatim to API clients.
type ValidationError struct {
	msg string
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.msg
}

// Unwrap allows errors.Is(err, ErrValidation) to match any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validation errors for Task fields. The messages are part of the API
// contract and must not be reworded.
var (
	ErrTitleRequired      = NewValidationError("Title is required")
	ErrTitleTooLong       = NewValidationError("Title must not exceed 255 characters")
	ErrDescriptionTooLong = NewValidationError("Description must not exceed 1000 characters")
	ErrStatusEmpty        = NewValidationError("Status cannot be empty")
	ErrDueDateInPast      = NewValidationError("Due date cannot be in the past")
	ErrDueDateRequired    = NewValidationError("Due date is required")
	ErrCaseNumberRequired = NewValidationError("Case number is required")
)

// NewInvalidStatusError builds the validation error for an unrecognized
// status value, echoing the raw input and listing the accepted names.
func NewInvalidStatusError(value string) *ValidationError {
	return NewValidationError(fmt.Sprintf(
		"Invalid status: %s. Valid statuses are: %s",
		value,
		strings.Join(StatusNames(), ", "),
	))
}

// NewInvalidCaseNumberError builds the validation error for a case number
// that does not match the TASK###### format.
func NewInvalidCaseNumberError(value string) *ValidationError {
	return NewValidationError(fmt.Sprintf("Invalid case number: %s", value))
}

package service

import (
	"errors"
	"fmt"

	"github.com/caseflow/caseflow-api/internal/domain"
	"github.com/caseflow/caseflow-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel or typed errors for expected conditions
// 2. Unexpected errors are wrapped in TaskServiceError with operation context
// 3. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrDuplicateCaseNumber indicates that a unique case number could not be
	// allocated: the storage unique constraint rejected every attempt.
	// API layer should map this to HTTP 409 Conflict.
	ErrDuplicateCaseNumber = fmt.Errorf(
		"%w: could not allocate a unique case number",
		store.ErrCaseNumberExists,
	)
)

// TaskNotFoundError indicates that a task lookup by ID or case number found
// nothing. Exactly one of ID or CaseNumber is set, matching how the task was
// addressed. API layer should map this to HTTP 404 Not Found.
type TaskNotFoundError struct {
	ID         int64
	CaseNumber string
}

// Error implements the error interface for TaskNotFoundError.
func (e *TaskNotFoundError) Error() string {
	if e.CaseNumber != "" {
		return fmt.Sprintf("Task with case number %s not found", e.CaseNumber)
	}
	return fmt.Sprintf("Task with ID %d not found", e.ID)
}

// Unwrap returns store.ErrTaskNotFound so callers can match the store-level
// sentinel with errors.Is.
func (e *TaskNotFoundError) Unwrap() error {
	return store.ErrTaskNotFound
}

// NewTaskNotFoundByID creates a TaskNotFoundError for an ID lookup.
func NewTaskNotFoundByID(id int64) *TaskNotFoundError {
	return &TaskNotFoundError{ID: id}
}

// NewTaskNotFoundByCaseNumber creates a TaskNotFoundError for a case number lookup.
func NewTaskNotFoundByCaseNumber(caseNumber string) *TaskNotFoundError {
	return &TaskNotFoundError{CaseNumber: caseNumber}
}

// TaskServiceError wraps unexpected errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "update_task_status")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Errors the caller is expected to handle (validation failures, not-found,
// duplicate case numbers) pass through unchanged so their messages and
// errors.Is identities survive; everything else gets wrapped.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	var notFound *TaskNotFoundError
	if errors.As(err, &notFound) {
		return err
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, ErrDuplicateCaseNumber) {
		return err
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

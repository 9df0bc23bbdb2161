package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/caseflow/caseflow-api/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Common request/response structures

// CreateTaskRequest defines the payload for the task creation endpoint.
// Status is optional and defaults to PENDING.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"notblank,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"dueDate"     validate:"required"`
}

// UpdateTaskRequest defines the payload for the partial update endpoint.
// Absent fields leave the stored value unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateStatusRequest defines the payload for the status transition endpoint.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"notblank"`
}

// TaskPageResponse is the page envelope returned by the task listing
// endpoint.
type TaskPageResponse struct {
	Tasks       []*domain.Task `json:"tasks"`
	TotalTasks  int64          `json:"totalTasks"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	PageSize    int            `json:"pageSize"`
}

// validationMessages converts validator field errors into the field-to-message
// map carried by the Validation Failed envelope.
func validationMessages(err error) map[string]string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	msgs := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs[fe.Field()] = fieldMessage(fe)
	}
	return msgs
}

// fieldMessage returns the contract message for a single field validation
// failure.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "title":
		if fe.Tag() == "max" {
			return "Title must not exceed 255 characters"
		}
		return "Title is required"
	case "description":
		return "Description must not exceed 1000 characters"
	case "dueDate":
		return "Due date is required"
	case "status":
		return "Status is required"
	default:
		return fmt.Sprintf("Invalid value for field: %s", fe.Field())
	}
}

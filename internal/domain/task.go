package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Status represents the lifecycle state of a task. The canonical stored
// form is upper-case; ParseStatus accepts any casing.
type Status string

// Possible task status values, in declaration order. The order is part of
// the API contract for the valid-statuses listing.
const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusOnHold     Status = "ON_HOLD"
)

// Field length limits for Task, applied to the trimmed value.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
)

// caseNumberPattern is the required shape of a generated case number.
var caseNumberPattern = regexp.MustCompile(`^TASK\d{6}$`)

// Statuses returns all valid statuses in declaration order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusOnHold}
}

// StatusNames returns the canonical names of all valid statuses in
// declaration order.
func StatusNames() []string {
	statuses := Statuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}

// IsValid reports whether s is one of the canonical status values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusOnHold:
		return true
	default:
		return false
	}
}

// ParseStatus converts raw input to a canonical Status. Matching is
// case-insensitive but whitespace is not stripped, so " pending " is
// rejected. Returns ErrStatusEmpty for blank input and an invalid-status
// validation error (echoing the raw input) otherwise.
func ParseStatus(raw string) (Status, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrStatusEmpty
	}
	status := Status(strings.ToUpper(raw))
	if !status.IsValid() {
		return "", NewInvalidStatusError(raw)
	}
	return status, nil
}

// FormatCaseNumber renders a sequence value as a case number, e.g.
// FormatCaseNumber(42) == "TASK000042".
func FormatCaseNumber(seq int64) string {
	return fmt.Sprintf("TASK%06d", seq)
}

// ValidCaseNumber reports whether cn matches the generated case number
// format.
func ValidCaseNumber(cn string) bool {
	return caseNumberPattern.MatchString(cn)
}

// Task is a unit of work tracked against a case. The case number is
// assigned at creation and never changes; all other mutable fields move
// through the service layer so that trimming and status canonicalization
// happen in one place.
type Task struct {
	ID          int64     `json:"id"`
	CaseNumber  string    `json:"caseNumber"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      Status    `json:"status"`
	DueDate     time.Time `json:"dueDate"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
}

// NewTask creates a Task with the given fields, stamping creation and
// update times. The ID is left zero for the store to assign.
// Returns an error if validation fails.
func NewTask(caseNumber, title string, description *string, status Status, dueDate time.Time) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		CaseNumber:  caseNumber,
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     dueDate,
		CreatedDate: now,
		UpdatedDate: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the Task's fields against the domain rules. It assumes
// title and description have already been trimmed.
func (t *Task) Validate() error {
	if t.CaseNumber == "" {
		return ErrCaseNumberRequired
	}

	if !ValidCaseNumber(t.CaseNumber) {
		return NewInvalidCaseNumberError(t.CaseNumber)
	}

	if t.Title == "" {
		return ErrTitleRequired
	}

	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}

	if t.Description != nil && utf8.RuneCountInString(*t.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}

	if !t.Status.IsValid() {
		return NewInvalidStatusError(string(t.Status))
	}

	if t.DueDate.IsZero() {
		return ErrDueDateRequired
	}

	return nil
}

// UpdateStatus moves the task to the given status and bumps the update
// timestamp. Returns an error if the status is not a canonical value.
func (t *Task) UpdateStatus(status Status) error {
	if !status.IsValid() {
		return NewInvalidStatusError(string(status))
	}

	t.Status = status
	t.UpdatedDate = time.Now().UTC()
	return nil
}

// IsOverdue reports whether the task's due date has passed as of the given
// instant. Completed tasks are never overdue; the comparison is against the
// canonical stored status, so only the exact value COMPLETED is exempt.
func (t *Task) IsOverdue(asOf time.Time) bool {
	return t.DueDate.Before(asOf) && t.Status != StatusCompleted
}

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/caseflow/caseflow-api/internal/domain"
)

// TaskFilter narrows list and count queries. Zero values mean "no
// constraint"; the service layer normalizes blank input to empty strings
// before building a filter.
type TaskFilter struct {
	// Search matches case-insensitively as a substring of title,
	// description and case number.
	Search string

	// Status matches case-insensitively against the stored status.
	Status string
}

// TaskStore defines the interface for task persistence operations.
type TaskStore interface {
	// Create saves a new task and assigns its storage ID. A case number
	// collision returns ErrCaseNumberExists.
	Create(ctx context.Context, task *domain.Task) error

	// Update saves all mutable fields of an existing task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// GetByID retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ExistsByID reports whether a task with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// GetByCaseNumber retrieves a task by its exact case number.
	// Returns ErrTaskNotFound if no task carries it.
	GetByCaseNumber(ctx context.Context, caseNumber string) (*domain.Task, error)

	// ExistsByCaseNumber reports whether any task carries the given case
	// number (exact match).
	ExistsByCaseNumber(ctx context.Context, caseNumber string) (bool, error)

	// FindAll returns every task in storage order.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// FindAllByDueDateDesc returns every task ordered by due date,
	// newest due date first.
	FindAllByDueDateDesc(ctx context.Context) ([]*domain.Task, error)

	// FindAllPaginated returns a window of tasks ordered by due date
	// descending. A non-positive limit returns an empty slice without
	// touching storage.
	FindAllPaginated(ctx context.Context, offset, limit int) ([]*domain.Task, error)

	// FindByStatus returns tasks whose status matches case-insensitively,
	// ordered by creation date descending.
	FindByStatus(ctx context.Context, status string) ([]*domain.Task, error)

	// FindDueBefore returns tasks due strictly before the cutoff, ordered
	// by due date ascending.
	FindDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.Task, error)

	// FindOverdue returns tasks due strictly before asOf whose stored
	// status is not COMPLETED, ordered by due date ascending.
	FindOverdue(ctx context.Context, asOf time.Time) ([]*domain.Task, error)

	// FindCreatedBetween returns tasks created within [start, end],
	// ordered by creation date descending.
	FindCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Task, error)

	// Search returns tasks matching the term case-insensitively as a
	// substring of title, description or case number, ordered by due date
	// descending.
	Search(ctx context.Context, term string) ([]*domain.Task, error)

	// FindFiltered returns a window of tasks matching the filter, ordered
	// by due date descending. A non-positive limit returns an empty slice
	// without touching storage.
	FindFiltered(ctx context.Context, filter TaskFilter, offset, limit int) ([]*domain.Task, error)

	// CountFiltered returns the number of tasks matching the filter.
	CountFiltered(ctx context.Context, filter TaskFilter) (int64, error)

	// Count returns the total number of tasks.
	Count(ctx context.Context) (int64, error)

	// CountByStatus returns task counts grouped by the canonical stored
	// status value. Statuses with no tasks are absent from the map.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// WithTx returns a copy of the store bound to the given transaction,
	// so a sequence of calls commits or rolls back atomically.
	WithTx(tx *sql.Tx) TaskStore
}

package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/caseflow/caseflow-api/internal/domain"
	"github.com/caseflow/caseflow-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Custom behavior functions
	CreateFn               func(ctx context.Context, task *domain.Task) error
	UpdateFn               func(ctx context.Context, task *domain.Task) error
	DeleteFn               func(ctx context.Context, id int64) error
	GetByIDFn              func(ctx context.Context, id int64) (*domain.Task, error)
	ExistsByIDFn           func(ctx context.Context, id int64) (bool, error)
	GetByCaseNumberFn      func(ctx context.Context, caseNumber string) (*domain.Task, error)
	ExistsByCaseNumberFn   func(ctx context.Context, caseNumber string) (bool, error)
	FindAllFn              func(ctx context.Context) ([]*domain.Task, error)
	FindAllByDueDateDescFn func(ctx context.Context) ([]*domain.Task, error)
	FindAllPaginatedFn     func(ctx context.Context, offset, limit int) ([]*domain.Task, error)
	FindByStatusFn         func(ctx context.Context, status string) ([]*domain.Task, error)
	FindDueBeforeFn        func(ctx context.Context, cutoff time.Time) ([]*domain.Task, error)
	FindOverdueFn          func(ctx context.Context, asOf time.Time) ([]*domain.Task, error)
	FindCreatedBetweenFn   func(ctx context.Context, start, end time.Time) ([]*domain.Task, error)
	SearchFn               func(ctx context.Context, term string) ([]*domain.Task, error)
	FindFilteredFn         func(ctx context.Context, filter store.TaskFilter, offset, limit int) ([]*domain.Task, error)
	CountFilteredFn        func(ctx context.Context, filter store.TaskFilter) (int64, error)
	CountFn                func(ctx context.Context) (int64, error)
	CountByStatusFn        func(ctx context.Context) (map[string]int64, error)
	WithTxFn               func(tx *sql.Tx) store.TaskStore

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	Exists       bool
	TaskCount    int64
	StatusCounts map[string]int64
	DefaultError error
}

// Create implements the TaskStore.Create method
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.DefaultError
}

// Update implements the TaskStore.Update method
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return m.DefaultError
}

// Delete implements the TaskStore.Delete method
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// GetByID implements the TaskStore.GetByID method
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// ExistsByID implements the TaskStore.ExistsByID method
func (m *MockTaskStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if m.ExistsByIDFn != nil {
		return m.ExistsByIDFn(ctx, id)
	}
	return m.Exists, m.DefaultError
}

// GetByCaseNumber implements the TaskStore.GetByCaseNumber method
func (m *MockTaskStore) GetByCaseNumber(ctx context.Context, caseNumber string) (*domain.Task, error) {
	if m.GetByCaseNumberFn != nil {
		return m.GetByCaseNumberFn(ctx, caseNumber)
	}
	return m.Task, m.DefaultError
}

// ExistsByCaseNumber implements the TaskStore.ExistsByCaseNumber method
func (m *MockTaskStore) ExistsByCaseNumber(ctx context.Context, caseNumber string) (bool, error) {
	if m.ExistsByCaseNumberFn != nil {
		return m.ExistsByCaseNumberFn(ctx, caseNumber)
	}
	return m.Exists, m.DefaultError
}

// FindAll implements the TaskStore.FindAll method
func (m *MockTaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// FindAllByDueDateDesc implements the TaskStore.FindAllByDueDateDesc method
func (m *MockTaskStore) FindAllByDueDateDesc(ctx context.Context) ([]*domain.Task, error) {
	if m.FindAllByDueDateDescFn != nil {
		return m.FindAllByDueDateDescFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// FindAllPaginated implements the TaskStore.FindAllPaginated method
func (m *MockTaskStore) FindAllPaginated(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
	if m.FindAllPaginatedFn != nil {
		return m.FindAllPaginatedFn(ctx, offset, limit)
	}
	return m.Tasks, m.DefaultError
}

// FindByStatus implements the TaskStore.FindByStatus method
func (m *MockTaskStore) FindByStatus(ctx context.Context, status string) ([]*domain.Task, error) {
	if m.FindByStatusFn != nil {
		return m.FindByStatusFn(ctx, status)
	}
	return m.Tasks, m.DefaultError
}

// FindDueBefore implements the TaskStore.FindDueBefore method
func (m *MockTaskStore) FindDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.Task, error) {
	if m.FindDueBeforeFn != nil {
		return m.FindDueBeforeFn(ctx, cutoff)
	}
	return m.Tasks, m.DefaultError
}

// FindOverdue implements the TaskStore.FindOverdue method
func (m *MockTaskStore) FindOverdue(ctx context.Context, asOf time.Time) ([]*domain.Task, error) {
	if m.FindOverdueFn != nil {
		return m.FindOverdueFn(ctx, asOf)
	}
	return m.Tasks, m.DefaultError
}

// FindCreatedBetween implements the TaskStore.FindCreatedBetween method
func (m *MockTaskStore) FindCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Task, error) {
	if m.FindCreatedBetweenFn != nil {
		return m.FindCreatedBetweenFn(ctx, start, end)
	}
	return m.Tasks, m.DefaultError
}

// Search implements the TaskStore.Search method
func (m *MockTaskStore) Search(ctx context.Context, term string) ([]*domain.Task, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term)
	}
	return m.Tasks, m.DefaultError
}

// FindFiltered implements the TaskStore.FindFiltered method
func (m *MockTaskStore) FindFiltered(ctx context.Context, filter store.TaskFilter, offset, limit int) ([]*domain.Task, error) {
	if m.FindFilteredFn != nil {
		return m.FindFilteredFn(ctx, filter, offset, limit)
	}
	return m.Tasks, m.DefaultError
}

// CountFiltered implements the TaskStore.CountFiltered method
func (m *MockTaskStore) CountFiltered(ctx context.Context, filter store.TaskFilter) (int64, error) {
	if m.CountFilteredFn != nil {
		return m.CountFilteredFn(ctx, filter)
	}
	return m.TaskCount, m.DefaultError
}

// Count implements the TaskStore.Count method
func (m *MockTaskStore) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return m.TaskCount, m.DefaultError
}

// CountByStatus implements the TaskStore.CountByStatus method
func (m *MockTaskStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return m.StatusCounts, m.DefaultError
}

// WithTx implements the TaskStore.WithTx method. By default the mock is
// returned unchanged, so transactional code paths exercise the same
// behavior functions.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	if m.WithTxFn != nil {
		return m.WithTxFn(tx)
	}
	return m
}

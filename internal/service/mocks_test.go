package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/caseflow/caseflow-api/internal/domain"
	"github.com/caseflow/caseflow-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTaskRepository mocks the TaskRepository interface
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) GetByCaseNumber(
	ctx context.Context,
	caseNumber string,
) (*domain.Task, error) {
	args := m.Called(ctx, caseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ExistsByCaseNumber(
	ctx context.Context,
	caseNumber string,
) (bool, error) {
	args := m.Called(ctx, caseNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAllByDueDateDesc(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAllPaginated(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Task, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByStatus(
	ctx context.Context,
	status string,
) ([]*domain.Task, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindDueBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]*domain.Task, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindOverdue(
	ctx context.Context,
	asOf time.Time,
) ([]*domain.Task, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindCreatedBetween(
	ctx context.Context,
	start, end time.Time,
) ([]*domain.Task, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) Search(ctx context.Context, term string) ([]*domain.Task, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindFiltered(
	ctx context.Context,
	filter store.TaskFilter,
	offset, limit int,
) ([]*domain.Task, error) {
	args := m.Called(ctx, filter, offset, limit)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) CountFiltered(
	ctx context.Context,
	filter store.TaskFilter,
) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

// WithTx returns the mock itself; unit tests have no real transactions to bind.
func (m *MockTaskRepository) WithTx(tx *sql.Tx) TaskRepository {
	return m
}

// DB returns nil so transactional service paths run against the mock
// directly instead of opening a transaction.
func (m *MockTaskRepository) DB() *sql.DB {
	return nil
}

// stubGenerator returns a fixed sequence of case numbers, repeating the last
// one once the sequence is exhausted.
type stubGenerator struct {
	numbers []string
	next    int
}

func (g *stubGenerator) Next() string {
	if g.next >= len(g.numbers) {
		return g.numbers[len(g.numbers)-1]
	}
	n := g.numbers[g.next]
	g.next++
	return n
}

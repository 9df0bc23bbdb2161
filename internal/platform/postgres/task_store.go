package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/caseflow/caseflow-api/internal/domain"
	"github.com/caseflow/caseflow-api/internal/platform/logger"
	"github.com/caseflow/caseflow-api/internal/store"
)

// taskColumns is the column list every task SELECT uses, in scanTask order.
const taskColumns = "id, case_number, title, description, status, due_date, created_date, updated_date"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
// It returns a copy of the store bound to the given transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row in taskColumns order.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var description sql.NullString
	var status string

	err := row.Scan(
		&task.ID,
		&task.CaseNumber,
		&task.Title,
		&description,
		&status,
		&task.DueDate,
		&task.CreatedDate,
		&task.UpdatedDate,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}
	task.Status = domain.Status(status)

	return &task, nil
}

// queryTasks runs a multi-row task query and scans the results.
// It always returns a non-nil slice on success.
func (s *PostgresTaskStore) queryTasks(
	ctx context.Context,
	log *slog.Logger,
	query string,
	args ...any,
) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return tasks, nil
}

// Create implements store.TaskStore.Create
// It saves a new task and assigns the storage-generated ID.
// Returns validation errors from the domain Task if data is invalid.
// Returns store.ErrCaseNumberExists if the case number is already taken.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("case_number", task.CaseNumber))
		return err
	}

	query := `
		INSERT INTO tasks (case_number, title, description, status, due_date, created_date, updated_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		task.CaseNumber,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		task.CreatedDate,
		task.UpdatedDate,
	).Scan(&task.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("case number collision during task creation",
				slog.String("case_number", task.CaseNumber))
			return MapUniqueViolation(err, store.ErrCaseNumberExists)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("case_number", task.CaseNumber))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.String("case_number", task.CaseNumber),
		slog.String("status", string(task.Status)))
	return nil
}

// Update implements store.TaskStore.Update
// It saves all mutable fields of an existing task.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, due_date = $4, updated_date = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		task.UpdatedDate,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for update", slog.Int64("task_id", task.ID))
		return err
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for delete", slog.Int64("task_id", id))
		return err
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	return task, nil
}

// ExistsByID implements store.TaskStore.ExistsByID
func (s *PostgresTaskStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		log.Error("failed to check task existence",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return false, err
	}

	return exists, nil
}

// GetByCaseNumber implements store.TaskStore.GetByCaseNumber
// The match is exact; case numbers are stored in their canonical form.
// Returns store.ErrTaskNotFound if no task carries the case number.
func (s *PostgresTaskStore) GetByCaseNumber(ctx context.Context, caseNumber string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE case_number = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, caseNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found by case number",
				slog.String("case_number", caseNumber))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by case number",
			slog.String("error", err.Error()),
			slog.String("case_number", caseNumber))
		return nil, err
	}

	return task, nil
}

// ExistsByCaseNumber implements store.TaskStore.ExistsByCaseNumber
func (s *PostgresTaskStore) ExistsByCaseNumber(ctx context.Context, caseNumber string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM tasks WHERE case_number = $1)`,
		caseNumber,
	).Scan(&exists)
	if err != nil {
		log.Error("failed to check case number existence",
			slog.String("error", err.Error()),
			slog.String("case_number", caseNumber))
		return false, err
	}

	return exists, nil
}

// FindAll implements store.TaskStore.FindAll
func (s *PostgresTaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return s.queryTasks(ctx, log, `SELECT `+taskColumns+` FROM tasks`)
}

// FindAllByDueDateDesc implements store.TaskStore.FindAllByDueDateDesc
func (s *PostgresTaskStore) FindAllByDueDateDesc(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY due_date DESC`
	return s.queryTasks(ctx, log, query)
}

// FindAllPaginated implements store.TaskStore.FindAllPaginated
// A non-positive limit short-circuits to an empty result; a negative offset
// is treated as zero.
func (s *PostgresTaskStore) FindAllPaginated(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		return []*domain.Task{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY due_date DESC LIMIT $1 OFFSET $2`
	return s.queryTasks(ctx, log, query, limit, offset)
}

// FindByStatus implements store.TaskStore.FindByStatus
// The status comparison is case-insensitive.
func (s *PostgresTaskStore) FindByStatus(ctx context.Context, status string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE lower(status) = lower($1)
		ORDER BY created_date DESC
	`

	tasks, err := s.queryTasks(ctx, log, query, status)
	if err != nil {
		return nil, err
	}

	log.Debug("found tasks by status",
		slog.String("status", status),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// FindDueBefore implements store.TaskStore.FindDueBefore
func (s *PostgresTaskStore) FindDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE due_date < $1
		ORDER BY due_date ASC
	`
	return s.queryTasks(ctx, log, query, cutoff)
}

// FindOverdue implements store.TaskStore.FindOverdue
// Tasks whose stored status is exactly COMPLETED are exempt; the comparison
// is deliberately case-sensitive against the canonical form.
func (s *PostgresTaskStore) FindOverdue(ctx context.Context, asOf time.Time) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE due_date < $1 AND status <> $2
		ORDER BY due_date ASC
	`
	return s.queryTasks(ctx, log, query, asOf, domain.StatusCompleted)
}

// FindCreatedBetween implements store.TaskStore.FindCreatedBetween
// Both bounds are inclusive.
func (s *PostgresTaskStore) FindCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE created_date BETWEEN $1 AND $2
		ORDER BY created_date DESC
	`
	return s.queryTasks(ctx, log, query, start, end)
}

// Search implements store.TaskStore.Search
// The term matches case-insensitively as a substring of title, description
// and case number. A NULL description never matches.
func (s *PostgresTaskStore) Search(ctx context.Context, term string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE lower(title) LIKE '%' || lower($1) || '%'
			OR lower(description) LIKE '%' || lower($1) || '%'
			OR lower(case_number) LIKE '%' || lower($1) || '%'
		ORDER BY due_date DESC
	`

	tasks, err := s.queryTasks(ctx, log, query, term)
	if err != nil {
		return nil, err
	}

	log.Debug("searched tasks",
		slog.String("term", term),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// filteredWhere is the shared predicate for FindFiltered and CountFiltered.
// An empty search term or status disables that criterion.
const filteredWhere = `
	WHERE ($1 = ''
			OR lower(title) LIKE '%' || lower($1) || '%'
			OR lower(description) LIKE '%' || lower($1) || '%'
			OR lower(case_number) LIKE '%' || lower($1) || '%')
		AND ($2 = '' OR lower(status) = lower($2))
`

// FindFiltered implements store.TaskStore.FindFiltered
// A non-positive limit short-circuits to an empty result; a negative offset
// is treated as zero.
func (s *PostgresTaskStore) FindFiltered(
	ctx context.Context,
	filter store.TaskFilter,
	offset, limit int,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		return []*domain.Task{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + taskColumns + ` FROM tasks` + filteredWhere + `
		ORDER BY due_date DESC
		LIMIT $3 OFFSET $4
	`

	tasks, err := s.queryTasks(ctx, log, query, filter.Search, filter.Status, limit, offset)
	if err != nil {
		return nil, err
	}

	log.Debug("found filtered tasks",
		slog.String("search", filter.Search),
		slog.String("status", filter.Status),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// CountFiltered implements store.TaskStore.CountFiltered
func (s *PostgresTaskStore) CountFiltered(ctx context.Context, filter store.TaskFilter) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT count(*) FROM tasks` + filteredWhere

	var count int64
	err := s.db.QueryRowContext(ctx, query, filter.Search, filter.Status).Scan(&count)
	if err != nil {
		log.Error("failed to count filtered tasks",
			slog.String("error", err.Error()),
			slog.String("search", filter.Search),
			slog.String("status", filter.Status))
		return 0, err
	}

	return count, nil
}

// Count implements store.TaskStore.Count
func (s *PostgresTaskStore) Count(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM tasks`).Scan(&count)
	if err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return 0, err
	}

	return count, nil
}

// CountByStatus implements store.TaskStore.CountByStatus
// Statuses with no tasks are absent from the returned map.
func (s *PostgresTaskStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT status, count(*) FROM tasks GROUP BY status`)
	if err != nil {
		log.Error("failed to count tasks by status",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			log.Error("failed to scan status count row",
				slog.String("error", err.Error()))
			return nil, err
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return counts, nil
}

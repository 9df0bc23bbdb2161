package service

import (
	"database/sql"

	"github.com/caseflow/caseflow-api/internal/store"
)

// NewTaskRepositoryAdapter creates a new adapter that allows a store.TaskStore
// to be used where a TaskRepository is expected.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) TaskRepository {
	return &taskRepositoryAdapter{
		TaskStore: taskStore,
		db:        db,
	}
}

// taskRepositoryAdapter adapts a store.TaskStore to the TaskRepository
// interface. The embedded store provides the data operations; the adapter
// adds transaction rebinding with the service-level return type and access
// to the underlying connection.
type taskRepositoryAdapter struct {
	store.TaskStore
	db *sql.DB
}

// WithTx implements TaskRepository.WithTx.
func (a *taskRepositoryAdapter) WithTx(tx *sql.Tx) TaskRepository {
	return &taskRepositoryAdapter{
		TaskStore: a.TaskStore.WithTx(tx),
		db:        a.db,
	}
}

// DB implements TaskRepository.DB.
func (a *taskRepositoryAdapter) DB() *sql.DB {
	return a.db
}

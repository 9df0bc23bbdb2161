// Package postgres provides the PostgreSQL implementations of the storage
// interfaces defined in the internal/store package. It owns query execution,
// row scanning between database records and domain entities, and the mapping
// of driver-level errors (SQLSTATE codes, sql.ErrNoRows) onto the store
// package's sentinel errors.
package postgres

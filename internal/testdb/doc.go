// Package testdb provides utilities for integration tests that need a real
// Postgres database: connection setup from environment variables, one-time
// schema migration, and per-test transaction isolation.
//
// Tests using this package carry the integration build tag and are skipped
// in plain unit test runs.
package testdb

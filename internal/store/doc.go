// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// TaskStore is the primary interface; RunInTransaction provides the
// commit/rollback wrapper that services use to group store calls.
package store

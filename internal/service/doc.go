// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The task service owns all input normalization and validation: trimming,
// status canonicalization, defaulting and the human-readable validation
// messages surfaced by the API. Handlers pass request values through
// untouched.
//
// Key components:
//
// 1. TaskService:
//   - Defines the task operations available to the delivery mechanisms
//   - Applies transactional boundaries to read-modify-write operations
//
// 2. TaskRepository:
//   - The persistence contract the service consumes, satisfied by an
//     adapter over store.TaskStore
//
// 3. CaseNumberGenerator:
//   - Allocates candidate case numbers for newly created tasks
//
// 4. Error Handling:
//   - Translates store-level errors to application-level errors
//     (TaskNotFoundError, ErrDuplicateCaseNumber) with meaningful context
//     for API responses
//
// The service layer depends on domain entities and repository interfaces,
// never on specific infrastructure implementations.
package service

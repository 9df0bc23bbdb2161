package service

import (
	"sync/atomic"

	"github.com/caseflow/caseflow-api/internal/domain"
)

// CaseNumberGenerator allocates candidate case numbers for new tasks.
// Implementations must be safe for concurrent use; uniqueness against
// existing tasks is the service's responsibility, not the generator's.
type CaseNumberGenerator interface {
	// Next returns the next candidate case number in TASK%06d form.
	Next() string
}

// SequenceCaseNumberGenerator issues case numbers from a process-wide
// monotonic counter. Restarts rewind the counter, so the create path
// re-rolls past numbers already taken in storage.
type SequenceCaseNumberGenerator struct {
	counter atomic.Int64
}

// NewSequenceCaseNumberGenerator creates a generator whose first issued
// number is TASK000001.
func NewSequenceCaseNumberGenerator() *SequenceCaseNumberGenerator {
	return &SequenceCaseNumberGenerator{}
}

// Next implements CaseNumberGenerator.Next.
func (g *SequenceCaseNumberGenerator) Next() string {
	return domain.FormatCaseNumber(g.counter.Add(1))
}

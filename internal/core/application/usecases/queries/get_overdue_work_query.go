package queries

import (
	"errors"
	"time"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/pkg/guard"
)

var (
	ErrGetOverdueWorkQueryIsNotConstructed = errors.New(
		"GetOverdueWorkQuery must be created via NewGetOverdueWorkQuery constructor",
	)
	ErrCutoffIsRequired = errors.New("cutoff must not be zero")
)

// GetOverdueWorkQuery retrieves orders that entered production before the
// cutoff and are still there. Feeds the overdue work reminder job.
type GetOverdueWorkQuery struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueWorkQuery creates a query for in-progress orders started
// before cutoff.
func NewGetOverdueWorkQuery(cutoff time.Time) (GetOverdueWorkQuery, error) {
	if cutoff.IsZero() {
		return GetOverdueWorkQuery{}, ErrCutoffIsRequired
	}

	return GetOverdueWorkQuery{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOverdueWorkQueryIsNotConstructed if validation fails.
func (q GetOverdueWorkQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueWorkQueryIsNotConstructed)
}

// Cutoff returns the production start deadline the query filters by.
func (q GetOverdueWorkQuery) Cutoff() time.Time {
	return q.cutoff
}

// GetOverdueWorkQueryResponse represents one overdue order.
// CreatedByID identifies the clinic user who should be reminded.
type GetOverdueWorkQueryResponse struct {
	ID          kernel.UUID
	Number      kernel.OrderNumber
	CreatedByID kernel.UUID
	StartedAt   time.Time
}

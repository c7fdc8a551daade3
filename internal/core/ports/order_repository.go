package ports

import (
	"context"
	"errors"
	"time"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"
)

// ErrOrderNumberTaken is returned by Add when persistence rejects the order
// specifically because its number collides with an existing one. Creation
// code retries allocation on this error and on no other.
var ErrOrderNumberTaken = errors.New("order number already taken")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// Fails with ErrOrderNumberTaken when the order number is already in use;
	// any other constraint failure surfaces as its own error.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier.
	// Returns *errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus persists a committed lifecycle transition. The write is
	// conditional on the stored status still being expectedPrevious; when a
	// competing transition got there first, the update affects zero rows and
	// *errs.ConcurrentModificationError is returned.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expectedPrevious order.Status) error

	// GetStaleDrafts retrieves orders still in Draft status created before
	// the cutoff. Used by the stale draft sweeper.
	GetStaleDrafts(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}

package order

import (
	"errors"
	"time"

	"dentlab/internal/core/domain/model/actor"
	"dentlab/internal/core/domain/model/kernel"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Timestamps carries the set-once lifecycle timestamps of an order. Each field
// is nil until the order first enters the corresponding state and is never
// overwritten afterwards.
type Timestamps struct {
	SubmittedAt     *time.Time
	MaterialsSentAt *time.Time
	InfoRequestedAt *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
}

// Order represents a dental work order in the system. It is the aggregate root
// guarding the lifecycle from DRAFT through production to a terminal state.
//
// Order maintains these invariants:
//   - the order number is assigned exactly once at creation and never changes
//   - status only moves along edges authorized by the transition table
//   - each lifecycle timestamp is stamped at most once, on first entry
//   - ownership references (doctor, clinic, creator) are immutable
//
// The struct uses private fields to ensure encapsulation; construct through
// NewOrder (fresh drafts) or RestoreOrder (rehydration from persistence).
type Order struct {
	id          kernel.UUID
	number      kernel.OrderNumber
	doctorID    kernel.UUID
	clinicID    kernel.UUID
	createdByID kernel.UUID

	status     Status
	createdAt  time.Time
	timestamps Timestamps

	isConstructed bool
}

// NewOrder creates a fresh order in Draft status with its allocated number.
//
// Parameters:
//   - id: technical identifier of the order
//   - number: the human-readable order number allocated for this creation
//   - doctorID: the prescribing doctor
//   - clinicID: the clinic the doctor belongs to
//   - createdByID: the user who composed the order (doctor or assistant)
//   - createdAt: creation instant, supplied by the caller's clock
//
// All identifiers and the number are validated; any failure aborts construction.
func NewOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	doctorID kernel.UUID,
	clinicID kernel.UUID,
	createdByID kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		doctorID.Validate(),
		clinicID.Validate(),
		createdByID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		number:        number,
		doctorID:      doctorID,
		clinicID:      clinicID,
		createdByID:   createdByID,
		status:        Draft,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreOrder rehydrates an order from persistence without replaying its
// lifecycle. The stored status and timestamps are trusted as-is after basic
// validation.
func RestoreOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	doctorID kernel.UUID,
	clinicID kernel.UUID,
	createdByID kernel.UUID,
	status Status,
	createdAt time.Time,
	timestamps Timestamps,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		doctorID.Validate(),
		clinicID.Validate(),
		createdByID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		number:        number,
		doctorID:      doctorID,
		clinicID:      clinicID,
		createdByID:   createdByID,
		status:        status,
		createdAt:     createdAt,
		timestamps:    timestamps,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value or hand-built structs.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's technical identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() kernel.OrderNumber {
	return o.number
}

// DoctorID returns the prescribing doctor's identifier.
func (o *Order) DoctorID() kernel.UUID {
	return o.doctorID
}

// ClinicID returns the owning clinic's identifier.
func (o *Order) ClinicID() kernel.UUID {
	return o.clinicID
}

// CreatedByID returns the identifier of the user who composed the order.
func (o *Order) CreatedByID() kernel.UUID {
	return o.createdByID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation instant.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// LifecycleTimestamps returns a copy of the set-once lifecycle timestamps.
func (o *Order) LifecycleTimestamps() Timestamps {
	return o.timestamps
}

// CanEdit reports whether order contents may still be modified.
func (o *Order) CanEdit() bool {
	return o.status.CanEdit()
}

// CanDelete reports whether the order may be deleted outright.
func (o *Order) CanDelete() bool {
	return o.status.CanDelete()
}

// TransitionTo moves the order to a new lifecycle status on behalf of an actor.
//
// The transition is validated against the role-gated table; on success the
// status changes and the timestamp of the target state is stamped with now,
// unless a previous visit already set it (re-entering NEEDS_INFO keeps the
// first infoRequestedAt).
//
// On denial the order is left completely unchanged and an
// *InvalidTransitionError (or validation error) is returned.
func (o *Order) TransitionTo(role actor.Role, to Status, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := CanTransition(role, o.status, to); err != nil {
		return err
	}

	o.status = to
	o.stampOnce(to, now)
	return nil
}

// stampOnce sets the timestamp of the entered state if it was never set before.
func (o *Order) stampOnce(to Status, now time.Time) {
	target := o.timestampSlot(to)
	if target != nil && *target == nil {
		*target = &now
	}
}

func (o *Order) timestampSlot(s Status) **time.Time {
	switch s {
	case PendingReview:
		return &o.timestamps.SubmittedAt
	case MaterialsSent:
		return &o.timestamps.MaterialsSentAt
	case NeedsInfo:
		return &o.timestamps.InfoRequestedAt
	case InProgress:
		return &o.timestamps.StartedAt
	case Completed:
		return &o.timestamps.CompletedAt
	case Cancelled:
		return &o.timestamps.CancelledAt
	default:
		return nil
	}
}

// Package audit defines the immutable audit trail entry written alongside
// every successful order state change. Records are append-only: once written
// they are never mutated or deleted.
package audit

import (
	"errors"
	"time"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/pkg/errs"
)

// ActionStatusChange is the action label for lifecycle status transitions.
const ActionStatusChange = "STATUS_CHANGE"

// ErrRecordIsNotConstructed is returned when a Record was not created through
// NewStatusChangeRecord.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewStatusChangeRecord")

// Record is one immutable audit trail entry. It captures what changed on
// which entity, who did it, and when.
type Record struct {
	id         kernel.UUID
	entityID   kernel.UUID
	action     string
	oldValue   string
	newValue   string
	actorID    kernel.UUID
	occurredAt time.Time

	isConstructed bool
}

// NewStatusChangeRecord creates the audit entry for one order status change.
// oldValue and newValue carry the canonical status names.
func NewStatusChangeRecord(
	id kernel.UUID,
	entityID kernel.UUID,
	oldValue string,
	newValue string,
	actorID kernel.UUID,
	occurredAt time.Time,
) (*Record, error) {
	if err := errors.Join(
		id.Validate(),
		entityID.Validate(),
		actorID.Validate(),
	); err != nil {
		return nil, err
	}
	if oldValue == "" {
		return nil, errs.NewValueIsRequiredError("oldValue")
	}
	if newValue == "" {
		return nil, errs.NewValueIsRequiredError("newValue")
	}

	return &Record{
		id:            id,
		entityID:      entityID,
		action:        ActionStatusChange,
		oldValue:      oldValue,
		newValue:      newValue,
		actorID:       actorID,
		occurredAt:    occurredAt,
		isConstructed: true,
	}, nil
}

// RestoreRecord rehydrates a record from persistence.
func RestoreRecord(
	id kernel.UUID,
	entityID kernel.UUID,
	action string,
	oldValue string,
	newValue string,
	actorID kernel.UUID,
	occurredAt time.Time,
) (*Record, error) {
	if err := errors.Join(
		id.Validate(),
		entityID.Validate(),
		actorID.Validate(),
	); err != nil {
		return nil, err
	}
	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}

	return &Record{
		id:            id,
		entityID:      entityID,
		action:        action,
		oldValue:      oldValue,
		newValue:      newValue,
		actorID:       actorID,
		occurredAt:    occurredAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Record was properly constructed.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// EntityID returns the identifier of the entity the record describes.
func (r *Record) EntityID() kernel.UUID {
	return r.entityID
}

// Action returns the action label, e.g. ActionStatusChange.
func (r *Record) Action() string {
	return r.action
}

// OldValue returns the value before the change.
func (r *Record) OldValue() string {
	return r.oldValue
}

// NewValue returns the value after the change.
func (r *Record) NewValue() string {
	return r.newValue
}

// ActorID returns the identifier of the user who made the change.
func (r *Record) ActorID() kernel.UUID {
	return r.actorID
}

// OccurredAt returns when the change happened.
func (r *Record) OccurredAt() time.Time {
	return r.occurredAt
}

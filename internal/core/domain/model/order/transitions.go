package order

import (
	"errors"
	"fmt"

	"dentlab/internal/core/domain/model/actor"
)

// ErrInvalidTransition is the sentinel error wrapped by every transition denial.
var ErrInvalidTransition = errors.New("invalid transition")

// DenialReason classifies why a transition was denied, so callers can render
// an actionable message instead of a generic rejection.
type DenialReason int

const (
	// DeniedTerminalState: the order is in COMPLETED or CANCELLED and can never move again.
	DeniedTerminalState DenialReason = iota + 1

	// DeniedNoSuchTransition: the lifecycle graph has no edge between the two states.
	DeniedNoSuchTransition

	// DeniedRoleNotPermitted: the edge exists but is not authorized for the actor's role.
	DeniedRoleNotPermitted
)

// InvalidTransitionError is returned when a requested status change is not
// allowed. Reason distinguishes a state mismatch from a role mismatch.
type InvalidTransitionError struct {
	From   Status
	To     Status
	Role   actor.Role
	Reason DenialReason
}

func (e *InvalidTransitionError) Error() string {
	switch e.Reason {
	case DeniedTerminalState:
		return fmt.Sprintf("%s: %s is a terminal state", ErrInvalidTransition, e.From)
	case DeniedRoleNotPermitted:
		return fmt.Sprintf("%s: role %s is not permitted to move an order from %s to %s",
			ErrInvalidTransition, e.Role, e.From, e.To)
	default:
		return fmt.Sprintf("%s: no transition from %s to %s", ErrInvalidTransition, e.From, e.To)
	}
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// transition is one directed edge of the lifecycle graph.
type transition struct {
	from Status
	to   Status
}

// getTransitionTable returns the complete permission matrix: every authorized
// edge mapped to the roles allowed to walk it. Edges absent from the table are
// denied for every role.
//
// Clinic-side roles submit, resolve info requests, and may cancel while the
// lab has not started physical work. Lab-side roles drive production and may
// cancel at any non-terminal point of their own pipeline.
func getTransitionTable() map[transition][]actor.Role {
	clinic := []actor.Role{actor.Doctor, actor.Assistant}
	lab := []actor.Role{actor.Admin, actor.Collaborator}
	anyRole := []actor.Role{actor.Doctor, actor.Assistant, actor.Admin, actor.Collaborator}

	return map[transition][]actor.Role{
		{Draft, PendingReview}: clinic,

		{PendingReview, MaterialsSent}: lab,
		{PendingReview, NeedsInfo}:     lab,
		{NeedsInfo, PendingReview}:     clinic,

		{MaterialsSent, InProgress}: lab,
		{InProgress, NeedsInfo}:     lab,
		{InProgress, Completed}:     lab,

		{Draft, Cancelled}:         clinic,
		{PendingReview, Cancelled}: anyRole,
		{NeedsInfo, Cancelled}:     anyRole,
		{MaterialsSent, Cancelled}: lab,
		{InProgress, Cancelled}:    lab,
	}
}

// CanTransition decides whether role may move an order from one status to
// another. Returns nil when the transition is authorized, an
// *InvalidTransitionError describing the specific denial otherwise, or a
// validation error for malformed inputs.
func CanTransition(role actor.Role, from, to Status) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}

	if from.IsTerminal() {
		return &InvalidTransitionError{From: from, To: to, Role: role, Reason: DeniedTerminalState}
	}

	table := getTransitionTable()

	allowed, ok := table[transition{from: from, to: to}]
	if !ok {
		// A missing edge is a state mismatch unless the role could never
		// reach the target status from anywhere, in which case the denial
		// is about the role, not the current state. A clinic assistant
		// asking for COMPLETED is refused as a role problem regardless of
		// where the order currently sits.
		if roleMayEnter(table, role, to) {
			return &InvalidTransitionError{From: from, To: to, Role: role, Reason: DeniedNoSuchTransition}
		}
		return &InvalidTransitionError{From: from, To: to, Role: role, Reason: DeniedRoleNotPermitted}
	}

	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to, Role: role, Reason: DeniedRoleNotPermitted}
}

// roleMayEnter reports whether any edge of the table lets role move an order
// into the given status.
func roleMayEnter(table map[transition][]actor.Role, role actor.Role, to Status) bool {
	for edge, roles := range table {
		if edge.to != to {
			continue
		}
		for _, r := range roles {
			if r == role {
				return true
			}
		}
	}
	return false
}

// TimestampField maps a target status to the name of the set-once timestamp
// stamped when an order first enters that status. Returns the empty string for
// statuses without a lifecycle timestamp (Draft has only the creation time).
func TimestampField(to Status) string {
	switch to {
	case PendingReview:
		return "submitted_at"
	case MaterialsSent:
		return "materials_sent_at"
	case NeedsInfo:
		return "info_requested_at"
	case InProgress:
		return "started_at"
	case Completed:
		return "completed_at"
	case Cancelled:
		return "cancelled_at"
	default:
		return ""
	}
}

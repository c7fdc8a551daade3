package order

import (
	"fmt"

	"dentlab/internal/pkg/errs"
)

// Status represents the lifecycle state of a lab order.
//
// State graph:
//
//	DRAFT ──> PENDING_REVIEW ──> MATERIALS_SENT ──> IN_PROGRESS ──> COMPLETED
//	               │  ▲                                  │
//	               ▼  │                                  ▼
//	              NEEDS_INFO <───────────────────── (from IN_PROGRESS)
//
//	CANCELLED is reachable from every non-terminal state.
//
// COMPLETED and CANCELLED are terminal: no outgoing edges. Which roles may
// walk each edge is defined by the transition table in transitions.go.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status: the clinic is still composing the order.
	Draft

	// PendingReview means the clinic submitted the order and the lab has not
	// yet accepted it into production.
	PendingReview

	// MaterialsSent means the lab confirmed the physical materials
	// (impressions, models) were dispatched or received.
	MaterialsSent

	// NeedsInfo is a side branch: the lab requested clarification from the
	// clinic. Resolving it returns the order to PendingReview.
	NeedsInfo

	// InProgress means a lab collaborator is actively working the order.
	InProgress

	// Completed is the terminal success state.
	Completed

	// Cancelled is the terminal abort state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "UNKNOWN",
		Draft:         "DRAFT",
		PendingReview: "PENDING_REVIEW",
		MaterialsSent: "MATERIALS_SENT",
		NeedsInfo:     "NEEDS_INFO",
		InProgress:    "IN_PROGRESS",
		Completed:     "COMPLETED",
		Cancelled:     "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:         "DRAFT",
		PendingReview: "PENDING_REVIEW",
		MaterialsSent: "MATERIALS_SENT",
		NeedsInfo:     "NEEDS_INFO",
		InProgress:    "IN_PROGRESS",
		Completed:     "COMPLETED",
		Cancelled:     "CANCELLED",
	}
}

// AllStatuses returns every valid lifecycle status. The order is stable and
// follows the happy path, with side branches last.
func AllStatuses() []Status {
	return []Status{Draft, PendingReview, MaterialsSent, InProgress, Completed, NeedsInfo, Cancelled}
}

// StatusFromString parses a status from its wire representation
// ("DRAFT", "PENDING_REVIEW", ...).
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanEdit reports whether order contents may still be modified in this status.
// Only drafts and orders sent back for clarification are editable.
func (s Status) CanEdit() bool {
	return s == Draft || s == NeedsInfo
}

// CanDelete reports whether an order in this status may be deleted outright.
// Only drafts, which the lab has never seen, are deletable.
func (s Status) CanDelete() bool {
	return s == Draft
}

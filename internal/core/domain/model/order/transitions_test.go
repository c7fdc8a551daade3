package order_test

import (
	"errors"
	"fmt"
	"testing"

	"dentlab/internal/core/domain/model/actor"
	"dentlab/internal/core/domain/model/order"
	"dentlab/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allowedEdge struct {
	role actor.Role
	from order.Status
	to   order.Status
}

// expectedMatrix enumerates every authorized (role, from, to) triple,
// independently of the implementation's table, so the full permission matrix
// is pinned down by the test.
func expectedMatrix() map[allowedEdge]bool {
	clinic := []actor.Role{actor.Doctor, actor.Assistant}
	lab := []actor.Role{actor.Admin, actor.Collaborator}
	anyRole := []actor.Role{actor.Doctor, actor.Assistant, actor.Admin, actor.Collaborator}

	matrix := map[allowedEdge]bool{}
	grant := func(roles []actor.Role, from, to order.Status) {
		for _, r := range roles {
			matrix[allowedEdge{r, from, to}] = true
		}
	}

	grant(clinic, order.Draft, order.PendingReview)
	grant(lab, order.PendingReview, order.MaterialsSent)
	grant(lab, order.PendingReview, order.NeedsInfo)
	grant(clinic, order.NeedsInfo, order.PendingReview)
	grant(lab, order.MaterialsSent, order.InProgress)
	grant(lab, order.InProgress, order.NeedsInfo)
	grant(lab, order.InProgress, order.Completed)
	grant(clinic, order.Draft, order.Cancelled)
	grant(anyRole, order.PendingReview, order.Cancelled)
	grant(anyRole, order.NeedsInfo, order.Cancelled)
	grant(lab, order.MaterialsSent, order.Cancelled)
	grant(lab, order.InProgress, order.Cancelled)

	return matrix
}

func TestCanTransition_ExhaustiveMatrix(t *testing.T) {
	roles := []actor.Role{actor.Doctor, actor.Assistant, actor.Admin, actor.Collaborator}
	expected := expectedMatrix()

	granted := 0
	for _, role := range roles {
		for _, from := range order.AllStatuses() {
			for _, to := range order.AllStatuses() {
				name := fmt.Sprintf("%s_%s_to_%s", role, from, to)
				err := order.CanTransition(role, from, to)

				if expected[allowedEdge{role, from, to}] {
					require.NoError(t, err, name)
					granted++
				} else {
					require.ErrorIs(t, err, order.ErrInvalidTransition, name)
				}
			}
		}
	}

	// Every grant in the expected matrix must have been exercised.
	assert.Equal(t, len(expected), granted)
}

func TestCanTransition_TerminalStatesDenyEverything(t *testing.T) {
	roles := []actor.Role{actor.Doctor, actor.Assistant, actor.Admin, actor.Collaborator}

	for _, from := range []order.Status{order.Completed, order.Cancelled} {
		for _, role := range roles {
			for _, to := range order.AllStatuses() {
				err := order.CanTransition(role, from, to)
				require.Error(t, err)

				var denial *order.InvalidTransitionError
				require.ErrorAs(t, err, &denial)
				assert.Equal(t, order.DeniedTerminalState, denial.Reason)
			}
		}
	}
}

func TestCanTransition_DenialReasons(t *testing.T) {
	t.Run("missing edge is a state mismatch", func(t *testing.T) {
		err := order.CanTransition(actor.Admin, order.Draft, order.Completed)

		var denial *order.InvalidTransitionError
		require.ErrorAs(t, err, &denial)
		assert.Equal(t, order.DeniedNoSuchTransition, denial.Reason)
		assert.Contains(t, err.Error(), "no transition from DRAFT to COMPLETED")
	})

	t.Run("missing edge into a status the role can never enter is a role mismatch", func(t *testing.T) {
		err := order.CanTransition(actor.Assistant, order.PendingReview, order.Completed)

		var denial *order.InvalidTransitionError
		require.ErrorAs(t, err, &denial)
		assert.Equal(t, order.DeniedRoleNotPermitted, denial.Reason)
	})

	t.Run("existing edge with wrong role is a role mismatch", func(t *testing.T) {
		err := order.CanTransition(actor.Assistant, order.InProgress, order.Completed)

		var denial *order.InvalidTransitionError
		require.ErrorAs(t, err, &denial)
		assert.Equal(t, order.DeniedRoleNotPermitted, denial.Reason)
		assert.Contains(t, err.Error(), "role ASSISTANT is not permitted")
	})

	t.Run("terminal state names the state", func(t *testing.T) {
		err := order.CanTransition(actor.Admin, order.Completed, order.InProgress)
		assert.Contains(t, err.Error(), "COMPLETED is a terminal state")
	})

	t.Run("denials unwrap to the sentinel", func(t *testing.T) {
		err := order.CanTransition(actor.Doctor, order.MaterialsSent, order.InProgress)
		require.True(t, errors.Is(err, order.ErrInvalidTransition))
	})
}

func TestCanTransition_InvalidInputs(t *testing.T) {
	require.ErrorIs(t,
		order.CanTransition(actor.Unknown, order.Draft, order.PendingReview),
		errs.ErrValueIsInvalid)
	require.ErrorIs(t,
		order.CanTransition(actor.Doctor, order.Unknown, order.PendingReview),
		errs.ErrValueIsInvalid)
	require.ErrorIs(t,
		order.CanTransition(actor.Doctor, order.Draft, order.Unknown),
		errs.ErrValueIsInvalid)
}

func TestTimestampField(t *testing.T) {
	expected := map[order.Status]string{
		order.PendingReview: "submitted_at",
		order.MaterialsSent: "materials_sent_at",
		order.NeedsInfo:     "info_requested_at",
		order.InProgress:    "started_at",
		order.Completed:     "completed_at",
		order.Cancelled:     "cancelled_at",
	}
	for status, field := range expected {
		assert.Equal(t, field, order.TimestampField(status), status.String())
	}

	assert.Empty(t, order.TimestampField(order.Draft))
	assert.Empty(t, order.TimestampField(order.Unknown))
}

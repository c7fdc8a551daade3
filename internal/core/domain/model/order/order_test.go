package order_test

import (
	"testing"
	"time"

	"dentlab/internal/core/domain/model/actor"
	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOrderNumber(t *testing.T, value string) kernel.OrderNumber {
	t.Helper()
	number, err := kernel.NewOrderNumber(value)
	require.NoError(t, err)
	return number
}

func newDraftOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		mustOrderNumber(t, "DL-20260901-GAR-7F3K"),
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates draft with number and ownership", func(t *testing.T) {
		id := kernel.NewUUID()
		doctorID := kernel.NewUUID()
		clinicID := kernel.NewUUID()
		createdByID := kernel.NewUUID()
		createdAt := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
		number := mustOrderNumber(t, "DL-20260901-GAR-7F3K")

		o, err := order.NewOrder(id, number, doctorID, clinicID, createdByID, createdAt)

		require.NoError(t, err)
		assert.Equal(t, order.Draft, o.Status())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.Number().IsEqual(number))
		assert.True(t, o.DoctorID().IsEqual(doctorID))
		assert.True(t, o.ClinicID().IsEqual(clinicID))
		assert.True(t, o.CreatedByID().IsEqual(createdByID))
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, order.Timestamps{}, o.LifecycleTimestamps())
		require.NoError(t, o.Validate())
	})

	t.Run("rejects zero-value identifiers", func(t *testing.T) {
		var zero kernel.UUID
		_, err := order.NewOrder(zero, mustOrderNumber(t, "DL-1"), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now())
		require.Error(t, err)
	})

	t.Run("rejects zero-value order number", func(t *testing.T) {
		var number kernel.OrderNumber
		_, err := order.NewOrder(kernel.NewUUID(), number, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now())
		require.ErrorIs(t, err, kernel.ErrOrderNumberIsNotConstructed)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("hand-built struct is rejected", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order is rejected", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	now := time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC)

	t.Run("doctor submits draft and submittedAt is stamped", func(t *testing.T) {
		o := newDraftOrder(t)

		require.NoError(t, o.TransitionTo(actor.Doctor, order.PendingReview, now))

		assert.Equal(t, order.PendingReview, o.Status())
		require.NotNil(t, o.LifecycleTimestamps().SubmittedAt)
		assert.Equal(t, now, *o.LifecycleTimestamps().SubmittedAt)
	})

	t.Run("denied transition leaves order unchanged", func(t *testing.T) {
		o := newDraftOrder(t)

		err := o.TransitionTo(actor.Admin, order.PendingReview, now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Draft, o.Status())
		assert.Equal(t, order.Timestamps{}, o.LifecycleTimestamps())
	})

	t.Run("full happy path stamps every timestamp once", func(t *testing.T) {
		o := newDraftOrder(t)
		step := now

		advance := func(role actor.Role, to order.Status) {
			step = step.Add(time.Hour)
			require.NoError(t, o.TransitionTo(role, to, step))
		}

		advance(actor.Doctor, order.PendingReview)
		advance(actor.Admin, order.MaterialsSent)
		advance(actor.Collaborator, order.InProgress)
		advance(actor.Collaborator, order.Completed)

		ts := o.LifecycleTimestamps()
		require.NotNil(t, ts.SubmittedAt)
		require.NotNil(t, ts.MaterialsSentAt)
		require.NotNil(t, ts.StartedAt)
		require.NotNil(t, ts.CompletedAt)
		assert.Nil(t, ts.InfoRequestedAt)
		assert.Nil(t, ts.CancelledAt)

		assert.True(t, ts.SubmittedAt.Before(*ts.MaterialsSentAt))
		assert.True(t, ts.MaterialsSentAt.Before(*ts.StartedAt))
		assert.True(t, ts.StartedAt.Before(*ts.CompletedAt))
	})

	t.Run("re-entering NEEDS_INFO keeps the first infoRequestedAt", func(t *testing.T) {
		o := newDraftOrder(t)
		require.NoError(t, o.TransitionTo(actor.Doctor, order.PendingReview, now))

		firstRequest := now.Add(time.Hour)
		require.NoError(t, o.TransitionTo(actor.Admin, order.NeedsInfo, firstRequest))
		require.NoError(t, o.TransitionTo(actor.Assistant, order.PendingReview, now.Add(2*time.Hour)))
		require.NoError(t, o.TransitionTo(actor.Admin, order.NeedsInfo, now.Add(3*time.Hour)))

		require.NotNil(t, o.LifecycleTimestamps().InfoRequestedAt)
		assert.Equal(t, firstRequest, *o.LifecycleTimestamps().InfoRequestedAt)
	})

	t.Run("re-entering PENDING_REVIEW keeps the first submittedAt", func(t *testing.T) {
		o := newDraftOrder(t)
		require.NoError(t, o.TransitionTo(actor.Doctor, order.PendingReview, now))
		require.NoError(t, o.TransitionTo(actor.Admin, order.NeedsInfo, now.Add(time.Hour)))
		require.NoError(t, o.TransitionTo(actor.Doctor, order.PendingReview, now.Add(2*time.Hour)))

		assert.Equal(t, now, *o.LifecycleTimestamps().SubmittedAt)
	})

	t.Run("terminal order refuses any transition", func(t *testing.T) {
		o := newDraftOrder(t)
		require.NoError(t, o.TransitionTo(actor.Doctor, order.Cancelled, now))

		for _, to := range order.AllStatuses() {
			err := o.TransitionTo(actor.Admin, to, now.Add(time.Hour))
			require.ErrorIs(t, err, order.ErrInvalidTransition, to.String())
		}
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_EditabilityFollowsStatus(t *testing.T) {
	now := time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC)
	o := newDraftOrder(t)

	assert.True(t, o.CanEdit())
	assert.True(t, o.CanDelete())

	require.NoError(t, o.TransitionTo(actor.Doctor, order.PendingReview, now))
	assert.False(t, o.CanEdit())
	assert.False(t, o.CanDelete())

	require.NoError(t, o.TransitionTo(actor.Admin, order.NeedsInfo, now.Add(time.Hour)))
	assert.True(t, o.CanEdit())
	assert.False(t, o.CanDelete())
}

func TestRestoreOrder(t *testing.T) {
	now := time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC)
	submitted := now.Add(time.Hour)

	t.Run("rehydrates status and timestamps as stored", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(),
			mustOrderNumber(t, "DL-20260901-GAR-7F3K"),
			kernel.NewUUID(),
			kernel.NewUUID(),
			kernel.NewUUID(),
			order.PendingReview,
			now,
			order.Timestamps{SubmittedAt: &submitted},
		)

		require.NoError(t, err)
		assert.Equal(t, order.PendingReview, o.Status())
		assert.Equal(t, submitted, *o.LifecycleTimestamps().SubmittedAt)
	})

	t.Run("rejects invalid stored status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(),
			mustOrderNumber(t, "DL-20260901-GAR-7F3K"),
			kernel.NewUUID(),
			kernel.NewUUID(),
			kernel.NewUUID(),
			order.Unknown,
			now,
			order.Timestamps{},
		)
		require.Error(t, err)
	})
}

func TestOrder_IsEqual(t *testing.T) {
	first := newDraftOrder(t)
	second := newDraftOrder(t)

	assert.True(t, first.IsEqual(first))
	assert.False(t, first.IsEqual(second))
	assert.False(t, first.IsEqual(nil))
}

package http

import (
	"testing"
	"time"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOrderResponse_CarriesEveryLifecycleTimestamp(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	submittedAt := createdAt.Add(1 * time.Hour)
	materialsSentAt := createdAt.Add(2 * time.Hour)
	infoRequestedAt := createdAt.Add(3 * time.Hour)
	startedAt := createdAt.Add(4 * time.Hour)

	number, err := kernel.NewOrderNumber("DL-20260314-A1B2-JPX-7Q2R")
	require.NoError(t, err)

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(),
		number,
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		order.InProgress,
		createdAt,
		order.Timestamps{
			SubmittedAt:     &submittedAt,
			MaterialsSentAt: &materialsSentAt,
			InfoRequestedAt: &infoRequestedAt,
			StartedAt:       &startedAt,
		},
	)
	require.NoError(t, err)

	response := toOrderResponse(aggregate)

	assert.Equal(t, aggregate.ID().String(), response.ID)
	assert.Equal(t, "DL-20260314-A1B2-JPX-7Q2R", response.Number)
	assert.Equal(t, "IN_PROGRESS", response.Status)
	assert.Equal(t, createdAt, response.CreatedAt)

	require.NotNil(t, response.SubmittedAt)
	assert.Equal(t, submittedAt, *response.SubmittedAt)
	require.NotNil(t, response.MaterialsSentAt)
	assert.Equal(t, materialsSentAt, *response.MaterialsSentAt)
	require.NotNil(t, response.InfoRequestedAt)
	assert.Equal(t, infoRequestedAt, *response.InfoRequestedAt)
	require.NotNil(t, response.StartedAt)
	assert.Equal(t, startedAt, *response.StartedAt)

	assert.Nil(t, response.CompletedAt)
	assert.Nil(t, response.CancelledAt)
}

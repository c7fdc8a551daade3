package clock_test

import (
	"context"
	"testing"
	"time"

	"dentlab/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFixed(t *testing.T) {
	instant := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(instant)

	assert.Equal(t, instant, clk.Now())
	assert.Equal(t, instant, clk.Now(), "fixed clock never advances")
}

func TestNewSystem(t *testing.T) {
	clk := clock.NewSystem()

	now := clk.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now().UTC(), now, time.Second)
}

func TestTimerSleeper_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := clock.NewTimerSleeper().Sleep(ctx, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRecordingSleeper(t *testing.T) {
	sleeper := clock.NewRecordingSleeper()

	require.NoError(t, sleeper.Sleep(context.Background(), 50*time.Millisecond))
	require.NoError(t, sleeper.Sleep(context.Background(), 100*time.Millisecond))

	assert.Equal(t, []time.Duration{50 * time.Millisecond, 100 * time.Millisecond}, sleeper.Slept)
}

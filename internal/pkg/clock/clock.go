// Package clock abstracts wall-clock time and backoff sleeps so they can be
// injected and controlled in tests. Lifecycle timestamps and the order number
// allocation retry loop both depend on these interfaces rather than on the
// time package directly.
package clock

import (
	"context"
	"time"
)

// Clock allows injecting time into domain and application services.
type Clock interface {
	Now() time.Time
}

// Sleeper suspends the current attempt for a duration, honouring context
// cancellation. Used for allocation retry backoff.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now in UTC.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always returns the same instant (useful for tests).
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

type timerSleeper struct{}

// NewTimerSleeper returns a Sleeper backed by a real timer.
// Sleep returns early with the context error if the context is cancelled.
func NewTimerSleeper() Sleeper {
	return timerSleeper{}
}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RecordingSleeper records every requested sleep without actually sleeping.
// It lets tests assert on retry backoff behaviour without real delays.
type RecordingSleeper struct {
	Slept []time.Duration
}

// NewRecordingSleeper returns an empty RecordingSleeper.
func NewRecordingSleeper() *RecordingSleeper {
	return &RecordingSleeper{}
}

func (s *RecordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.Slept = append(s.Slept, d)
	return nil
}

package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleDraftSweepJob     *StaleDraftSweepJob
	overdueWorkReminderJob *OverdueWorkReminderJob
}

// NewJobManager creates a new job manager over the given jobs.
func NewJobManager(
	staleDraftSweepJob *StaleDraftSweepJob,
	overdueWorkReminderJob *OverdueWorkReminderJob,
) *JobManager {
	return &JobManager{
		staleDraftSweepJob:     staleDraftSweepJob,
		overdueWorkReminderJob: overdueWorkReminderJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleDraftSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale draft sweep job: %w", err)
	}

	if err := jm.overdueWorkReminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.staleDraftSweepJob.Stop()
		return fmt.Errorf("failed to start overdue work reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueWorkReminderJob.Stop()
	jm.staleDraftSweepJob.Stop()
}

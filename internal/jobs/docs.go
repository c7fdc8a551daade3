// Package jobs provides scheduled background tasks for the lab order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping the order lifecycle needs.
//
// # Available Jobs
//
// 1. StaleDraftSweepJob - Cancels draft orders that were never submitted
// 2. OverdueWorkReminderJob - Alerts clinic users about orders stuck in production
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sweepJob, reminderJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log failures and keep their schedule; a failed run is retried on
// the next tick rather than stopping the job.
package jobs

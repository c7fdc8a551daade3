package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dentlab/internal/core/application/usecases/commands"
	"dentlab/internal/core/domain/model/actor"
	"dentlab/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// StaleDraftSweepJob cancels draft orders that were never submitted.
// Runs nightly at 03:00 so the sweep stays out of working hours.
type StaleDraftSweepJob struct {
	handler   commands.CancelStaleDraftsCommandHandler
	actorID   kernel.UUID
	actorRole actor.Role
	maxAge    time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewStaleDraftSweepJob creates the sweep job.
// The system actor must carry a role allowed to cancel drafts.
func NewStaleDraftSweepJob(
	handler commands.CancelStaleDraftsCommandHandler,
	actorID kernel.UUID,
	actorRole actor.Role,
	maxAge time.Duration,
	logger *zap.Logger,
) *StaleDraftSweepJob {
	return &StaleDraftSweepJob{
		handler:   handler,
		actorID:   actorID,
		actorRole: actorRole,
		maxAge:    maxAge,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "stale_draft_sweep_job")),
	}
}

// Start schedules the sweep to run nightly.
func (j *StaleDraftSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 0 3 * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("stale draft sweep job started (running nightly at 03:00)")
	return nil
}

// Stop stops the sweep job.
func (j *StaleDraftSweepJob) Stop() {
	j.cron.Stop()
	j.logger.Info("stale draft sweep job stopped")
}

func (j *StaleDraftSweepJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewCancelStaleDraftsCommand(j.actorID, j.actorRole, j.maxAge)
	if err != nil {
		j.logger.Error("building stale draft sweep command failed", zap.Error(err))
		return
	}

	cancelled, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("stale draft sweep failed", zap.Error(err))
		return
	}

	if cancelled > 0 {
		j.logger.Info("stale drafts cancelled", zap.Int("count", cancelled))
	}
}

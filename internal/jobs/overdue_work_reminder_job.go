package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dentlab/internal/core/application/usecases/commands"
	"dentlab/internal/core/application/usecases/queries"
	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/eventbus"
	"dentlab/internal/pkg/clock"

	"github.com/robfig/cron/v3"
)

// OverdueWorkReminderJob alerts clinic users about orders sitting in
// production past the configured threshold. Runs hourly; it only publishes
// reminders and never mutates orders.
type OverdueWorkReminderJob struct {
	query     queries.GetOverdueWorkQueryHandler
	publisher commands.AlertPublisher
	senderID  kernel.UUID
	threshold time.Duration
	clock     clock.Clock
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewOverdueWorkReminderJob creates the reminder job.
// senderID identifies the system actor the reminder alerts are sent as.
func NewOverdueWorkReminderJob(
	query queries.GetOverdueWorkQueryHandler,
	publisher commands.AlertPublisher,
	senderID kernel.UUID,
	threshold time.Duration,
	clk clock.Clock,
	logger *zap.Logger,
) *OverdueWorkReminderJob {
	return &OverdueWorkReminderJob{
		query:     query,
		publisher: publisher,
		senderID:  senderID,
		threshold: threshold,
		clock:     clk,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "overdue_work_reminder_job")),
	}
}

// Start schedules the reminder to run at the top of every hour.
func (j *OverdueWorkReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("overdue work reminder job started (running hourly)")
	return nil
}

// Stop stops the reminder job.
func (j *OverdueWorkReminderJob) Stop() {
	j.cron.Stop()
	j.logger.Info("overdue work reminder job stopped")
}

func (j *OverdueWorkReminderJob) run() {
	ctx := context.Background()
	now := j.clock.Now()

	query, err := queries.NewGetOverdueWorkQuery(now.Add(-j.threshold))
	if err != nil {
		j.logger.Error("building overdue work query failed", zap.Error(err))
		return
	}

	overdue, err := j.query.Handle(ctx, query)
	if err != nil {
		j.logger.Error("overdue work query failed", zap.Error(err))
		return
	}

	for _, row := range overdue {
		j.publisher.PublishAlert(eventbus.AlertEvent{
			Kind:       eventbus.KindOrderWorkOverdue,
			OrderID:    row.ID.String(),
			SenderID:   j.senderID.String(),
			ReceiverID: row.CreatedByID.String(),
			Payload: map[string]string{
				"orderNumber": row.Number.String(),
				"startedAt":   row.StartedAt.UTC().Format(time.RFC3339),
			},
			CreatedAt: now,
		})
	}

	if len(overdue) > 0 {
		j.logger.Info("overdue work reminders published", zap.Int("count", len(overdue)))
	}
}

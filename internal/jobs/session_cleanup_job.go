package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// sweepBatchSize bounds how many sessions one sweeper run may reap, keeping
// each run short so it never starves interactive transactions.
const sweepBatchSize = 500

// SessionCleanupJob periodically reaps expired guest sessions and their
// carts, plus guest carts whose session row is already gone.
type SessionCleanupJob struct {
	handler  commands.CleanupExpiredSessionsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionCleanupJob creates the sweeper job. The schedule is a six-field
// cron expression with a seconds column.
func NewSessionCleanupJob(
	handler commands.CleanupExpiredSessionsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *SessionCleanupJob {
	return &SessionCleanupJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_cleanup_job"),
	}
}

// Start schedules the sweeper.
func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCleanupExpiredSessionsCommand(sweepBatchSize)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Session cleanup command rejected", "error", cmdErr)
			return
		}

		removed, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Session cleanup run failed", "error", handleErr)
			return
		}

		if removed > 0 {
			j.logger.InfoContext(ctx, "Session cleanup run finished", "removed", removed)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session cleanup job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweeper.
func (j *SessionCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session cleanup job stopped")
}

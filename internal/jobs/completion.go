package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"snowrent/internal/clock"
)

type Completer interface {
	CompleteEnded(ctx context.Context, today time.Time) (int, error)
}

// CompletionJob closes reservations whose rental period is over.
type CompletionJob struct {
	completer Completer
	clock     clock.Clock
	logger    *zap.Logger
	timeout   time.Duration
}

func NewCompletionJob(completer Completer, clk clock.Clock, logger *zap.Logger, timeout time.Duration) *CompletionJob {
	return &CompletionJob{
		completer: completer,
		clock:     clk,
		logger:    logger.With(zap.String("job", "complete_ended_reservations")),
		timeout:   timeout,
	}
}

// Run implements cron.Job.
func (j *CompletionJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	today := clock.Today(j.clock)
	count, err := j.completer.CompleteEnded(ctx, today)
	if err != nil {
		j.logger.Error("job failed", zap.Time("today", today), zap.Error(err))
		return
	}

	j.logger.Info("job finished", zap.Time("today", today), zap.Int("completed", count))
}

// Package jobs runs the store's periodic maintenance.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sangkips/salay-pos/internal/domain/repository"
)

const jobTimeout = time.Minute

// Scheduler wraps a cron runner.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// NewScheduler creates a stopped scheduler. A job still running when the
// next tick arrives makes that tick skip.
func NewScheduler(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:  log,
	}
}

// RegisterIdempotencyCleanup purges expired idempotency keys on spec
// (standard cron syntax or a descriptor such as "@hourly").
func (s *Scheduler) RegisterIdempotencyCleanup(spec string, repo repository.IdempotencyRepository) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if _, err := PurgeExpiredKeys(ctx, repo, s.log); err != nil {
			s.log.Error("idempotency cleanup failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("jobs: schedule idempotency cleanup %q: %w", spec, err)
	}
	return nil
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}

// PurgeExpiredKeys deletes idempotency keys past their expiry.
func PurgeExpiredKeys(ctx context.Context, repo repository.IdempotencyRepository, log *zap.Logger) (int64, error) {
	n, err := repo.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 && log != nil {
		log.Info("expired idempotency keys purged", zap.Int64("count", n))
	}
	return n, nil
}

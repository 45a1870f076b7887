// Package scheduler runs periodic housekeeping jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReceiptCleaner removes generated receipt files past their retention
type ReceiptCleaner interface {
	Cleanup(ctx context.Context) (int, error)
}

// IdempotencyPurger removes stored idempotent responses that have expired
type IdempotencyPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// JobPruner forgets finished background jobs
type JobPruner interface {
	Prune(olderThan time.Duration) int
}

// Config holds cron specs for each job
type Config struct {
	ReceiptCleanupSpec string
	IdempotencySpec    string
	JobPruneSpec       string
	JobRetention       time.Duration
	JobTimeout         time.Duration
}

// DefaultConfig returns the production schedule
func DefaultConfig() Config {
	return Config{
		ReceiptCleanupSpec: "@daily",
		IdempotencySpec:    "@hourly",
		JobPruneSpec:       "@every 10m",
		JobRetention:       time.Hour,
		JobTimeout:         2 * time.Minute,
	}
}

type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	timeout time.Duration
}

// New registers the housekeeping jobs. Nil dependencies are skipped.
func New(cfg Config, logger *zap.Logger, receipts ReceiptCleaner, idem IdempotencyPurger, jobs JobPruner) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		logger:  logger,
		timeout: cfg.JobTimeout,
	}
	if s.timeout <= 0 {
		s.timeout = time.Minute
	}

	if receipts != nil {
		if err := s.add(cfg.ReceiptCleanupSpec, "receipt_cleanup", func(ctx context.Context) error {
			n, err := receipts.Cleanup(ctx)
			if err == nil && n > 0 {
				logger.Info("removed expired receipts", zap.Int("count", n))
			}
			return err
		}); err != nil {
			return nil, err
		}
	}

	if idem != nil {
		if err := s.add(cfg.IdempotencySpec, "idempotency_purge", func(ctx context.Context) error {
			n, err := idem.DeleteExpired(ctx, time.Now())
			if err == nil && n > 0 {
				logger.Info("purged idempotency keys", zap.Int64("count", n))
			}
			return err
		}); err != nil {
			return nil, err
		}
	}

	if jobs != nil {
		retention := cfg.JobRetention
		if err := s.add(cfg.JobPruneSpec, "job_prune", func(ctx context.Context) error {
			if n := jobs.Prune(retention); n > 0 {
				logger.Debug("pruned finished jobs", zap.Int("count", n))
			}
			return nil
		}); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Scheduler) add(spec, name string, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			s.logger.Error("scheduled job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Debug("scheduled job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
	})
	return err
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/fintrack/internal/cache"
	"github.com/Dan9191/fintrack/internal/config"
)

// jobTimeout bounds one run; the lock is held for the same time
const jobTimeout = 10 * time.Minute

// Jobs is the work the scheduler triggers
type Jobs interface {
	SyncAllBudgets(ctx context.Context) (int, error)
	RolloverRecurring(ctx context.Context) (int, error)
	SendReminders(ctx context.Context, daysAhead int) (int, error)
}

type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}

// Scheduler runs the periodic jobs. Every run takes a distributed lock so that only
// one instance of the API does the work.
type Scheduler struct {
	cron   *cron.Cron
	jobs   Jobs
	locker Locker
	cfg    config.Scheduler
	log    *logrus.Logger
}

func New(jobs Jobs, locker Locker, cfg config.Scheduler, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cron.PrintfLogger(log))),
		),
		jobs:   jobs,
		locker: locker,
		cfg:    cfg,
		log:    log,
	}
}

// Register adds the jobs to the cron table. It fails on an invalid cron expression.
func (s *Scheduler) Register() error {
	entries := []struct {
		name string
		spec string
		fn   func(ctx context.Context) (int, error)
	}{
		{"budget-sync", s.cfg.BudgetSyncSpec, s.jobs.SyncAllBudgets},
		{"rollover", s.cfg.RolloverSpec, s.jobs.RolloverRecurring},
		{"reminders", s.cfg.ReminderSpec, func(ctx context.Context) (int, error) {
			return s.jobs.SendReminders(ctx, s.cfg.ReminderDaysAhead)
		}},
	}
	for _, e := range entries {
		e := e
		if e.spec == "" {
			s.log.Infof("Job %s disabled", e.name)
			continue
		}
		if _, err := s.cron.AddFunc(e.spec, func() { s.run(context.Background(), e.name, e.fn) }); err != nil {
			return fmt.Errorf("failed to schedule %s with %q: %w", e.name, e.spec, err)
		}
		s.log.Infof("Job %s scheduled: %s", e.name, e.spec)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stopped before running jobs finished")
	}
}

func (s *Scheduler) run(ctx context.Context, name string, fn func(ctx context.Context) (int, error)) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	entry := s.log.WithField("job", name)
	err := s.locker.WithLock(ctx, "jobs:"+name, jobTimeout, func(ctx context.Context) error {
		n, err := fn(ctx)
		entry = entry.WithField("processed", n)
		return err
	})
	switch {
	case errors.Is(err, cache.ErrLocked):
		entry.Debug("job skipped, another instance holds the lock")
	case err != nil:
		entry.Errorf("job failed: %v", err)
	default:
		entry.WithField("duration", time.Since(start).String()).Info("job finished")
	}
}

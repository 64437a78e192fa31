package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/fintrack/internal/cache"
	"github.com/Dan9191/fintrack/internal/config"
)

type fakeJobs struct {
	synced    int
	daysAhead int
	err       error
}

func (f *fakeJobs) SyncAllBudgets(context.Context) (int, error) {
	f.synced++
	return 4, f.err
}

func (f *fakeJobs) RolloverRecurring(context.Context) (int, error) { return 0, f.err }

func (f *fakeJobs) SendReminders(_ context.Context, daysAhead int) (int, error) {
	f.daysAhead = daysAhead
	return 1, f.err
}

type fakeLocker struct {
	held bool
	keys []string
}

func (l *fakeLocker) WithLock(ctx context.Context, key string, _ time.Duration, fn func(ctx context.Context) error) error {
	l.keys = append(l.keys, key)
	if l.held {
		return cache.ErrLocked
	}
	return fn(ctx)
}

func newTestScheduler(jobs *fakeJobs, locker *fakeLocker, cfg config.Scheduler) (*Scheduler, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(jobs, locker, cfg, logger), hook
}

func TestRun(t *testing.T) {
	jobs := &fakeJobs{}
	locker := &fakeLocker{}
	s, hook := newTestScheduler(jobs, locker, config.Scheduler{})

	s.run(context.Background(), "budget-sync", jobs.SyncAllBudgets)
	require.Equal(t, 1, jobs.synced)
	require.Equal(t, []string{"jobs:budget-sync"}, locker.keys)

	entry := hook.LastEntry()
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, 4, entry.Data["processed"])
	require.Equal(t, "budget-sync", entry.Data["job"])
}

func TestRun_LockedSkips(t *testing.T) {
	jobs := &fakeJobs{}
	s, hook := newTestScheduler(jobs, &fakeLocker{held: true}, config.Scheduler{})

	s.run(context.Background(), "budget-sync", jobs.SyncAllBudgets)
	require.Zero(t, jobs.synced)
	require.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
}

func TestRun_Failure(t *testing.T) {
	jobs := &fakeJobs{err: errors.New("mongo down")}
	s, hook := newTestScheduler(jobs, &fakeLocker{}, config.Scheduler{})

	s.run(context.Background(), "rollover", jobs.RolloverRecurring)
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	require.Contains(t, hook.LastEntry().Message, "mongo down")
}

func TestRegister(t *testing.T) {
	jobs := &fakeJobs{}
	s, _ := newTestScheduler(jobs, &fakeLocker{}, config.Scheduler{
		BudgetSyncSpec:    "@every 1h",
		RolloverSpec:      "15 0 * * *",
		ReminderSpec:      "0 8 * * *",
		ReminderDaysAhead: 3,
	})
	require.NoError(t, s.Register())
	require.Len(t, s.cron.Entries(), 3)

	for _, e := range s.cron.Entries() {
		e.Job.Run()
	}
	require.Equal(t, 1, jobs.synced)
	require.Equal(t, 3, jobs.daysAhead)
}

func TestRegister_InvalidSpec(t *testing.T) {
	s, _ := newTestScheduler(&fakeJobs{}, &fakeLocker{}, config.Scheduler{BudgetSyncSpec: "every hour"})
	require.ErrorContains(t, s.Register(), "budget-sync")
}

func TestRegister_EmptySpecDisablesJob(t *testing.T) {
	s, _ := newTestScheduler(&fakeJobs{}, &fakeLocker{}, config.Scheduler{RolloverSpec: "@daily"})
	require.NoError(t, s.Register())
	require.Len(t, s.cron.Entries(), 1)
}

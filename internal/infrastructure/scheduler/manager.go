// Package scheduler runs the periodic jobs of the service on gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/goroutine"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

// BatchJob processes one batch and returns the number of items handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// FeedRefresher polls the two market feeds. Failures are already recorded
// on the snapshots; the scheduler only logs them.
type FeedRefresher interface {
	RefreshExchangeRate(ctx context.Context) error
	RefreshAPY(ctx context.Context) error
}

const (
	defaultExchangeRateInterval = 30 * time.Minute
	defaultAPYInterval          = time.Minute
	// DefaultMaturityDigestCron runs at 09:00 in the business timezone.
	DefaultMaturityDigestCron = "0 9 * * *"
)

// SchedulerManager owns the single gocron scheduler of the process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a scheduler whose cron expressions are
// evaluated in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterFeedJobs polls each feed on its own interval, starting immediately.
// A poll that overruns its interval is rescheduled rather than stacked.
func (m *SchedulerManager) RegisterFeedJobs(refresher FeedRefresher, exchangeRateEvery, apyEvery time.Duration) error {
	if exchangeRateEvery <= 0 {
		exchangeRateEvery = defaultExchangeRateInterval
	}
	if apyEvery <= 0 {
		apyEvery = defaultAPYInterval
	}

	if err := m.registerFeedJob("feed-exchange-rate", exchangeRateEvery, refresher.RefreshExchangeRate); err != nil {
		return err
	}
	if err := m.registerFeedJob("feed-apy", apyEvery, refresher.RefreshAPY); err != nil {
		return err
	}

	m.logger.Infow("registered feed jobs",
		"exchange_rate_interval", exchangeRateEvery.String(),
		"apy_interval", apyEvery.String())
	return nil
}

func (m *SchedulerManager) registerFeedJob(name string, every time.Duration, refresh func(ctx context.Context) error) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			defer goroutine.Recover(m.logger, name)
			ctx, cancel := context.WithTimeout(context.Background(), every)
			defer cancel()
			if err := refresh(ctx); err != nil {
				m.logger.Debugw("feed refresh failed", "job", name, "error", err)
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("feed"),
		gocron.WithName(name),
	)
	return err
}

// RegisterMaturityDigest runs the digest job on a cron expression.
func (m *SchedulerManager) RegisterMaturityDigest(job BatchJob, cronExpr string) error {
	if cronExpr == "" {
		cronExpr = DefaultMaturityDigestCron
	}

	_, err := m.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			defer goroutine.Recover(m.logger, "maturity-digest")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.runBatch(ctx, "maturity-digest", job)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("admin", "digest"),
		gocron.WithName("maturity-digest"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered maturity digest job", "cron", cronExpr)
	return nil
}

func (m *SchedulerManager) runBatch(ctx context.Context, name string, job BatchJob) {
	startTime := biztime.NowUTC()

	count, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("scheduled job failed",
			"job", name,
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}
	m.logger.Debugw("scheduled job finished",
		"job", name,
		"count", count,
		"duration", time.Since(startTime),
	)
}

// Start starts the scheduler. It is safe to call more than once.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}

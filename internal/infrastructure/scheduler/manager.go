// Package scheduler drives the lifecycle jobs with gocron v2.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/goroutine"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

// LifecycleJobs names the runner jobs each schedule triggers.
type LifecycleJobs struct {
	AccountReminders string
	AccountCleanup   string
	TicketAutoClose  string
	AuditPrune       string
}

func (j LifecycleJobs) validate() error {
	if j.AccountReminders == "" || j.AccountCleanup == "" || j.TicketAutoClose == "" || j.AuditPrune == "" {
		return fmt.Errorf("every lifecycle job needs a name: %+v", j)
	}
	return nil
}

// JobRunner executes a named job and reports whether it succeeded. The
// runner logs its own report.
type JobRunner interface {
	RunScheduled(ctx context.Context, job string) bool
}

// SchedulerManager owns the single gocron scheduler of a worker process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager evaluates cron expressions in the business timezone.
func NewSchedulerManager(log logger.Interface, opts ...gocron.SchedulerOption) (*SchedulerManager, error) {
	opts = append([]gocron.SchedulerOption{gocron.WithLocation(biztime.Location())}, opts...)
	scheduler, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterLifecycleJobs registers:
// - account reminders then cleanup, every interval (hourly by default)
// - ticket auto-close, daily at 02:00
// - audit prune, daily at 03:00
func (m *SchedulerManager) RegisterLifecycleJobs(runner JobRunner, jobs LifecycleJobs, cfg config.SchedulerConfig) error {
	if err := jobs.validate(); err != nil {
		return err
	}
	interval := time.Duration(cfg.AccountIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}
	ticketCron := cfg.TicketCron
	if ticketCron == "" {
		ticketCron = "0 2 * * *"
	}
	auditCron := cfg.AuditCron
	if auditCron == "" {
		auditCron = "0 3 * * *"
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			defer goroutine.Recover(m.logger, "account-lifecycle")
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
			defer cancel()
			m.processAccounts(ctx, runner, jobs)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("account", "reminders", "cleanup"),
		gocron.WithName("account-lifecycle"),
	)
	if err != nil {
		return fmt.Errorf("failed to register account jobs: %w", err)
	}

	if err := m.registerDaily(runner, jobs.TicketAutoClose, ticketCron, 30*time.Minute); err != nil {
		return err
	}
	if err := m.registerDaily(runner, jobs.AuditPrune, auditCron, 30*time.Minute); err != nil {
		return err
	}

	m.logger.Infow("registered lifecycle jobs",
		"account_interval", interval.String(),
		"ticket_cron", ticketCron,
		"audit_cron", auditCron,
	)
	return nil
}

func (m *SchedulerManager) registerDaily(runner JobRunner, job, cron string, timeout time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.CronJob(cron, false),
		gocron.NewTask(func() {
			defer goroutine.Recover(m.logger, job)
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			runner.RunScheduled(ctx, job)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags(job),
		gocron.WithName(job),
	)
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", job, err)
	}
	return nil
}

// processAccounts sends reminders before cleaning up, so an account in its
// last hour is reminded before the next run removes it.
func (m *SchedulerManager) processAccounts(ctx context.Context, runner JobRunner, jobs LifecycleJobs) {
	if !runner.RunScheduled(ctx, jobs.AccountReminders) {
		m.logger.Warnw("reminders failed, continuing with cleanup")
	}
	runner.RunScheduled(ctx, jobs.AccountCleanup)
}

// Start starts the scheduler once.
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

	err := m.scheduler.Shutdown()
	m.started = false
	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted reports whether Start has run without a later Stop.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}

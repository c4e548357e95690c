// Package maintenance runs the lifecycle jobs by name and reports each run
// as a JobReport. The scheduler, the CLI and the admin API all go through it.
package maintenance

import (
	"context"
	"fmt"
	"sort"
	"time"

	accountusecases "github.com/inkwell-print/inkwell/internal/application/account/usecases"
	auditusecases "github.com/inkwell-print/inkwell/internal/application/audit/usecases"
	ticketusecases "github.com/inkwell-print/inkwell/internal/application/ticket/usecases"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

const (
	JobAccountReminders = "account-reminders"
	JobAccountCleanup   = "account-cleanup"
	JobTicketAutoClose  = "ticket-autoclose"
	JobAuditPrune       = "audit-prune"
)

// Jobs lists the job names in the order the hourly and daily schedules run them.
func Jobs() []string {
	return []string{JobAccountReminders, JobAccountCleanup, JobTicketAutoClose, JobAuditPrune}
}

type ReminderSender interface {
	Execute(ctx context.Context, cmd accountusecases.SendRemindersCommand) (*accountusecases.SendRemindersResult, error)
}

type ExpiredAccountCleaner interface {
	Execute(ctx context.Context, actor authorization.Actor) (*accountusecases.CleanupResult, error)
}

type TicketCloser interface {
	Execute(ctx context.Context, actor authorization.Actor) (*ticketusecases.RunDailyResult, error)
}

type AuditPruner interface {
	Execute(ctx context.Context, cmd auditusecases.PruneCommand) (*auditusecases.PruneResult, error)
}

// Options tune a single run. Zero values fall back to configuration.
type Options struct {
	Actor         authorization.Actor
	RetentionDays int
	LeadHours     int
	Force         bool
}

type JobReport struct {
	Job        string         `json:"job" yaml:"job"`
	Success    bool           `json:"success" yaml:"success"`
	Counts     map[string]int `json:"counts" yaml:"counts"`
	Details    any            `json:"details,omitempty" yaml:"details,omitempty"`
	Error      string         `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType  string         `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	StartedAt  string         `json:"started_at" yaml:"started_at"`
	DurationMS int64          `json:"duration_ms" yaml:"duration_ms"`
}

// CountKeys returns the report's count names sorted, for stable text output.
func (r *JobReport) CountKeys() []string {
	keys := make([]string, 0, len(r.Counts))
	for k := range r.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type Runner struct {
	reminders ReminderSender
	cleanup   ExpiredAccountCleaner
	tickets   TicketCloser
	prune     AuditPruner
	clock     biztime.Clock
	logger    logger.Interface
}

// NewRunner creates a runner over the lifecycle use cases.
func NewRunner(
	reminders ReminderSender,
	cleanup ExpiredAccountCleaner,
	tickets TicketCloser,
	prune AuditPruner,
	clock biztime.Clock,
	logger logger.Interface,
) *Runner {
	return &Runner{
		reminders: reminders,
		cleanup:   cleanup,
		tickets:   tickets,
		prune:     prune,
		clock:     clock,
		logger:    logger,
	}
}

// IsKnown reports whether name is a job the runner can execute.
func IsKnown(name string) bool {
	for _, j := range Jobs() {
		if j == name {
			return true
		}
	}
	return false
}

// Run executes one job. It never returns an error or panics; every failure
// is captured in the report.
func (r *Runner) Run(ctx context.Context, job string, opts Options) (report *JobReport) {
	started := r.clock.Now()
	wall := time.Now()
	report = &JobReport{
		Job:       job,
		Counts:    map[string]int{},
		StartedAt: biztime.FormatRFC3339(started),
	}
	if opts.Actor.Role == "" {
		opts.Actor = authorization.SystemActor()
	}

	defer func() {
		if rec := recover(); rec != nil {
			report.Success = false
			report.Error = fmt.Sprintf("job panicked: %v", rec)
			report.ErrorType = string(errors.ErrorTypeInternal)
			r.logger.Errorw("maintenance job panicked", "job", job, "panic", rec)
		}
		report.DurationMS = time.Since(wall).Milliseconds()
		r.log(report)
	}()

	var err error
	switch job {
	case JobAccountReminders:
		err = r.runReminders(ctx, opts, report)
	case JobAccountCleanup:
		err = r.runCleanup(ctx, opts, report)
	case JobTicketAutoClose:
		err = r.runTickets(ctx, opts, report)
	case JobAuditPrune:
		err = r.runPrune(ctx, opts, report)
	default:
		err = errors.NewValidationError(fmt.Sprintf("unknown job %q", job))
	}

	if err != nil {
		report.Error = err.Error()
		report.ErrorType = string(errors.ErrorTypeInternal)
		if appErr := errors.GetAppError(err); appErr != nil {
			report.Error = appErr.Message
			report.ErrorType = string(appErr.Type)
		}
		return report
	}
	report.Success = true
	return report
}

func (r *Runner) runReminders(ctx context.Context, opts Options, report *JobReport) error {
	res, err := r.reminders.Execute(ctx, accountusecases.SendRemindersCommand{Actor: opts.Actor, LeadHours: opts.LeadHours})
	if err != nil {
		return err
	}
	report.Counts["reminder_count"] = res.ReminderCount
	report.Counts["sent_count"] = res.SentCount
	report.Counts["skipped_count"] = res.SkippedCount
	report.Counts["failed_count"] = res.FailedCount
	report.Details = res
	return nil
}

func (r *Runner) runCleanup(ctx context.Context, opts Options, report *JobReport) error {
	res, err := r.cleanup.Execute(ctx, opts.Actor)
	if err != nil {
		return err
	}
	report.Counts["deleted_count"] = res.DeletedCount
	report.Details = res
	return nil
}

func (r *Runner) runTickets(ctx context.Context, opts Options, report *JobReport) error {
	res, err := r.tickets.Execute(ctx, opts.Actor)
	if res != nil {
		report.Counts["closed_count"] = res.ClosedCount
		report.Counts["anon_closed_count"] = res.AnonClosedCount
		report.Counts["failed_count"] = res.FailedCount
		report.Details = res
	}
	return err
}

func (r *Runner) runPrune(ctx context.Context, opts Options, report *JobReport) error {
	res, err := r.prune.Execute(ctx, auditusecases.PruneCommand{RetentionDays: opts.RetentionDays, Force: opts.Force})
	if err != nil {
		return err
	}
	report.Counts["deleted_count"] = int(res.DeletedCount)
	if res.Skipped {
		report.Counts["skipped"] = 1
	}
	report.Details = res
	return nil
}

// log writes the finished report at info or error level.
func (r *Runner) log(report *JobReport) {
	kv := []interface{}{
		"job", report.Job,
		"success", report.Success,
		"duration_ms", report.DurationMS,
	}
	for _, k := range report.CountKeys() {
		kv = append(kv, k, report.Counts[k])
	}
	if report.Success {
		r.logger.Infow("maintenance job finished", kv...)
		return
	}
	kv = append(kv, "error", report.Error, "error_type", report.ErrorType)
	r.logger.Errorw("maintenance job failed", kv...)
}

// RunScheduled runs job with default options as the system actor and
// reports whether it succeeded.
func (r *Runner) RunScheduled(ctx context.Context, job string) bool {
	return r.Run(ctx, job, Options{Actor: authorization.SystemActor()}).Success
}

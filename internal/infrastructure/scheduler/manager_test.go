package scheduler

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

type recordingRunner struct {
	mu   sync.Mutex
	runs []string
	fail map[string]bool
}

func (r *recordingRunner) RunScheduled(ctx context.Context, job string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, job)
	return !r.fail[job]
}

func (r *recordingRunner) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.runs...)
}

var testJobs = LifecycleJobs{
	AccountReminders: "reminders",
	AccountCleanup:   "cleanup",
	TicketAutoClose:  "ticket-autoclose",
	AuditPrune:       "audit-prune",
}

func TestRegisterLifecycleJobs(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, m.RegisterLifecycleJobs(&recordingRunner{}, testJobs, config.SchedulerConfig{}))

	names := make([]string, 0)
	for _, j := range m.Jobs() {
		names = append(names, j.Name())
	}
	sort.Strings(names)
	assert.Equal(t, []string{"account-lifecycle", "audit-prune", "ticket-autoclose"}, names)
}

func TestRegisterLifecycleJobs_InvalidCron(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	err = m.RegisterLifecycleJobs(&recordingRunner{}, testJobs, config.SchedulerConfig{TicketCron: "every day"})
	assert.Error(t, err)
}

func TestRegisterLifecycleJobs_MissingName(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	jobs := testJobs
	jobs.AuditPrune = ""
	err = m.RegisterLifecycleJobs(&recordingRunner{}, jobs, config.SchedulerConfig{})
	assert.Error(t, err)
	assert.Empty(t, m.Jobs())
}

func TestAccountJobsRunRemindersBeforeCleanup(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)
	runner := &recordingRunner{fail: map[string]bool{testJobs.AccountReminders: true}}

	require.NoError(t, m.RegisterLifecycleJobs(runner, testJobs, config.SchedulerConfig{}))
	m.Start()
	defer func() { _ = m.Stop() }()
	assert.True(t, m.IsStarted())

	require.Eventually(t, func() bool { return len(runner.snapshot()) >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{testJobs.AccountReminders, testJobs.AccountCleanup}, runner.snapshot()[:2])
}

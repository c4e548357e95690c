package worker

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkwell-print/inkwell/internal/application/maintenance"
	"github.com/inkwell-print/inkwell/internal/infrastructure/database"
	"github.com/inkwell-print/inkwell/internal/infrastructure/scheduler"
	"github.com/inkwell-print/inkwell/internal/interfaces/cli/bootstrap"
	httpapi "github.com/inkwell-print/inkwell/internal/interfaces/http"
)

var flags bootstrap.Flags

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the lifecycle scheduler",
		Long: `Run the background scheduler: hourly verification reminders and expired
account cleanup, daily ticket auto-close and daily audit log pruning.`,
		RunE: run,
	}
	flags.Bind(cmd)
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.InitWithDatabase(&flags)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := httpapi.NewContainer(ctx, cfg, database.Get(), log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	manager, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	jobs := scheduler.LifecycleJobs{
		AccountReminders: maintenance.JobAccountReminders,
		AccountCleanup:   maintenance.JobAccountCleanup,
		TicketAutoClose:  maintenance.JobTicketAutoClose,
		AuditPrune:       maintenance.JobAuditPrune,
	}
	if err := manager.RegisterLifecycleJobs(container.Runner, jobs, cfg.Scheduler); err != nil {
		return err
	}

	manager.Start()
	log.Infow("worker started")

	<-ctx.Done()

	log.Infow("stopping worker")
	if err := manager.Stop(); err != nil {
		log.Errorw("scheduler did not stop cleanly", "error", err)
		return err
	}
	log.Infow("worker stopped")
	return nil
}

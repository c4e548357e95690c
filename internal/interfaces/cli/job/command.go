// Package job runs a single lifecycle job from the command line, for cron
// hosts and manual intervention.
package job

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkwell-print/inkwell/internal/application/maintenance"
	"github.com/inkwell-print/inkwell/internal/infrastructure/database"
	"github.com/inkwell-print/inkwell/internal/interfaces/cli/bootstrap"
	httpapi "github.com/inkwell-print/inkwell/internal/interfaces/http"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
)

var (
	flags         bootstrap.Flags
	retentionDays int
	leadHours     int
	force         bool
	output        string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Run lifecycle jobs on demand",
	}
	flags.Bind(cmd)

	cmd.AddCommand(newRunCommand(), newListCommand())
	return cmd
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "run <name>",
		Short:     "Run one job and print its report",
		Args:      cobra.ExactArgs(1),
		ValidArgs: maintenance.Jobs(),
		RunE:      runJob,
	}
	cmd.Flags().IntVar(&retentionDays, "retention-days", 0, "Audit retention window in days (audit-prune)")
	cmd.Flags().IntVar(&leadHours, "lead-hours", 0, "Reminder lead in hours (account-reminders)")
	cmd.Flags().BoolVar(&force, "force", false, "Bypass the once-per-day guard (audit-prune)")
	cmd.Flags().StringVarP(&output, "output", "o", formatText, "Output format: text, json or yaml")
	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the job names",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range maintenance.Jobs() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func runJob(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !maintenance.IsKnown(name) {
		return fmt.Errorf("unknown job %q, expected one of: %s", name, strings.Join(maintenance.Jobs(), ", "))
	}
	if !isFormat(output) {
		return fmt.Errorf("unknown output format %q", output)
	}

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

	report := container.Runner.Run(ctx, name, maintenance.Options{
		Actor:         authorization.SystemActor(),
		RetentionDays: retentionDays,
		LeadHours:     leadHours,
		Force:         force,
	})

	if err := render(cmd.OutOrStdout(), report, output); err != nil {
		return err
	}
	if !report.Success {
		return fmt.Errorf("job %s failed: %s", name, report.Error)
	}
	return nil
}

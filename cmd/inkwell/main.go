package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwell-print/inkwell/internal/interfaces/cli/job"
	"github.com/inkwell-print/inkwell/internal/interfaces/cli/migrate"
	"github.com/inkwell-print/inkwell/internal/interfaces/cli/server"
	"github.com/inkwell-print/inkwell/internal/interfaces/cli/worker"
	"github.com/inkwell-print/inkwell/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "inkwell",
		Short: "Inkwell print shop backend",
		Long: `Inkwell runs the print shop's account, support ticket and audit lifecycle:
the HTTP API, the background scheduler, schema migrations and one-off job runs.`,
		Version:      version.Current(),
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		server.NewCommand(),
		worker.NewCommand(),
		migrate.NewCommand(),
		job.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

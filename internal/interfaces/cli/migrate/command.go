package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-print/inkwell/internal/infrastructure/database"
	"github.com/inkwell-print/inkwell/internal/infrastructure/migration"
	"github.com/inkwell-print/inkwell/internal/interfaces/cli/bootstrap"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

var (
	flags      bootstrap.Flags
	name       string
	steps      int
	scriptsDir string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect the schema migrations, or create a new migration script.`,
	}

	flags.Bind(cmd)

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration script",
		RunE:  runCreate,
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&scriptsDir, "dir", migration.ScriptsDir, "Directory to write the script to")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func openManager() (*migration.Manager, logger.Interface, error) {
	cfg, log, err := bootstrap.InitWithDatabase(&flags)
	if err != nil {
		return nil, nil, err
	}
	return migration.NewManager(&cfg.Database), log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	manager, log, err := openManager()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", flags.Env, "strategy", manager.StrategyName())
	return manager.Migrate(database.Get())
}

func runDown(cmd *cobra.Command, args []string) error {
	manager, log, err := openManager()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", flags.Env, "steps", steps)
	if err := manager.Down(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}
	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	manager, _, err := openManager()
	if err != nil {
		return err
	}
	defer database.Close()

	version, err := manager.Version(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", flags.Env)
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	return manager.Status(database.Get())
}

func runCreate(cmd *cobra.Command, args []string) error {
	if _, _, err := bootstrap.Init(&flags); err != nil {
		return err
	}
	if err := migration.Create(scriptsDir, name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, scriptsDir)
	return nil
}

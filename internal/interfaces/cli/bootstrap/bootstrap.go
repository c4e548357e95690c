// Package bootstrap holds the startup steps shared by every command.
package bootstrap

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-print/inkwell/internal/infrastructure/config"
	"github.com/inkwell-print/inkwell/internal/infrastructure/database"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

// Flags are the persistent flags every command accepts.
type Flags struct {
	Env        string
	ConfigPath string
}

func (f *Flags) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
}

// Init loads configuration and initializes logging and the business
// timezone. It does not touch the database.
func Init(flags *Flags) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(flags.Env, flags.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// InitWithDatabase runs Init and opens the database. Callers must defer
// database.Close.
func InitWithDatabase(flags *Flags) (*config.Config, logger.Interface, error) {
	cfg, log, err := Init(flags)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, nil
}

package migration

import (
	"fmt"
	"os"
	"strings"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

// ScriptsDir is where `migrate create` writes new scripts. They are picked
// up by the embed on the next build.
const ScriptsDir = "internal/infrastructure/migration/scripts"

// Manager picks a strategy from the database driver.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager creates a migration manager. SQLite uses gorm AutoMigrate,
// every other driver runs the embedded goose scripts.
func NewManager(cfg *config.DatabaseConfig) *Manager {
	var strategy Strategy
	if cfg.IsSQLite() {
		strategy = NewGormAutoMigrateStrategy()
	} else {
		strategy = NewGooseStrategy("mysql")
	}
	return NewManagerWithStrategy(strategy)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy.
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

// Migrate executes the configured migration strategy.
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) StrategyName() string {
	return m.strategy.GetName()
}

func (m *Manager) goose() (*GooseStrategy, error) {
	g, ok := m.strategy.(*GooseStrategy)
	if !ok {
		return nil, fmt.Errorf("strategy %s does not track versions", m.strategy.GetName())
	}
	return g, nil
}

// Down rolls back steps migrations. Only goose supports it.
func (m *Manager) Down(db *gorm.DB, steps int) error {
	g, err := m.goose()
	if err != nil {
		return err
	}
	return g.Down(db, steps)
}

// Status prints the goose migration status.
func (m *Manager) Status(db *gorm.DB) error {
	g, err := m.goose()
	if err != nil {
		return err
	}
	return g.Status(db)
}

// Version returns the current goose schema version.
func (m *Manager) Version(db *gorm.DB) (int64, error) {
	g, err := m.goose()
	if err != nil {
		return 0, err
	}
	return g.Version(db)
}

// Create writes an empty SQL script pair under dir.
func Create(dir, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("migration name is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}
	goose.SetBaseFS(nil)
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}
	return nil
}

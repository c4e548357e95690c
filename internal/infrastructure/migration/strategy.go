package migration

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/models"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

//go:embed scripts/*.sql
var embeddedScripts embed.FS

const embeddedDir = "scripts"

// Strategy brings a schema up to date.
type Strategy interface {
	Migrate(db *gorm.DB) error
	GetName() string
}

// GooseStrategy applies the versioned SQL scripts compiled into the binary.
type GooseStrategy struct {
	dialect string
	logger  logger.Interface
}

// NewGooseStrategy creates a new goose strategy for dialect.
func NewGooseStrategy(dialect string) *GooseStrategy {
	return &GooseStrategy{
		dialect: dialect,
		logger:  logger.NewLogger().With("component", "migration.goose"),
	}
}

func (s *GooseStrategy) prepare(db *gorm.DB) (*sql.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	goose.SetBaseFS(embeddedScripts)
	goose.SetLogger(gooseLogger{s.logger})
	if err := goose.SetDialect(s.dialect); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return sqlDB, nil
}

// Migrate applies every pending script.
func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return err
	}

	current, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	s.logger.Infow("starting goose migration", "current_version", current)

	if err := goose.Up(sqlDB, embeddedDir); err != nil {
		s.logger.Errorw("goose migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	final, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	s.logger.Infow("goose migration completed", "from_version", current, "to_version", final)
	return nil
}

// Down rolls back the given number of versions.
func (s *GooseStrategy) Down(db *gorm.DB, steps int) error {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return err
	}
	if steps < 1 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, embeddedDir); err != nil {
			return fmt.Errorf("failed to roll back migration %d of %d: %w", i+1, steps, err)
		}
	}
	return nil
}

// Version returns the current schema version.
func (s *GooseStrategy) Version(db *gorm.DB) (int64, error) {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return 0, err
	}
	return goose.GetDBVersion(sqlDB)
}

// Status prints the applied state of every script through the logger.
func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return err
	}
	return goose.Status(sqlDB, embeddedDir)
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

// GormAutoMigrateStrategy derives the schema from the row models. Used for
// sqlite, where the MySQL scripts do not apply.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

// NewGormAutoMigrateStrategy creates a new GORM auto migrate strategy.
func NewGormAutoMigrateStrategy() *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

// Migrate creates or alters the tables of every persistence model.
func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := models.All()
	s.logger.Infow("starting gorm auto migration", "models_count", len(all))
	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

type gooseLogger struct {
	log logger.Interface
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infow(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatalw(fmt.Sprintf(format, v...))
}

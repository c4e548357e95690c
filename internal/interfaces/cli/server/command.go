package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/inkwell-print/inkwell/internal/infrastructure/database"
	"github.com/inkwell-print/inkwell/internal/infrastructure/migration"
	"github.com/inkwell-print/inkwell/internal/interfaces/cli/bootstrap"
	httpapi "github.com/inkwell-print/inkwell/internal/interfaces/http"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/version"
)

var (
	flags       bootstrap.Flags
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Inkwell HTTP API: registration, support conversations and the admin lifecycle endpoints.`,
		RunE:  run,
	}

	flags.Bind(cmd)
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.InitWithDatabase(&flags)
	if err != nil {
		return err
	}
	defer database.Close()

	cfg.Server.Mode = mapEnvToGinMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	log.Infow("starting server", "version", version.Current(), "environment", flags.Env, "auto_migrate", autoMigrate)

	if autoMigrate {
		if err := migration.NewManager(&cfg.Database).Migrate(database.Get()); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := httpapi.NewContainer(ctx, cfg, database.Get(), log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.Router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", srv.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpapi.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	_ = logger.Sync()
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

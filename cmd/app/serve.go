package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printdelivery/cmd"
	"printdelivery/internal/adapters/out/postgres/orderrepo"
	"printdelivery/internal/config"

	"github.com/spf13/cobra"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, event streams and background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			slog.SetDefault(logger)

			configs := getConfigs()
			if err := configs.Validate(); err != nil {
				return err
			}
			settings, err := config.Load(configs.SettingsFile)
			if err != nil {
				return err
			}

			gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.StatusTimestampDTO{}); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			app, err := cmd.NewCompositionRoot(configs, settings, gormDB, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err = app.Start(ctx); err != nil {
				app.Close()
				return err
			}
			defer app.Close()

			return startWebServer(ctx, app, configs.HTTPPort, logger)
		},
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	e, err := app.Router()
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()
	logger.Info("HTTP server started", "port", port)

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	// event streams only end with their connection
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown timed out, closing connections", "error", err)
		return e.Close()
	}
	return nil
}

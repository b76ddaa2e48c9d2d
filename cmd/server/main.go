// Package main is the billing-admin binary: the dashboard API server plus
// schema migration commands.
//
// @title                       Billing Admin API
// @version                     1.0
// @description                 Invoices, customers and dashboard figures for the billing admin.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/acmedash/billing-admin/internal/infrastructure/db/postgres"
	"github.com/acmedash/billing-admin/internal/pkg/config"
	"github.com/acmedash/billing-admin/pkg/logger"
)

const (
	appName         = "billing-admin"
	shutdownTimeout = 10 * time.Second
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Billing admin dashboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file read before the environment")

	cmd.AddCommand(serveCmd(&envFile), migrateCmd(&envFile))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *envFile)
		},
	}
}

func serve(ctx context.Context, envFile string) error {
	cfg, err := config.Load(ctx, envFile)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: appName,
		Version: Version,
	})

	app, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := app.router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.router.Shutdown(shutdownCtx)
}

func migrateCmd(envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	run := func(fn func(m *postgres.Migrator, cmd *cobra.Command) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx, *envFile)
			if err != nil {
				return err
			}
			log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Service: appName, Version: Version})

			db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.URL})
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}

			m, err := postgres.NewMigrator(sqlDB, logger.Component(log, "migrate"))
			if err != nil {
				_ = sqlDB.Close()
				return err
			}
			// Closing the migrator also closes sqlDB.
			defer m.Close()
			return fn(m, cmd)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE:  run(func(m *postgres.Migrator, _ *cobra.Command) error { return m.Up() }),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			RunE:  run(func(m *postgres.Migrator, _ *cobra.Command) error { return m.Down() }),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: run(func(m *postgres.Migrator, cmd *cobra.Command) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", v, dirty)
				return nil
			}),
		},
	)
	return cmd
}

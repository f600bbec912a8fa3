package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/phrazzld/taskflow-api/internal/config"
	"github.com/phrazzld/taskflow-api/internal/platform/logger"
	"github.com/phrazzld/taskflow-api/internal/platform/migrate"
	"github.com/phrazzld/taskflow-api/internal/platform/telemetry"
	"github.com/spf13/cobra"
)

// newRootCommand builds the CLI. Running the binary without a subcommand
// starts the server.
func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "taskflow-api",
		Short: "Multi-user task tracker REST API",
		Long: `taskflow-api serves a JSON REST API for registering users and managing
their tasks.

CONFIGURATION:
  Settings come from flags, TASKFLOW_* environment variables and an optional
  config.yaml, in that order of precedence. For example:
    TASKFLOW_DATABASE_DRIVER     postgres or sqlite (default: postgres)
    TASKFLOW_DATABASE_URL        connection string (DATABASE_URL also works)
    TASKFLOW_AUTH_JWT_SECRET     token signing secret, at least 32 characters
    TASKFLOW_SERVER_PORT         listen port (default: 8080)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default ./config.yaml if present)")

	serve := newServeCommand(&configFile)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newMigrateCommand(&configFile))
	return root
}

// loadRuntime loads configuration and installs the process logger.
func loadRuntime(configFile string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)
	return cfg, l, nil
}

func newServeCommand(configFile *string) *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, l, err := loadRuntime(*configFile)
			if err != nil {
				return err
			}

			shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, l)
			if err != nil {
				return fmt.Errorf("failed to set up telemetry: %w", err)
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				if err := shutdownTelemetry(shutdownCtx); err != nil {
					l.Error("failed to flush telemetry", "error", err)
				}
			}()

			db, err := setupAppDatabase(ctx, cfg.Database, l)
			if err != nil {
				return err
			}

			if autoMigrate {
				m, err := migrate.New(db, cfg.Database.Driver, l)
				if err != nil {
					_ = db.Close()
					return err
				}
				if err := m.Up(ctx); err != nil {
					_ = db.Close()
					return fmt.Errorf("failed to apply migrations: %w", err)
				}
			}

			app, err := newApplication(cfg, l, db)
			if err != nil {
				_ = db.Close()
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			return app.Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func newMigrateCommand(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	// run opens the configured database, builds a Migrator and hands it to fn.
	run := func(fn func(ctx context.Context, m *migrate.Migrator, out io.Writer) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, l, err := loadRuntime(*configFile)
			if err != nil {
				return err
			}

			db, err := setupAppDatabase(cmd.Context(), cfg.Database, l)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			m, err := migrate.New(db, cfg.Database.Driver, l)
			if err != nil {
				return err
			}
			return fn(cmd.Context(), m, cmd.OutOrStdout())
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: run(func(ctx context.Context, m *migrate.Migrator, _ io.Writer) error {
				return m.Up(ctx)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: run(func(ctx context.Context, m *migrate.Migrator, _ io.Writer) error {
				return m.Down(ctx)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: run(func(ctx context.Context, m *migrate.Migrator, out io.Writer) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
				for _, s := range statuses {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Source.Version, s.State, s.Source.Path)
				}
				return tw.Flush()
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: run(func(ctx context.Context, m *migrate.Migrator, out io.Writer) error {
				v, err := m.Version(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, v)
				return err
			}),
		},
	)
	return cmd
}

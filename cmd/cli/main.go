package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/cmd/cli/commands"
	"github.com/jakechorley/timetable-scheduler/internal/config"
	"github.com/jakechorley/timetable-scheduler/pkg/cache"
	"github.com/jakechorley/timetable-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/timetable-scheduler/pkg/core/services"
	"github.com/jakechorley/timetable-scheduler/pkg/db"
	"github.com/jakechorley/timetable-scheduler/pkg/metrics"
	"github.com/jakechorley/timetable-scheduler/pkg/postgres"
	"github.com/jakechorley/timetable-scheduler/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     *commands.AppContext
)

func main() {
	app = &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Timetable Scheduler CLI - Generate weekly class timetables",
		Long: `A CLI tool for generating weekly class timetables from a subjects dataset and a
rooms config, serving the timetable API and publishing results to Google Sheets.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeApp()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.SessionsCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.CalendarCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		closeApp()
		os.Exit(1)
	}
}

// initApp sets up logger, config, session store, cache and metrics
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	app.Logger, err = logging.New(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !config.MorningWeightInRange(app.Cfg.MorningWeight) {
		app.Logger.Warn("Configured morning weight is outside the recommended range",
			zap.Float64("morning_weight", app.Cfg.MorningWeight),
			zap.Float64("max", config.MaxMorningWeight))
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("store", app.Cfg.Store.Backend),
		zap.Float64("morning_weight", app.Cfg.MorningWeight))

	switch app.Cfg.Store.Backend {
	case "postgres":
		app.Logger.Info("Connecting to database")
		app.Postgres, err = postgres.NewDB(app.Ctx, app.Cfg.Store.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.Store = app.Postgres
		app.Logger.Debug("Database connected successfully")
	default:
		app.Store = db.NewMemoryStore()
		app.Logger.Debug("Using in-memory session store")
	}

	redisClient, err := cache.NewRedis(app.Ctx, app.Cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.Cache = cache.NewResultCache(redisClient, app.Cfg.Redis.TTL, app.Logger)
	app.Logger.Debug("Result cache initialized", zap.Bool("enabled", app.Cache.Enabled()))

	app.Metrics = metrics.New()

	app.NewPublisher = newPublisher()

	return nil
}

// newPublisher connects to Google Sheets on first call and reuses the client afterwards
func newPublisher() func() (services.TimetablePublisher, error) {
	var client *sheetsclient.Client
	return func() (services.TimetablePublisher, error) {
		if client != nil {
			return client, nil
		}

		app.Logger.Info("Loading OAuth client configuration")
		oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
		if err != nil {
			return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
		}

		app.Logger.Info("Initializing sheets client")
		client, err = sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
		if err != nil {
			client = nil
			return nil, fmt.Errorf("failed to create sheets client: %w", err)
		}
		app.Logger.Debug("Sheets client initialized successfully")

		return client, nil
	}
}

func closeApp() {
	if app.Postgres != nil {
		app.Postgres.Close()
		app.Postgres = nil
	}
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
}

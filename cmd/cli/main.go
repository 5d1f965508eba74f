package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/undiescoverd/stomp-scheduler/cmd/cli/commands"
	"github.com/undiescoverd/stomp-scheduler/internal/config"
	"github.com/undiescoverd/stomp-scheduler/pkg/clients/rosterclient"
	"github.com/undiescoverd/stomp-scheduler/pkg/postgres"
	"github.com/undiescoverd/stomp-scheduler/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Stomp Scheduler CLI - Manage cast schedules",
		Long:  `A CLI tool for defining schedule weeks, generating cast assignments and validating schedules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.DefineWeekCmd(appRef()))
	rootCmd.AddCommand(commands.GenerateScheduleCmd(appRef()))
	rootCmd.AddCommand(commands.ValidateScheduleCmd(appRef()))
	rootCmd.AddCommand(commands.ListCastCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, allocating it before initApp fills
// it in. Commands only dereference it inside RunE, after PersistentPreRunE
// has run.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, clients, and database
func initApp() error {
	appRef()
	app.Ctx = context.Background()

	// Initialize logger
	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	// Initialize roster client when a roster sheet is configured. Failure
	// is not fatal: the engine falls back to the configured roster.
	if app.Cfg.RosterSheetID != "" {
		app.Logger.Info("Loading OAuth client configuration")
		oauthCfg, err := config.LoadOAuthClientWithEnv(env)
		if err != nil {
			app.Logger.Warn("OAuth config unavailable, roster falls back to configuration", zap.Error(err))
		} else {
			app.Logger.Info("Initializing roster client")
			app.RosterClient, err = rosterclient.NewClient(app.Ctx, oauthCfg)
			if err != nil {
				app.Logger.Warn("Roster client unavailable, roster falls back to configuration", zap.Error(err))
			}
		}
	}

	// Connect to the schedule database
	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Database = database
	app.Logger.Info("Database initialized successfully")

	return nil
}

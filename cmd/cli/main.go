package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/cmd/cli/commands"
	"github.com/jakechorley/workday-roster/internal/config"
	"github.com/jakechorley/workday-roster/pkg/core/services"
	"github.com/jakechorley/workday-roster/pkg/metrics"
	"github.com/jakechorley/workday-roster/pkg/postgres"
	"github.com/jakechorley/workday-roster/pkg/utils/logging"
)

var (
	env        string
	configPath string
	logDir     string
	app        = &commands.AppContext{}
	closeDB    func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "roster",
		Short:         "Workday Roster CLI - Schedule employees onto weekly workdays",
		Long:          `A CLI tool for generating, comparing and publishing weekly workday rosters.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeDB != nil {
				closeDB()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: roster_config_<env>.yaml)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", logging.DefaultDir, "Directory for log files")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.EnsureWorkdaysCmd(app))
	rootCmd.AddCommand(commands.RunStrategyCmd(app))
	rootCmd.AddCommand(commands.EvaluateCmd(app))
	rootCmd.AddCommand(commands.ListSchedulesCmd(app))
	rootCmd.AddCommand(commands.AssignCmd(app))
	rootCmd.AddCommand(commands.PublishWeekCmd(app))
	rootCmd.AddCommand(commands.ExportWeekCmd(app))

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if app.Logger != nil {
			app.Logger.Error("Command failed", zap.Error(err))
			app.Logger.Sync()
		}
		os.Exit(1)
	}
}

// initApp sets up logger, config, database and metrics
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	// Initialize logger
	var logPath string
	app.Logger, logPath, err = logging.InitLogger(env, logDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))
	app.Logger.Debug("Logging to file", zap.String("path", logPath))

	// Load configuration
	app.Logger.Info("Loading configuration")
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("timezone", app.Cfg.Timezone),
		zap.String("workday_rrule", app.Cfg.WorkdayRRule))

	// Connect to database
	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	closeDB = database.Close

	applied, err := database.RunMigrations(app.Ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if len(applied) > 0 {
		app.Logger.Info("Migrations applied", zap.Strings("migrations", applied))
	}

	app.Database = database
	app.Recorder = metrics.NewRecorder()
	app.Logger.Info("Database initialized successfully")

	return nil
}

// Package cli provides the command-line surface of the planner.
package cli

import (
	"fmt"
	"net/http/httptest"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"alcyxob/plan-builder/internal/api"
	"alcyxob/plan-builder/internal/config"
	"alcyxob/plan-builder/internal/remote"
	"alcyxob/plan-builder/internal/repository"
)

const demoToken = "demo-token"

// App carries the wired dependencies shared by every command.
type App struct {
	cfg     config.Config
	logger  zerolog.Logger
	repo    *repository.PlanRepository
	cleanup func()
}

// Execute runs the planner CLI.
func Execute() error {
	app := &App{}
	return NewRootCmd(app).Execute()
}

// NewRootCmd builds the root command tree around the given app.
func NewRootCmd(app *App) *cobra.Command {
	var (
		configPath string
		demo       bool
		verbose    bool
	)

	root := &cobra.Command{
		Use:           "planner",
		Short:         "Build recurring training plans against the remote plan store",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(configPath, demo, verbose)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app.cleanup != nil {
				app.cleanup()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", ".", "directory holding config.yaml")
	root.PersistentFlags().BoolVar(&demo, "demo", false, "run against a seeded in-process store")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newSchedulesCmd(app))
	root.AddCommand(newRoutinesCmd(app))

	return root
}

// init wires config, logging, and the repository. In demo mode an in-process
// fake of the remote store is started and seeded so every command works
// without a real backend.
func (a *App) init(configPath string, demo, verbose bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	} else if parsed, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		level = parsed
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	baseURL := cfg.API.BaseURL
	token := cfg.API.Token
	if demo {
		stub := remote.NewStub(demoToken)
		seedDemoData(stub)
		server := httptest.NewServer(stub.Router())
		a.cleanup = server.Close
		baseURL = server.URL
		token = demoToken
		a.logger.Info().Str("url", baseURL).Msg("demo store started")
	}

	client := api.NewClient(baseURL, api.StaticToken(token), cfg.API.Timeout, a.logger)
	a.repo = repository.NewPlanRepository(client, a.logger)
	return nil
}

func seedDemoData(stub *remote.Stub) {
	stub.SeedExercise("Bench Press", "Chest")
	stub.SeedExercise("Squat", "Legs")
	stub.SeedExercise("Deadlift", "Back")
	stub.SeedExercise("Overhead Press", "Shoulders")
	stub.SeedSchedule("Summer Cut 2025", "2025-06-01", "2025-08-31", false)
	stub.SeedSchedule("Strength Base", "2025-01-01", "", true)
}

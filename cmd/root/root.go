// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"

	"cardsense/cardsense-india/internal/config"
	"cardsense/cardsense-india/internal/container"
	"cardsense/cardsense-india/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is loaded in PersistentPreRunE
	AppConfig *config.Config

	// AppContainer is created on first use by GetContainer
	AppContainer *container.Container

	configFile string
	logLevel   string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "cardsense",
		Short: "Extract and categorize transactions from Indian bank statements.",
		Long: `cardsense reads PDF and CSV bank or credit card statements, extracts
transactions, assigns each one a spending category and stores them per user.
It can run as an HTTP service or parse statements from the command line.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close resources")
			}
			AppContainer = nil
		},
	}
)

// Init registers the persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (YAML)")
	Cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (trace, debug, info, warn, error)")
}

func initialize(cmd *cobra.Command, args []string) error {
	config.LoadEnv(Log)

	cfg, err := config.InitializeConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	AppConfig = cfg
	Log = config.NewLogger(cfg)
	return nil
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return AppConfig
}

// GetContainer wires the application on first call. opts only apply to
// that first call.
func GetContainer(ctx context.Context, opts ...container.Option) (*container.Container, error) {
	if AppContainer != nil {
		return AppContainer, nil
	}
	if AppConfig == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	c, err := container.NewContainer(ctx, AppConfig, append([]container.Option{container.WithLogger(Log)}, opts...)...)
	if err != nil {
		return nil, err
	}
	AppContainer = c
	return c, nil
}

package config

import (
	"os"
	"path/filepath"

	"cardsense/cardsense-india/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, if one exists. Variables already set are not overridden.
func LoadEnv(logger logging.Logger) {
	logger = logging.OrDefault(logger)

	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			logger.Debug("No .env file found, using environment variables")
			return
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.WithError(err).Warn("Error loading .env file")
		return
	}
	logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
}

// NewLogger builds the application logger from the log section.
func NewLogger(cfg *Config) logging.Logger {
	return logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
}

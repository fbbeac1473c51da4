package logging

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/edvin/bookclub/internal/config"
)

// NewLogger creates a structured zerolog.Logger for the service.
func NewLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "bookclub-api").
		Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}

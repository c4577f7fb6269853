// Package logger configures the global zerolog logger used by patchsim.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the logger.
type Config struct {
	Level      string `mapstructure:"level" toml:"level"`
	File       string `mapstructure:"file" toml:"file"`
	JSONFormat bool   `mapstructure:"json_format" toml:"json_format"`
}

// DefaultLevel is used when no level is configured
const DefaultLevel = "warn"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup configures the global logger. Console output goes to stderr; when a
// file is configured, entries are also appended there as JSON or plain text.
// The returned closer releases the log file.
func Setup(cfg Config) (io.Closer, error) {
	return SetupWithWriter(cfg, os.Stderr)
}

// SetupWithWriter is Setup with a custom console destination
func SetupWithWriter(cfg Config, console io.Writer) (io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339})

	if cfg.File != "" {
		logFile, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closer = logFile
		if cfg.JSONFormat {
			writers = append(writers, logFile)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{Out: logFile, TimeFormat: time.RFC3339, NoColor: true})
		}
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	log.Logger = zerolog.New(multiWriter).With().Timestamp().Logger()

	SetLevel(cfg.Level)

	log.Debug().Str("level", zerolog.GlobalLevel().String()).Msg("Logger initialized")
	return closer, nil
}

// SetLevel sets the global logging level. An empty level selects DefaultLevel.
func SetLevel(level string) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Msgf("Unknown log level '%s', defaulting to '%s'", level, DefaultLevel)
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// Package xlog builds the zerolog.Logger used by cmd/ entry points and
// installed into internal/xpanic so programmer-error panics are logged with
// the same structured fields as everything else.
package xlog

import (
	"os"

	"github.com/rs/zerolog"
)

// Config mirrors the logging section of a driver's YAML config.
type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// New builds a logger from cfg. Level defaults to info on a parse failure;
// format "console" produces human-readable output, anything else JSON.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

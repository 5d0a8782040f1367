// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger for the behavior flags. Tracing needs the
// debug level, quiet mode only shows errors.
func CreateLogger(flags options.Flags) *log.Logger {
	return log.NewWithConfig(loggerConfig(flags))
}

func loggerConfig(flags options.Flags) log.Config {
	cfg := log.DefaultConfig()
	switch {
	case flags.Debug, flags.Trace:
		cfg.Level = log.DebugLevel
	case flags.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return cfg
}

// PrintBanner prints the application version information.
func PrintBanner(logger *log.Logger, flags options.Flags, version, commit, date string) {
	if flags.Quiet {
		return
	}
	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}

// Package config handles logger setup and the environment configuration.
package config

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// verbosity is the log output level selected by the environment.
type verbosity int

const (
	verbosityInfo verbosity = iota
	verbosityDebug
	verbosityQuiet
)

// CreateLogger creates the application logger. RETROCHIP8_LOG selects debug,
// info or quiet (errors only) output. RETROCHIP8_TRACE forces debug output
// regardless of RETROCHIP8_LOG, as instruction traces are logged at debug level.
func CreateLogger(env options.Environment) *log.Logger {
	cfg := log.DefaultConfig()
	switch loggerVerbosity(env) {
	case verbosityDebug:
		cfg.Level = log.DebugLevel
	case verbosityQuiet:
		cfg.Level = log.ErrorLevel
	case verbosityInfo:
	}
	return log.NewWithConfig(cfg)
}

func loggerVerbosity(env options.Environment) verbosity {
	switch {
	case env.Trace, env.Debug:
		return verbosityDebug
	case env.Quiet:
		return verbosityQuiet
	default:
		return verbosityInfo
	}
}

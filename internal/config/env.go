package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// Environment variable names.
const (
	EnvDisplay = "RETROCHIP8_DISPLAY"
	EnvScale   = "RETROCHIP8_SCALE"
	EnvWebAddr = "RETROCHIP8_WEB_ADDR"
	EnvLog     = "RETROCHIP8_LOG"
	EnvTrace   = "RETROCHIP8_TRACE"
	EnvMute    = "RETROCHIP8_MUTE"
)

const (
	defaultDisplay = "auto"
	defaultScale   = 10
	defaultWebAddr = "127.0.0.1:8064"
	maxScale       = 64
)

// LookupFunc returns the value of an environment variable, os.LookupEnv matches it.
type LookupFunc func(key string) (string, bool)

// DefaultEnvironment returns the settings used when no environment variable is set.
func DefaultEnvironment() options.Environment {
	return options.Environment{
		Display: defaultDisplay,
		Scale:   defaultScale,
		WebAddr: defaultWebAddr,
	}
}

// FromEnvironment reads the environment settings into the program options.
func FromEnvironment(opts *options.Program, lookup LookupFunc) error {
	env := DefaultEnvironment()

	if value, ok := lookup(EnvDisplay); ok && value != "" {
		env.Display = strings.ToLower(strings.TrimSpace(value))
	}

	if value, ok := lookup(EnvScale); ok && value != "" {
		scale, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || scale < 1 || scale > maxScale {
			return fmt.Errorf("invalid %s value '%s': expected number between 1 and %d", EnvScale, value, maxScale)
		}
		env.Scale = scale
	}

	if value, ok := lookup(EnvWebAddr); ok && value != "" {
		env.WebAddr = strings.TrimSpace(value)
	}

	if value, ok := lookup(EnvLog); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "debug":
			env.Debug = true
		case "info":
		case "quiet", "error":
			env.Quiet = true
		default:
			return fmt.Errorf("invalid %s value '%s': expected debug, info or quiet", EnvLog, value)
		}
	}

	var err error
	if env.Trace, err = parseBool(EnvTrace, lookup); err != nil {
		return err
	}
	if env.Trace {
		env.Debug = true
		env.Quiet = false
	}
	if env.Mute, err = parseBool(EnvMute, lookup); err != nil {
		return err
	}

	opts.Environment = env
	return nil
}

func parseBool(key string, lookup LookupFunc) (bool, error) {
	value, ok := lookup(key)
	if !ok || value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("invalid %s value '%s': %w", key, value, err)
	}
	return b, nil
}

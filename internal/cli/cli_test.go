package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrogolib/assert"
)

func emptyEnv(string) (string, bool) {
	return "", false
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		input     string
		frequency int
	}{
		{"default frequency", []string{"prog", "pong.ch8"}, "pong.ch8", 500},
		{"short flag", []string{"prog", "-f", "700", "pong.ch8"}, "pong.ch8", 700},
		{"long flag", []string{"prog", "-freq=1000", "pong.ch8"}, "pong.ch8", 1000},
		{"double dash long flag", []string{"prog", "--freq", "60", "pong.ch8"}, "pong.ch8", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			opts, err := parseArgs(tt.args, emptyEnv, &out)
			assert.NoError(t, err)
			assert.Equal(t, tt.input, opts.Input)
			assert.Equal(t, tt.frequency, opts.Frequency)
			assert.Equal(t, "auto", opts.Display)
		})
	}
}

func TestParseArgs_UsageErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"missing file", []string{"prog"}, "missing program file"},
		{"unknown flag", []string{"prog", "-x", "pong.ch8"}, "flag provided but not defined"},
		{"flag after file", []string{"prog", "pong.ch8", "-f", "100"}, "Potential argument -f"},
		{"two files", []string{"prog", "a.ch8", "b.ch8"}, "unexpected argument b.ch8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := parseArgs(tt.args, emptyEnv, &out)
			assert.ErrorContains(t, err, tt.errMsg)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))

			out.Reset()
			usageErr.ShowUsage()
			assert.Contains(t, out.String(), "usage: retrochip8 [options] <program file>")
			assert.Contains(t, out.String(), "-freq")
			assert.Contains(t, out.String(), config.EnvDisplay)
		})
	}
}

func TestParseArgs_InvalidOptions(t *testing.T) {
	var out bytes.Buffer
	_, err := parseArgs([]string{"prog", "-f", "0", "pong.ch8"}, emptyEnv, &out)
	assert.ErrorContains(t, err, "invalid frequency 0")

	var usageErr *UsageError
	assert.False(t, errors.As(err, &usageErr))

	env := func(key string) (string, bool) {
		if key == config.EnvScale {
			return "-1", true
		}
		return "", false
	}
	_, err = parseArgs([]string{"prog", "pong.ch8"}, env, &out)
	assert.ErrorContains(t, err, "invalid RETROCHIP8_SCALE")
}

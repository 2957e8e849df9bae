package config

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func lookupMap(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestFromEnvironment(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   options.Environment
	}{
		{
			name:   "defaults",
			values: map[string]string{},
			want:   DefaultEnvironment(),
		},
		{
			name: "all settings",
			values: map[string]string{
				EnvDisplay: " Terminal ",
				EnvScale:   "4",
				EnvWebAddr: ":9000",
				EnvLog:     "quiet",
				EnvMute:    "true",
			},
			want: options.Environment{Display: "terminal", Scale: 4, WebAddr: ":9000", Quiet: true, Mute: true},
		},
		{
			name:   "trace implies debug",
			values: map[string]string{EnvLog: "quiet", EnvTrace: "1"},
			want:   options.Environment{Display: "auto", Scale: 10, WebAddr: "127.0.0.1:8064", Debug: true, Trace: true},
		},
		{
			name:   "empty values use defaults",
			values: map[string]string{EnvDisplay: "", EnvScale: ""},
			want:   DefaultEnvironment(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts options.Program
			assert.NoError(t, FromEnvironment(&opts, lookupMap(tt.values)))
			assert.Equal(t, tt.want, opts.Environment)
		})
	}
}

func TestFromEnvironment_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		errMsg string
	}{
		{"scale not a number", map[string]string{EnvScale: "big"}, "invalid RETROCHIP8_SCALE value 'big'"},
		{"scale too large", map[string]string{EnvScale: "65"}, "invalid RETROCHIP8_SCALE"},
		{"scale zero", map[string]string{EnvScale: "0"}, "invalid RETROCHIP8_SCALE"},
		{"log level", map[string]string{EnvLog: "verbose"}, "invalid RETROCHIP8_LOG value 'verbose'"},
		{"trace", map[string]string{EnvTrace: "maybe"}, "invalid RETROCHIP8_TRACE"},
		{"mute", map[string]string{EnvMute: "loud"}, "invalid RETROCHIP8_MUTE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts options.Program
			err := FromEnvironment(&opts, lookupMap(tt.values))
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(options.Environment{}))
	assert.NotNil(t, CreateLogger(options.Environment{Debug: true}))
	assert.NotNil(t, CreateLogger(options.Environment{Quiet: true}))
}

func TestLoggerVerbosity(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   verbosity
	}{
		{"default", map[string]string{}, verbosityInfo},
		{"info", map[string]string{EnvLog: "info"}, verbosityInfo},
		{"debug", map[string]string{EnvLog: "debug"}, verbosityDebug},
		{"quiet", map[string]string{EnvLog: "quiet"}, verbosityQuiet},
		{"trace overrides quiet", map[string]string{EnvLog: "quiet", EnvTrace: "true"}, verbosityDebug},
		{"trace without level", map[string]string{EnvTrace: "1"}, verbosityDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts options.Program
			assert.NoError(t, FromEnvironment(&opts, lookupMap(tt.values)))
			assert.Equal(t, tt.want, loggerVerbosity(opts.Environment))
		})
	}

	// trace set without the environment overlay still selects debug output
	assert.Equal(t, verbosityDebug, loggerVerbosity(options.Environment{Trace: true, Quiet: true}))
}

package app

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestVersionString(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		expected string
	}{
		{"no commit", "dev", "", "dev"},
		{"short commit", "v1.0.0", "abc", "v1.0.0 (abc)"},
		{"long commit", "v1.0.0", "0123456789abcdef", "v1.0.0 (0123456)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VersionString(tt.version, tt.commit))
		})
	}
}

func TestPrint(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.Program{
		Parameters: options.Parameters{Input: "pong.zip"},
		Flags:      options.Flags{Frequency: 500},
	}

	PrintBanner(logger, opts, "dev", "0123456789", "2026-01-01")
	PrintInfo(logger, opts, loader.Program{
		Name:      "pong.ch8",
		Data:      []byte{0x12, 0x00},
		Hash:      1,
		Container: detector.Zip,
	}, "headless")
}

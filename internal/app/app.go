// Package app provides the banner and information output of the emulator.
package app

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Name of the application.
const Name = "retrochip8"

// VersionString returns the version with an appended short commit hash if known.
func VersionString(version, commit string) string {
	if commit == "" {
		return version
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", version, commit)
}

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info(Name, log.String("version", VersionString(version, commit)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo prints the information about the loaded program and the selected output.
func PrintInfo(logger *log.Logger, opts options.Program, program loader.Program, backend string) {
	logger.Info("Program loaded",
		log.String("file", opts.Input),
		log.String("name", program.Name),
		log.Stringer("container", program.Container),
		log.Int("size", len(program.Data)),
		log.String("xxhash", fmt.Sprintf("%016x", program.Hash)),
	)
	logger.Info("Starting emulation",
		log.String("display", backend),
		log.Int("frequency", opts.Frequency),
	)
	if opts.Trace {
		logger.Warn("Instruction tracing enabled, emulation speed may be reduced")
	}
}

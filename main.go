// Package main implements the entry point of the retrochip8 virtual machine.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	appinfo "github.com/retroenv/retrochip8/internal/app"

	// display backends register themselves
	_ "github.com/retroenv/retrochip8/internal/display/ebiten"
	_ "github.com/retroenv/retrochip8/internal/display/headless"
	_ "github.com/retroenv/retrochip8/internal/display/terminal"
	_ "github.com/retroenv/retrochip8/internal/display/web"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Environment)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			appinfo.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid configuration", log.Err(err))
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Environment)
	appinfo.PrintBanner(logger, opts, version, commit, date)

	if err := pipeline.New(logger).Execute(ctx, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation stopped")
			return
		}
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

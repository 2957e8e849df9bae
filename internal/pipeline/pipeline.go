// Package pipeline orchestrates loading a program and running the emulation.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/audio/tone"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	det := detector.New(logger)
	return &Pipeline{
		logger:   logger,
		detector: det,
		loader:   loader.New(det),
	}
}

// Execute loads the program and runs it until the context is cancelled, the
// display is closed or the program faults. A closed display returns nil, a
// cancelled context returns the context error.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	mem := memory.New()
	if err := mem.LoadProgram(program.Data); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	backend, backendName, err := display.New(opts.Display, display.Settings{
		Title:   fmt.Sprintf("%s - %s", app.Name, program.Name),
		Scale:   opts.Scale,
		WebAddr: opts.WebAddr,
		Logger:  p.logger,
	})
	if err != nil {
		return fmt.Errorf("creating display: %w", err)
	}

	aud, closeAudio := p.createAudio(opts.Mute)
	defer closeAudio()

	screen := display.NewScreen(backend)
	processor := cpu.New(mem, screen, backend,
		cpu.WithLogger(p.logger),
		cpu.WithTrace(opts.Trace),
	)
	m, err := machine.New(processor, screen, aud,
		machine.WithFrequency(opts.Frequency),
		machine.WithLogger(p.logger),
	)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}

	app.PrintInfo(p.logger, opts, program, backendName)
	return p.run(ctx, m, backend)
}

// run executes the machine in a separate goroutine while the backend runs
// on the calling goroutine, window systems require the main thread.
func (p *Pipeline) run(ctx context.Context, m *machine.Machine, backend display.Backend) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	machineErr := make(chan error, 1)
	go func() {
		err := m.Run(runCtx)
		cancel()
		machineErr <- err
	}()

	backendErr := backend.Run(runCtx)
	cancel()
	err := <-machineErr

	p.logger.Debug("Emulation finished",
		log.Int("ticks", int(m.Ticks())),
		log.Int("instructions", int(m.Instructions())))

	switch {
	case err != nil && !errors.Is(err, context.Canceled):
		var fault *cpu.FaultError
		if errors.As(err, &fault) {
			p.logger.Error("Program fault",
				log.Hex("pc", fault.PC),
				log.Hex("opcode", fault.Opcode),
				log.String("instruction", chip8.Disassemble(fault.Opcode)))
		}
		return err

	case backendErr != nil:
		return fmt.Errorf("running display: %w", backendErr)

	case ctx.Err() != nil:
		return ctx.Err()

	default:
		p.logger.Info("Display closed")
		return nil
	}
}

func (p *Pipeline) createAudio(mute bool) (audio.Audio, func()) {
	if mute {
		return &audio.Silent{}, func() {}
	}

	t, err := tone.NewTone()
	if err != nil {
		p.logger.Warn("Audio output not available", log.Err(err))
		return &audio.Silent{}, func() {}
	}
	return t, func() {
		if err := t.Close(); err != nil {
			p.logger.Warn("Closing audio output failed", log.Err(err))
		}
	}
}

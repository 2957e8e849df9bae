// Package machine drives the CPU with an instruction clock of configurable
// frequency and a fixed 60 Hz clock for timers, sound and rendering.
package machine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultFrequency is the default instruction clock in Hz.
	DefaultFrequency = 500
	// TickRate is the frequency of the timer and render clock in Hz.
	TickRate = 60
)

var errInvalidFrequency = errors.New("frequency must be positive")

// Processor executes instructions and counts down its timers.
type Processor interface {
	// Step executes one instruction.
	Step() error
	// Tick decrements the timers and returns whether the sound timer is active.
	Tick() bool
}

// Machine interleaves instruction cycles with 60 Hz ticks. Each wakeup of
// the instruction clock first runs a 60 Hz tick if one is due and then
// executes exactly one instruction.
type Machine struct {
	cpu     Processor
	display display.Display
	audio   audio.Audio
	logger  *log.Logger

	frequency int
	interval  time.Duration

	epoch        time.Time
	ticks        int64
	instructions uint64
}

// Option configures a Machine.
type Option func(*Machine)

// WithFrequency sets the instruction clock in Hz.
func WithFrequency(frequency int) Option {
	return func(m *Machine) {
		m.frequency = frequency
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// New returns a machine driving the processor.
func New(cpu Processor, disp display.Display, aud audio.Audio, opts ...Option) (*Machine, error) {
	m := &Machine{
		cpu:       cpu,
		display:   disp,
		audio:     aud,
		frequency: DefaultFrequency,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.frequency <= 0 {
		return nil, fmt.Errorf("%w: %d", errInvalidFrequency, m.frequency)
	}
	m.interval = time.Second / time.Duration(m.frequency)
	return m, nil
}

// Reset sets the start of the 60 Hz clock.
func (m *Machine) Reset(now time.Time) {
	m.epoch = now
	m.ticks = 0
}

// Step processes one wakeup of the instruction clock at the given time.
func (m *Machine) Step(now time.Time) error {
	if m.epoch.IsZero() {
		m.Reset(now)
	}

	if !now.Before(m.tickAt(m.ticks + 1)) {
		m.tick()
	}

	m.instructions++
	if err := m.cpu.Step(); err != nil {
		return fmt.Errorf("executing instruction: %w", err)
	}
	return nil
}

// Run executes instructions until the context is cancelled or an
// instruction fails. The tone is paused when Run returns.
func (m *Machine) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	defer m.audio.Pause()

	m.Reset(time.Now())
	if m.logger != nil {
		m.logger.Debug("Starting machine",
			log.Int("frequency", m.frequency),
			log.Stringer("interval", m.interval))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case now := <-ticker.C:
			if err := m.Step(now); err != nil {
				return err
			}
		}
	}
}

// Frequency returns the instruction clock in Hz.
func (m *Machine) Frequency() int {
	return m.frequency
}

// Ticks returns the number of executed 60 Hz ticks.
func (m *Machine) Ticks() int64 {
	return m.ticks
}

// Instructions returns the number of instruction cycles.
func (m *Machine) Instructions() uint64 {
	return m.instructions
}

// tick advances the 60 Hz clock marker by exactly one period, not to the
// current time, so that late wakeups do not accumulate drift.
func (m *Machine) tick() {
	m.ticks++

	if m.cpu.Tick() {
		m.audio.Play()
	} else {
		m.audio.Pause()
	}
	m.display.Render()
}

// tickAt returns the time of the n-th tick since the epoch.
func (m *Machine) tickAt(n int64) time.Time {
	return m.epoch.Add(time.Duration(n) * time.Second / TickRate)
}

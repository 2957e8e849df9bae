// Package cpu implements the fetch, decode and execute engine of the virtual
// machine: the register file, index register, program counter, call stack
// and the delay and sound timers.
package cpu

import (
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

const (
	// NumRegisters is the number of general purpose registers.
	NumRegisters = 16
	// FlagRegister is the register that receives carry, borrow and collision flags.
	FlagRegister = 0xF
	// StackSize is the maximum call depth.
	StackSize = 16

	opcodeSize  = 2
	addressMask = 0x0FFF
)

// CPU executes instructions from memory. It is not safe for concurrent use.
type CPU struct {
	memory  *memory.Memory
	display display.Display
	input   input.Input
	logger  *log.Logger
	random  func() byte
	trace   bool

	v     [NumRegisters]byte
	i     uint16
	pc    uint16
	delay byte
	sound byte

	stack [StackSize]uint16
	sp    int

	keyLatched bool
	latchedKey uint8
}

// Option configures a CPU.
type Option func(*CPU)

// WithLogger sets the logger used for instruction tracing.
func WithLogger(logger *log.Logger) Option {
	return func(c *CPU) {
		c.logger = logger
	}
}

// WithTrace enables debug logging of every executed instruction.
func WithTrace(trace bool) Option {
	return func(c *CPU) {
		c.trace = trace
	}
}

// WithRandom sets the source of random bytes.
func WithRandom(random func() byte) Option {
	return func(c *CPU) {
		c.random = random
	}
}

// New returns a CPU that starts execution at the program start address.
func New(mem *memory.Memory, disp display.Display, in input.Input, opts ...Option) *CPU {
	c := &CPU{
		memory:  mem,
		display: disp,
		input:   in,
		random:  randomByte,
		pc:      memory.ProgramStart,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step executes one instruction. Errors are of type *FaultError and are fatal,
// the CPU state is left as it was before the faulting instruction.
func (c *CPU) Step() error {
	pc := c.pc
	opcode := c.memory.ReadU16(pc)

	if c.trace && c.logger != nil {
		ins, _ := chip8.Decode(opcode)
		access := "none"
		switch {
		case ins.ReadsMemory():
			access = "read"
		case ins.WritesMemory():
			access = "write"
		}
		c.logger.Debug("Executing",
			log.Hex("pc", pc),
			log.Hex("opcode", opcode),
			log.String("instruction", ins.String()),
			log.String("flow", ins.Flow()),
			log.String("memory", access),
			log.Hex("i", c.i))
	}

	next, jump, err := families[opcode>>12](c, pc, opcode)
	if err != nil {
		return &FaultError{PC: pc, Opcode: opcode, Err: err}
	}
	if !jump {
		next = pc + opcodeSize
	}
	c.pc = next & addressMask
	return nil
}

// Tick decrements the delay and sound timers without wrapping below zero.
// It returns whether the sound timer is still active.
func (c *CPU) Tick() bool {
	if c.delay > 0 {
		c.delay--
	}
	if c.sound > 0 {
		c.sound--
	}
	return c.sound > 0
}

// PC returns the address of the next instruction.
func (c *CPU) PC() uint16 {
	return c.pc
}

// Register returns the value of register 0-15.
func (c *CPU) Register(index int) byte {
	return c.v[index&0x0F]
}

// Index returns the index register.
func (c *CPU) Index() uint16 {
	return c.i
}

// DelayTimer returns the delay timer.
func (c *CPU) DelayTimer() byte {
	return c.delay
}

// SoundTimer returns the sound timer.
func (c *CPU) SoundTimer() byte {
	return c.sound
}

// StackDepth returns the number of active call frames.
func (c *CPU) StackDepth() int {
	return c.sp
}

// WaitingForKey returns whether a key wait instruction has latched a key and
// waits for its release.
func (c *CPU) WaitingForKey() bool {
	return c.keyLatched
}

func (c *CPU) push(address uint16) error {
	if c.sp == StackSize {
		return ErrStackOverflow
	}
	c.stack[c.sp] = address
	c.sp++
	return nil
}

func (c *CPU) pop() (uint16, error) {
	if c.sp == 0 {
		return 0, ErrStackUnderflow
	}
	c.sp--
	return c.stack[c.sp], nil
}

func randomByte() byte {
	return byte(rand.UintN(256))
}

package cpu

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var (
	// ErrUndefinedInstruction is returned for instruction words without defined semantics.
	ErrUndefinedInstruction = errors.New("undefined instruction")
	// ErrStackUnderflow is returned for a return without an active call frame.
	ErrStackUnderflow = chip8.ErrStackUnderflow
	// ErrStackOverflow is returned for a call that exceeds the stack depth.
	ErrStackOverflow = chip8.ErrStackOverflow
)

// FaultError is a fatal execution error of an instruction.
type FaultError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s: opcode 0x%04X at 0x%03X", e.Err, e.Opcode, e.PC)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction is a decoded CHIP-8 instruction word.
type Instruction struct {
	ins    *chip8.Instruction
	opcode uint16
}

// Opcode returns the instruction word.
func (i Instruction) Opcode() uint16 {
	return i.opcode
}

// IsNil returns true if the instruction word did not decode to a known instruction.
func (i Instruction) IsNil() bool {
	return i.ins == nil
}

// Name returns the instruction name.
func (i Instruction) Name() string {
	if i.ins == nil {
		return ""
	}
	return i.ins.Name
}

// IsCall returns true if the instruction is a call instruction.
func (i Instruction) IsCall() bool {
	return i.ins == chip8.CallInst
}

// IsJump returns true if the instruction is a jump instruction.
func (i Instruction) IsJump() bool {
	return i.ins == chip8.JpInst
}

// IsReturn returns true if the instruction is a return instruction.
func (i Instruction) IsReturn() bool {
	return i.ins == chip8.RetInst
}

// IsSkip returns true if the instruction is a conditional skip instruction.
func (i Instruction) IsSkip() bool {
	if i.ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(i.ins.Name)
}

// ReadsMemory returns true if the instruction reads from main memory.
func (i Instruction) ReadsMemory() bool {
	if i.ins == nil {
		return false
	}
	return chip8.MemoryReadInstructions.Contains(i.ins.Name)
}

// WritesMemory returns true if the instruction writes to main memory.
func (i Instruction) WritesMemory() bool {
	if i.ins == nil {
		return false
	}
	return chip8.MemoryWriteInstructions.Contains(i.ins.Name)
}

// Flow classifies the control flow effect of the instruction.
func (i Instruction) Flow() string {
	switch {
	case i.IsCall():
		return "call"
	case i.IsJump():
		return "jump"
	case i.IsReturn():
		return "return"
	case i.IsSkip():
		return "skip"
	default:
		return "next"
	}
}

// String returns the assembly representation of the instruction.
func (i Instruction) String() string {
	if i.ins == nil {
		return formatDataWord(i.opcode)
	}
	if params := formatParams(i.opcode); params != "" {
		return fmt.Sprintf("%s %s", i.ins.Name, params)
	}
	return i.ins.Name
}

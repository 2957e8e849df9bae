package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Decode matches an instruction word against the opcode table of its family.
// It returns false if the word does not encode a known instruction.
func Decode(opcode uint16) (Instruction, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	opcodes := chip8.Opcodes[int(firstNibble)]
	for _, op := range opcodes {
		if op.Info.Mask&opcode == op.Info.Value {
			return Instruction{ins: op.Instruction, opcode: opcode}, op.Instruction != nil
		}
	}
	return Instruction{opcode: opcode}, false
}

// Disassemble returns the assembly representation of an instruction word.
func Disassemble(opcode uint16) string {
	ins, ok := Decode(opcode)
	if !ok {
		return formatDataWord(opcode)
	}
	return ins.String()
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}

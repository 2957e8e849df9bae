// Package chip8 decodes CHIP-8 instruction words into instructions and their
// assembly representation.
//
// # Instruction Set
//
// All instructions are 2 bytes wide and stored big endian. The top nibble
// selects the instruction family, the remaining nibbles encode operands:
//
//	NNN: 12-bit address
//	NN:  8-bit immediate
//	N:   4-bit immediate
//	X,Y: register indexes
//
// Instruction metadata (names, masks, memory access classification) is
// provided by the retrogolib CHIP-8 opcode table. This package matches an
// instruction word against that table and formats its operands, for example:
//
//	Disassemble(0x6A05) // "ld VA, $05"
//	Disassemble(0xD125) // "drw V1, V2, $5"
//	Disassemble(0xF233) // "ld B, V2"
//
// Words that do not match any table entry are formatted as data words
// ("dw $0123").
//
// # Usage
//
// The decoder is used for trace logging of executed instructions and for
// reporting the instruction that caused a fatal execution error:
//
//	ins, ok := chip8.Decode(opcode)
//	if ok && ins.IsSkip() {
//		...
//	}
package chip8

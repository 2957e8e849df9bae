package chip8

import (
	"fmt"
)

// formatParams formats the operands of an instruction word. The operand
// layout only depends on the instruction word, not on the instruction name.
func formatParams(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x0000:
		return "" // cls, ret
	case 0x1000, 0x2000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	case 0x3000, 0x4000, 0x6000, 0x7000, 0xC000:
		return formatRegisterImmediate(opcode)
	case 0x5000, 0x9000:
		return formatRegisterPair(opcode)
	case 0x8000:
		return formatArithmeticInstruction(opcode)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xD000:
		return formatDrawInstruction(opcode)
	case 0xE000:
		return fmt.Sprintf("V%X", extractRegisterX(opcode))
	case 0xF000:
		return formatMiscInstruction(opcode)
	}
	return ""
}

// formatRegisterImmediate formats Vx, byte operands (SE, SNE, LD, ADD, RND).
func formatRegisterImmediate(opcode uint16) string {
	return fmt.Sprintf("V%X, $%02X", extractRegisterX(opcode), opcode&0x00FF)
}

// formatRegisterPair formats Vx, Vy operands.
func formatRegisterPair(opcode uint16) string {
	return fmt.Sprintf("V%X, V%X", extractRegisterX(opcode), extractRegisterY(opcode))
}

// formatArithmeticInstruction formats the 8XYN family, shifts only name Vx.
func formatArithmeticInstruction(opcode uint16) string {
	switch opcode & 0x000F {
	case 0x6, 0xE:
		return fmt.Sprintf("V%X", extractRegisterX(opcode))
	default:
		return formatRegisterPair(opcode)
	}
}

// formatDrawInstruction formats draw instructions (DRW).
func formatDrawInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	y := extractRegisterY(opcode)
	n := opcode & 0x000F
	return fmt.Sprintf("V%X, V%X, $%X", x, y, n)
}

// formatMiscInstruction formats the FXNN family of timer, key, index and memory transfers.
func formatMiscInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("I, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

func formatDataWord(opcode uint16) string {
	return fmt.Sprintf("dw $%04X", opcode)
}

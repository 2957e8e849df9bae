package cpu

import (
	"github.com/retroenv/retrochip8/internal/memory"
)

// handler executes an instruction of one family. It returns the address of
// the next instruction and true if it redirects control flow, otherwise
// execution continues with the following instruction.
type handler func(c *CPU, pc, opcode uint16) (uint16, bool, error)

// families is indexed by the top nibble of the instruction word.
var families = [16]handler{
	0x0: (*CPU).system,
	0x1: (*CPU).jump,
	0x2: (*CPU).call,
	0x3: (*CPU).skipEqualImmediate,
	0x4: (*CPU).skipNotEqualImmediate,
	0x5: (*CPU).skipEqualRegisters,
	0x6: (*CPU).loadImmediate,
	0x7: (*CPU).addImmediate,
	0x8: (*CPU).arithmetic,
	0x9: (*CPU).skipNotEqualRegisters,
	0xA: (*CPU).setIndex,
	0xB: (*CPU).jumpOffset,
	0xC: (*CPU).randomAnd,
	0xD: (*CPU).draw,
	0xE: (*CPU).skipKey,
	0xF: (*CPU).misc,
}

func x(opcode uint16) int {
	return int(opcode>>8) & 0x0F
}

func y(opcode uint16) int {
	return int(opcode>>4) & 0x0F
}

func nn(opcode uint16) byte {
	return byte(opcode)
}

func nnn(opcode uint16) uint16 {
	return opcode & addressMask
}

func skipIf(pc uint16, condition bool) (uint16, bool, error) {
	if condition {
		return pc + 2*opcodeSize, true, nil
	}
	return 0, false, nil
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// 00E0 cls, 00EE ret
func (c *CPU) system(_, opcode uint16) (uint16, bool, error) {
	switch opcode {
	case 0x00E0:
		c.display.BlankScreen()
		return 0, false, nil

	case 0x00EE:
		address, err := c.pop()
		if err != nil {
			return 0, false, err
		}
		return address, true, nil

	default:
		return 0, false, ErrUndefinedInstruction
	}
}

// 1NNN jp addr
func (c *CPU) jump(_, opcode uint16) (uint16, bool, error) {
	return nnn(opcode), true, nil
}

// 2NNN call addr
func (c *CPU) call(pc, opcode uint16) (uint16, bool, error) {
	if err := c.push((pc + opcodeSize) & addressMask); err != nil {
		return 0, false, err
	}
	return nnn(opcode), true, nil
}

// 3XNN se Vx, byte
func (c *CPU) skipEqualImmediate(pc, opcode uint16) (uint16, bool, error) {
	return skipIf(pc, c.v[x(opcode)] == nn(opcode))
}

// 4XNN sne Vx, byte
func (c *CPU) skipNotEqualImmediate(pc, opcode uint16) (uint16, bool, error) {
	return skipIf(pc, c.v[x(opcode)] != nn(opcode))
}

// 5XY0 se Vx, Vy
func (c *CPU) skipEqualRegisters(pc, opcode uint16) (uint16, bool, error) {
	return skipIf(pc, c.v[x(opcode)] == c.v[y(opcode)])
}

// 9XY0 sne Vx, Vy
func (c *CPU) skipNotEqualRegisters(pc, opcode uint16) (uint16, bool, error) {
	return skipIf(pc, c.v[x(opcode)] != c.v[y(opcode)])
}

// 6XNN ld Vx, byte
func (c *CPU) loadImmediate(_, opcode uint16) (uint16, bool, error) {
	c.v[x(opcode)] = nn(opcode)
	return 0, false, nil
}

// 7XNN add Vx, byte, the flag register is not affected.
func (c *CPU) addImmediate(_, opcode uint16) (uint16, bool, error) {
	c.v[x(opcode)] += nn(opcode)
	return 0, false, nil
}

// 8XYN register arithmetic. The flag is written after the result so that it
// takes precedence when VF is the destination.
//
//	8XY0 ld   Vx = Vy
//	8XY1 or   Vx |= Vy, VF = 0
//	8XY2 and  Vx &= Vy, VF = 0
//	8XY3 xor  Vx ^= Vy, VF = 0
//	8XY4 add  Vx += Vy, VF = carry
//	8XY5 sub  Vx -= Vy, VF = not borrow
//	8XY6 shr  Vx >>= 1, VF = bit 0 of Vx before the shift
//	8XY7 subn Vx = Vy - Vx, VF = not borrow
//	8XYE shl  Vx <<= 1, VF = bit 7 of Vx before the shift
func (c *CPU) arithmetic(_, opcode uint16) (uint16, bool, error) {
	vx := c.v[x(opcode)]
	vy := c.v[y(opcode)]

	var result, carry byte
	switch opcode & 0x000F {
	case 0x0:
		c.v[x(opcode)] = vy
		return 0, false, nil
	case 0x1:
		result = vx | vy
	case 0x2:
		result = vx & vy
	case 0x3:
		result = vx ^ vy
	case 0x4:
		sum := uint16(vx) + uint16(vy)
		result, carry = byte(sum), flag(sum > 0xFF)
	case 0x5:
		result, carry = vx-vy, flag(vx >= vy)
	case 0x6:
		result, carry = vx>>1, vx&0x01
	case 0x7:
		result, carry = vy-vx, flag(vy >= vx)
	case 0xE:
		result, carry = vx<<1, vx>>7
	default:
		return 0, false, ErrUndefinedInstruction
	}

	c.v[x(opcode)] = result
	c.v[FlagRegister] = carry
	return 0, false, nil
}

// ANNN ld I, addr
func (c *CPU) setIndex(_, opcode uint16) (uint16, bool, error) {
	c.i = nnn(opcode)
	return 0, false, nil
}

// BNNN jp V0, addr
func (c *CPU) jumpOffset(_, opcode uint16) (uint16, bool, error) {
	return (nnn(opcode) + uint16(c.v[0])) & addressMask, true, nil
}

// CXNN rnd Vx, byte
func (c *CPU) randomAnd(_, opcode uint16) (uint16, bool, error) {
	c.v[x(opcode)] = c.random() & nn(opcode)
	return 0, false, nil
}

// DXYN drw Vx, Vy, nibble
func (c *CPU) draw(_, opcode uint16) (uint16, bool, error) {
	height := int(opcode & 0x000F)
	rows := make([]byte, height)
	for row := range rows {
		rows[row] = c.memory.ReadU8(c.i + uint16(row))
	}

	collision := c.display.Draw(c.v[x(opcode)], c.v[y(opcode)], rows)
	c.v[FlagRegister] = flag(collision)
	return 0, false, nil
}

// EX9E skp Vx, EXA1 sknp Vx
func (c *CPU) skipKey(pc, opcode uint16) (uint16, bool, error) {
	key := c.v[x(opcode)]
	switch nn(opcode) {
	case 0x9E:
		return skipIf(pc, c.input.IsKeyPressed(key))
	case 0xA1:
		return skipIf(pc, !c.input.IsKeyPressed(key))
	default:
		return 0, false, ErrUndefinedInstruction
	}
}

// FXNN timer, key, index and memory transfer instructions.
func (c *CPU) misc(pc, opcode uint16) (uint16, bool, error) {
	vx := x(opcode)

	switch nn(opcode) {
	case 0x07:
		c.v[vx] = c.delay
	case 0x0A:
		return c.waitKey(pc, vx)
	case 0x15:
		c.delay = c.v[vx]
	case 0x18:
		c.sound = c.v[vx]
	case 0x1E:
		c.i = (c.i + uint16(c.v[vx])) & addressMask
	case 0x29:
		c.i = memory.GlyphAddress(c.v[vx])
	case 0x33:
		value := c.v[vx]
		c.memory.WriteU8(c.i, value/100)
		c.memory.WriteU8(c.i+1, value/10%10)
		c.memory.WriteU8(c.i+2, value%10)
	case 0x55:
		for r := 0; r <= vx; r++ {
			c.memory.WriteU8(c.i+uint16(r), c.v[r])
		}
	case 0x65:
		for r := 0; r <= vx; r++ {
			c.v[r] = c.memory.ReadU8(c.i + uint16(r))
		}
	default:
		return 0, false, ErrUndefinedInstruction
	}
	return 0, false, nil
}

// waitKey implements FX0A as press then release: the instruction repeats
// until a key was pressed and all keys are released again, then the latched
// key is stored in Vx.
func (c *CPU) waitKey(pc uint16, vx int) (uint16, bool, error) {
	key, pressed := c.input.PressedKey()

	if !c.keyLatched {
		if pressed {
			c.latchedKey = key
			c.keyLatched = true
		}
		return pc, true, nil
	}

	if pressed {
		return pc, true, nil
	}

	c.v[vx] = c.latchedKey
	c.keyLatched = false
	c.latchedKey = 0
	return 0, false, nil
}

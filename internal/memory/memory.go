// Package memory implements the 4 KiB address space of the virtual machine.
//
// The address space layout is:
//
//	0x000-0x04F: built-in font glyphs (16 glyphs of 5 bytes)
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: program image
//
// All addresses are reduced modulo Size before access, so no access can be
// out of range.
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the number of addressable bytes.
	Size = 4096

	// ProgramStart is the address where program images are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits behind ProgramStart.
	MaxProgramSize = Size - ProgramStart

	addressMask = Size - 1
)

// ErrProgramTooLarge is returned when a program image exceeds MaxProgramSize.
var ErrProgramTooLarge = errors.New("program too large")

// Memory is a flat byte addressable store with a 12-bit address space.
type Memory struct {
	data [Size]byte
}

// New returns a memory instance with the font table preloaded.
func New() *Memory {
	m := &Memory{}
	copy(m.data[FontAddress:], font[:])
	return m
}

// ReadU8 reads a single byte.
func (m *Memory) ReadU8(address uint16) byte {
	return m.data[address&addressMask]
}

// WriteU8 writes a single byte.
func (m *Memory) WriteU8(address uint16, value byte) {
	m.data[address&addressMask] = value
}

// ReadU16 reads a big endian word, the second byte is read from address+1
// and wraps around at the end of the address space.
func (m *Memory) ReadU16(address uint16) uint16 {
	high := m.ReadU8(address)
	low := m.ReadU8(address + 1)
	return uint16(high)<<8 | uint16(low)
}

// WriteU16 writes a big endian word.
func (m *Memory) WriteU16(address uint16, value uint16) {
	m.WriteU8(address, byte(value>>8))
	m.WriteU8(address+1, byte(value))
}

// LoadProgram copies the program image to ProgramStart.
// The size is checked before any byte is written, an oversized image leaves
// the memory unmodified.
func (m *Memory) LoadProgram(data []byte) error {
	if len(data) > MaxProgramSize {
		return fmt.Errorf("%w: %d > %d", ErrProgramTooLarge, len(data), MaxProgramSize)
	}
	copy(m.data[ProgramStart:], data)
	return nil
}

// Package memory provides the 4KB address space of the CHIP-8 virtual machine.
package memory

import (
	"errors"
	"fmt"
)

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: small font, 16 glyphs of 5 bytes
//	0x050-0x0EF: SUPER-CHIP big font, 16 glyphs of 10 bytes
//	0x0F0-0x1FF: unused interpreter area
//	0x200-0xFFF: program space
const (
	// Size is the total amount of addressable memory.
	Size = 0x1000

	// ProgramStart is the address where programs are loaded and execution starts.
	ProgramStart = 0x200

	// ProgramCapacity is the maximum size of a program in bytes.
	ProgramCapacity = Size - ProgramStart

	// FontAddress is the address of the first small font glyph.
	FontAddress = 0x000
	// FontGlyphSize is the size in bytes of a small font glyph.
	FontGlyphSize = 5

	// BigFontAddress is the address of the first big font glyph.
	BigFontAddress = FontAddress + 16*FontGlyphSize
	// BigFontGlyphSize is the size in bytes of a big font glyph.
	BigFontGlyphSize = 10
)

// ErrProgramTooLarge is returned when a program does not fit into the program space.
var ErrProgramTooLarge = errors.New("program too large")

// font contains the 4x5 pixel hex digit glyphs.
var font = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// bigFont contains the 8x10 pixel hex digit glyphs of the SUPER-CHIP.
var bigFont = [16 * BigFontGlyphSize]byte{
	0x3C, 0x7E, 0xE7, 0xC3, 0xC3, 0xC3, 0xC3, 0xE7, 0x7E, 0x3C, // 0
	0x18, 0x38, 0x58, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x3C, // 1
	0x3E, 0x7F, 0xC3, 0x06, 0x0C, 0x18, 0x30, 0x60, 0xFF, 0xFF, // 2
	0x3C, 0x7E, 0xC3, 0x03, 0x0E, 0x0E, 0x03, 0xC3, 0x7E, 0x3C, // 3
	0x06, 0x0E, 0x1E, 0x36, 0x66, 0xC6, 0xFF, 0xFF, 0x06, 0x06, // 4
	0xFF, 0xFF, 0xC0, 0xC0, 0xFC, 0xFE, 0x03, 0xC3, 0x7E, 0x3C, // 5
	0x3E, 0x7C, 0xC0, 0xC0, 0xFC, 0xFE, 0xC3, 0xC3, 0x7E, 0x3C, // 6
	0xFF, 0xFF, 0x03, 0x06, 0x0C, 0x18, 0x30, 0x60, 0x60, 0x60, // 7
	0x3C, 0x7E, 0xC3, 0xC3, 0x7E, 0x7E, 0xC3, 0xC3, 0x7E, 0x3C, // 8
	0x3C, 0x7E, 0xC3, 0xC3, 0x7F, 0x3F, 0x03, 0x03, 0x3E, 0x7C, // 9
	0x18, 0x3C, 0x66, 0xC3, 0xC3, 0xFF, 0xFF, 0xC3, 0xC3, 0xC3, // A
	0xFC, 0xFE, 0xC3, 0xC3, 0xFE, 0xFE, 0xC3, 0xC3, 0xFE, 0xFC, // B
	0x3C, 0x7E, 0xC3, 0xC0, 0xC0, 0xC0, 0xC0, 0xC3, 0x7E, 0x3C, // C
	0xFC, 0xFE, 0xC3, 0xC3, 0xC3, 0xC3, 0xC3, 0xC3, 0xFE, 0xFC, // D
	0xFF, 0xFF, 0xC0, 0xC0, 0xFC, 0xFC, 0xC0, 0xC0, 0xFF, 0xFF, // E
	0xFF, 0xFF, 0xC0, 0xC0, 0xFC, 0xFC, 0xC0, 0xC0, 0xC0, 0xC0, // F
}

// Memory is the RAM of the virtual machine. The font area is restored
// on every reset.
type Memory struct {
	ram [Size]byte
}

// New returns a memory instance with the fonts stamped and everything else zeroed.
func New() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes all memory and restores the fonts.
func (m *Memory) Reset() {
	m.ram = [Size]byte{}
	copy(m.ram[FontAddress:], font[:])
	copy(m.ram[BigFontAddress:], bigFont[:])
}

// LoadProgram resets the memory and copies the program to ProgramStart.
// The memory stays in the reset state if the program does not fit.
func (m *Memory) LoadProgram(program []byte) error {
	m.Reset()
	if len(program) > ProgramCapacity {
		return fmt.Errorf("%w: %d bytes exceed the capacity of %d bytes",
			ErrProgramTooLarge, len(program), ProgramCapacity)
	}
	copy(m.ram[ProgramStart:], program)
	return nil
}

// ReadByte returns the byte at the given address. Callers make sure that
// the address is inside the address space.
func (m *Memory) ReadByte(address uint16) byte {
	return m.ram[address]
}

// WriteByte sets the byte at the given address. Callers make sure that
// the address is inside the address space.
func (m *Memory) WriteByte(address uint16, value byte) {
	m.ram[address] = value
}

// ReadOpcode combines the two bytes at the given address into a big-endian instruction word.
func (m *Memory) ReadOpcode(address uint16) uint16 {
	return uint16(m.ram[address])<<8 | uint16(m.ram[address+1])
}

// Len returns the size of the memory.
func (m *Memory) Len() int {
	return len(m.ram)
}

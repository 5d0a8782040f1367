package interpreter

import "fmt"

// Instruction is a decoded 16-bit opcode. All operand fields are derived by
// fixed bit masks, whether the opcode uses them or not.
type Instruction struct {
	Opcode  uint16 // full instruction word
	Class   uint8  // top nibble, the primary opcode class
	Address uint16 // 0nnn
	X       uint8  // 0x00
	Y       uint8  // 00y0
	Byte    uint8  // 00kk
	Nibble  uint8  // 000n
}

// Decode splits an opcode into its operand fields.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode:  opcode,
		Class:   uint8(opcode >> 12),
		Address: opcode & 0x0FFF,
		X:       uint8((opcode & 0x0F00) >> 8),
		Y:       uint8((opcode & 0x00F0) >> 4),
		Byte:    uint8(opcode & 0x00FF),
		Nibble:  uint8(opcode & 0x000F),
	}
}

// String returns the opcode as 4 hex digits.
func (i Instruction) String() string {
	return fmt.Sprintf("%04X", i.Opcode)
}

package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonics of the SUPER-CHIP instructions that the CHIP-8 opcode table
// does not contain.
const (
	scrollDown  = "scd"
	scrollRight = "scr"
	scrollLeft  = "scl"
	exit        = "exit"
	lowres      = "low"
	highres     = "high"
)

// Mnemonic returns the assembly form of an opcode, for example "jp $234".
// Opcodes that do not form a known instruction are returned as data word.
func Mnemonic(opcode uint16) string {
	if s, ok := mnemonic(opcode); ok {
		return s
	}
	return dataWord(opcode)
}

// mnemonic returns the assembly form of an opcode and whether the opcode
// is a known instruction.
func mnemonic(opcode uint16) (string, bool) {
	if s, ok := extendedMnemonic(opcode); ok {
		return s, true
	}

	name, ok := instructionName(opcode)
	if !ok {
		return "", false
	}

	params := formatInstruction(name, opcode)
	if params == "" {
		if opcode&0xF000 == 0xF000 {
			return "", false
		}
		return name, true
	}
	return fmt.Sprintf("%s %s", name, params), true
}

// instructionName looks up the instruction name of the opcode in the CHIP-8
// opcode table.
func instructionName(opcode uint16) (string, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name, true
		}
	}
	return "", false
}

// extendedMnemonic formats the SUPER-CHIP instructions.
func extendedMnemonic(opcode uint16) (string, bool) {
	if opcode&0xFFF0 == 0x00C0 {
		return fmt.Sprintf("%s $%X", scrollDown, opcode&0x000F), true
	}

	switch opcode {
	case 0x00FB:
		return scrollRight, true
	case 0x00FC:
		return scrollLeft, true
	case 0x00FD:
		return exit, true
	case 0x00FE:
		return lowres, true
	case 0x00FF:
		return highres, true
	}

	if opcode&0xF000 != 0xF000 {
		return "", false
	}
	x := extractRegisterX(opcode)
	switch opcode & 0x00FF {
	case 0x30:
		return fmt.Sprintf("%s HF, V%X", chip8.LdName, x), true
	case 0x75:
		return fmt.Sprintf("%s R, V%X", chip8.LdName, x), true
	case 0x85:
		return fmt.Sprintf("%s V%X, R", chip8.LdName, x), true
	}
	return "", false
}

// formatInstruction formats the parameters of a CHIP-8 instruction.
func formatInstruction(name string, opcode uint16) string {
	switch name {
	case chip8.ClsName, chip8.RetName:
		return ""
	case chip8.JpName:
		return formatJumpInstruction(opcode)
	case chip8.CallName:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.SeName, chip8.SneName:
		return formatCompareInstruction(opcode)
	case chip8.LdName:
		return formatLoadInstruction(opcode)
	case chip8.AddName:
		return formatAddInstruction(opcode)
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName:
		return fmt.Sprintf("V%X, V%X", extractRegisterX(opcode), extractRegisterY(opcode))
	case chip8.ShrName, chip8.ShlName, chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", extractRegisterX(opcode))
	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", extractRegisterX(opcode), opcode&0x00FF)
	case chip8.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", extractRegisterX(opcode), extractRegisterY(opcode), opcode&0x000F)
	}
	return ""
}

func formatJumpInstruction(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompareInstruction formats SE and SNE with a byte or register operand.
func formatCompareInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	}
	return ""
}

// formatLoadInstruction formats the load forms of the 6, 8, A and F opcode classes.
func formatLoadInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		return formatMiscLoad(opcode, x)
	}
	return ""
}

func formatMiscLoad(opcode, x uint16) string {
	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
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

func formatAddInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

func dataWord(opcode uint16) string {
	return fmt.Sprintf(".word $%04X", opcode)
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}

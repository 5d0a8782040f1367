// Package disasm provides human readable forms of CHIP-8 opcodes for
// debugger and trace output.
package disasm

import "github.com/retroenv/retrochip8/internal/quirks"

// unknown is the explanation of opcodes that halt the interpreter.
const (
	unknownPattern     = "????"
	unknownDescription = "Illegal instruction"
)

// Explain breaks down an opcode into its generic pattern and a description
// of its effect, taking the quirks and the variant into account.
// For example 0x3124 returns ("3xnn", "Skip if Vx == nn").
func Explain(opcode uint16, q quirks.Quirks, variant quirks.Variant) (string, string) {
	extended := variant.SupportsExtended()

	switch opcode >> 12 {
	case 0x0:
		return explainSystem(opcode, extended)
	case 0x1:
		return "1nnn", "Jump to nnn"
	case 0x2:
		return "2nnn", "Call subroutine at nnn"
	case 0x3:
		return "3xnn", "Skip if Vx == nn"
	case 0x4:
		return "4xnn", "Skip if Vx != nn"
	case 0x5:
		if opcode&0x000F != 0 {
			return unknownPattern, unknownDescription
		}
		return "5xy0", "Skip if Vx == Vy"
	case 0x6:
		return "6xnn", "Vx = nn"
	case 0x7:
		return "7xnn", "Vx = Vx + nn"
	case 0x8:
		return explainArithmetic(opcode, q)
	case 0x9:
		if opcode&0x000F != 0 {
			return unknownPattern, unknownDescription
		}
		return "9xy0", "Skip if Vx != Vy"
	case 0xA:
		return "Annn", "I = nnn"
	case 0xB:
		if q.JumpToX {
			return "Bxnn", "Jump to xnn + Vx"
		}
		return "Bnnn", "Jump to nnn + V0"
	case 0xC:
		return "Cxnn", "Vx = random AND nn"
	case 0xD:
		if extended && opcode&0x000F == 0 {
			return "Dxy0", "Draw 16x16 sprite at (Vx, Vy)"
		}
		return "Dxyn", "Draw 8xn sprite at (Vx, Vy)"
	case 0xE:
		switch opcode & 0x00FF {
		case 0x9E:
			return "Ex9E", "Skip if key Vx is down"
		case 0xA1:
			return "ExA1", "Skip if key Vx is up"
		}
	case 0xF:
		return explainMisc(opcode, q, extended)
	}
	return unknownPattern, unknownDescription
}

func explainSystem(opcode uint16, extended bool) (string, string) {
	switch opcode {
	case 0x00E0:
		return "00E0", "Clear screen"
	case 0x00EE:
		return "00EE", "Return from subroutine"
	}

	if extended {
		if opcode&0xFFF0 == 0x00C0 {
			return "00Cn", "Scroll down by n pixels"
		}
		switch opcode {
		case 0x00FB:
			return "00FB", "Scroll right by 4 pixels"
		case 0x00FC:
			return "00FC", "Scroll left by 4 pixels"
		case 0x00FD:
			return "00FD", "Exit the interpreter"
		case 0x00FE:
			return "00FE", "Disable high resolution mode"
		case 0x00FF:
			return "00FF", "Enable high resolution mode"
		}
	}
	return "0nnn", "Machine code routine (not supported)"
}

func explainArithmetic(opcode uint16, q quirks.Quirks) (string, string) {
	switch opcode & 0x000F {
	case 0x0:
		return "8xy0", "Vx = Vy"
	case 0x1:
		if q.BitwiseResetVF {
			return "8xy1", "Vx = Vx OR Vy (VF = 0)"
		}
		return "8xy1", "Vx = Vx OR Vy"
	case 0x2:
		if q.BitwiseResetVF {
			return "8xy2", "Vx = Vx AND Vy (VF = 0)"
		}
		return "8xy2", "Vx = Vx AND Vy"
	case 0x3:
		if q.BitwiseResetVF {
			return "8xy3", "Vx = Vx XOR Vy (VF = 0)"
		}
		return "8xy3", "Vx = Vx XOR Vy"
	case 0x4:
		return "8xy4", "Vx = Vx + Vy (VF = overflow?)"
	case 0x5:
		return "8xy5", "Vx = Vx - Vy (VF = no underflow?)"
	case 0x6:
		if q.DirectShifting {
			return "8xy6", "Vx = Vx >> 1 (VF = shifted bit)"
		}
		return "8xy6", "Vx = Vy >> 1 (VF = shifted bit)"
	case 0x7:
		return "8xy7", "Vx = Vy - Vx (VF = no underflow?)"
	case 0xE:
		if q.DirectShifting {
			return "8xyE", "Vx = Vx << 1 (VF = shifted bit)"
		}
		return "8xyE", "Vx = Vy << 1 (VF = shifted bit)"
	}
	return unknownPattern, unknownDescription
}

func explainMisc(opcode uint16, q quirks.Quirks, extended bool) (string, string) {
	switch opcode & 0x00FF {
	case 0x07:
		return "Fx07", "Vx = delay"
	case 0x0A:
		return "Fx0A", "Wait for key press and save to Vx"
	case 0x15:
		return "Fx15", "delay = Vx"
	case 0x18:
		return "Fx18", "sound = Vx"
	case 0x1E:
		return "Fx1E", "I = I + Vx"
	case 0x29:
		return "Fx29", "I = font for Vx"
	case 0x30:
		if extended {
			return "Fx30", "I = big font for Vx"
		}
	case 0x33:
		return "Fx33", "Write Vx as BCD"
	case 0x55:
		if q.SaveLoadIncrement {
			return "Fx55", "Write V0 to Vx"
		}
		return "Fx55", "Write V0 to Vx (I = I + x + 1)"
	case 0x65:
		if q.SaveLoadIncrement {
			return "Fx65", "Read V0 to Vx"
		}
		return "Fx65", "Read V0 to Vx (I = I + x + 1)"
	case 0x75:
		if extended {
			return "Fx75", "Save V0 to Vx to persistent flags"
		}
	case 0x85:
		if extended {
			return "Fx85", "Load V0 to Vx from persistent flags"
		}
	}
	return unknownPattern, unknownDescription
}

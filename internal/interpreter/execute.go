package interpreter

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/memory"
)

// SUPER-CHIP horizontal scroll distance in pixels.
const horizontalScrollAmount = 4

// execute runs the instruction and returns whether the program counter
// should be advanced to the next instruction.
func (c *Interpreter) execute(ins Instruction) bool {
	switch ins.Class {
	case 0x0:
		return c.executeSystem(ins)
	case 0x1: // 1nnn - jump to nnn
		c.pc = ins.Address
		return false
	case 0x2: // 2nnn - call subroutine at nnn
		c.push(c.pc + 2)
		c.pc = ins.Address
		return false
	case 0x3: // 3xnn - skip if Vx == nn
		c.skipIf(c.v[ins.X] == ins.Byte)
	case 0x4: // 4xnn - skip if Vx != nn
		c.skipIf(c.v[ins.X] != ins.Byte)
	case 0x5: // 5xy0 - skip if Vx == Vy
		if ins.Nibble != 0 {
			c.halt(ins, "unknown register compare")
			return false
		}
		c.skipIf(c.v[ins.X] == c.v[ins.Y])
	case 0x6: // 6xnn - Vx = nn
		c.v[ins.X] = ins.Byte
	case 0x7: // 7xnn - Vx += nn, VF is not affected
		c.v[ins.X] += ins.Byte
	case 0x8:
		return c.executeArithmetic(ins)
	case 0x9: // 9xy0 - skip if Vx != Vy
		if ins.Nibble != 0 {
			c.halt(ins, "unknown register compare")
			return false
		}
		c.skipIf(c.v[ins.X] != c.v[ins.Y])
	case 0xA: // Annn - I = nnn
		c.index = ins.Address
	case 0xB:
		c.jumpWithOffset(ins)
		return false
	case 0xC: // Cxnn - Vx = random & nn
		c.v[ins.X] = byte(c.rng.UintN(256)) & ins.Byte
	case 0xD:
		return c.drawSprite(ins)
	case 0xE:
		return c.executeKeypad(ins)
	case 0xF:
		return c.executeMisc(ins)
	}
	return true
}

func (c *Interpreter) skipIf(condition bool) {
	if condition {
		c.pc += 2
	}
}

// executeSystem handles the 0 opcode class.
func (c *Interpreter) executeSystem(ins Instruction) bool {
	extended := c.variant.SupportsExtended()

	switch {
	case ins.Opcode == 0x00E0: // clear screen
		c.display.Clear()
		return true

	case ins.Opcode == 0x00EE: // return from subroutine
		c.pc = c.pop()
		return false

	case ins.Opcode&0xFFF0 == 0x00C0: // 00Cn - scroll down by n pixels
		if !extended {
			c.unsupported(ins)
			return false
		}
		c.display.Scroll(display.ScrollDown, int(ins.Nibble), c.quirks.LowresScroll)
		return true
	}

	switch ins.Opcode {
	case 0x00FB, 0x00FC, 0x00FD, 0x00FE, 0x00FF:
		if !extended {
			c.unsupported(ins)
			return false
		}
	default:
		c.halt(ins, "machine code routines are not supported")
		return false
	}

	switch ins.Opcode {
	case 0x00FB: // scroll right by 4 pixels
		c.display.Scroll(display.ScrollRight, horizontalScrollAmount, c.quirks.LowresScroll)
	case 0x00FC: // scroll left by 4 pixels
		c.display.Scroll(display.ScrollLeft, horizontalScrollAmount, c.quirks.LowresScroll)
	case 0x00FD: // exit the interpreter
		c.Stop()
		return false
	case 0x00FE: // low resolution, the display is not cleared
		c.display.SetHighres(false)
	case 0x00FF: // high resolution, the display is not cleared
		c.display.SetHighres(true)
	}
	return true
}

// executeArithmetic handles the 8 opcode class. VF is written after the
// result so that it holds the flag if x is F.
func (c *Interpreter) executeArithmetic(ins Instruction) bool {
	x, y := ins.X, ins.Y

	switch ins.Nibble {
	case 0x0: // 8xy0 - Vx = Vy
		c.v[x] = c.v[y]

	case 0x1: // 8xy1 - Vx |= Vy
		c.v[x] |= c.v[y]
		c.bitwiseResetFlag()

	case 0x2: // 8xy2 - Vx &= Vy
		c.v[x] &= c.v[y]
		c.bitwiseResetFlag()

	case 0x3: // 8xy3 - Vx ^= Vy
		c.v[x] ^= c.v[y]
		c.bitwiseResetFlag()

	case 0x4: // 8xy4 - Vx += Vy, VF = 1 on overflow
		sum := uint16(c.v[x]) + uint16(c.v[y])
		c.v[x] = byte(sum)
		c.setFlag(boolToByte(sum > 0xFF))

	case 0x5: // 8xy5 - Vx -= Vy, VF = 1 if no underflow
		noBorrow := c.v[x] >= c.v[y]
		c.v[x] -= c.v[y]
		c.setFlag(boolToByte(noBorrow))

	case 0x6: // 8xy6 - Vx = Vy >> 1, or Vx >>= 1, VF = shifted out bit
		if !c.quirks.DirectShifting {
			c.v[x] = c.v[y]
		}
		shifted := c.v[x] & 0x01
		c.v[x] >>= 1
		c.setFlag(shifted)

	case 0x7: // 8xy7 - Vx = Vy - Vx, VF = 1 if no underflow
		noBorrow := c.v[y] >= c.v[x]
		c.v[x] = c.v[y] - c.v[x]
		c.setFlag(boolToByte(noBorrow))

	case 0xE: // 8xyE - Vx = Vy << 1, or Vx <<= 1, VF = shifted out bit
		if !c.quirks.DirectShifting {
			c.v[x] = c.v[y]
		}
		shifted := c.v[x] >> 7
		c.v[x] <<= 1
		c.setFlag(shifted)

	default:
		c.halt(ins, "unknown arithmetic operation")
		return false
	}
	return true
}

func (c *Interpreter) bitwiseResetFlag() {
	if c.quirks.BitwiseResetVF {
		c.setFlag(0)
	}
}

// jumpWithOffset handles Bnnn, or Bxnn with the jump to x quirk.
func (c *Interpreter) jumpWithOffset(ins Instruction) {
	offset := c.v[0]
	if c.quirks.JumpToX {
		offset = c.v[ins.X]
	}
	c.pc = ins.Address + uint16(offset)
}

// executeKeypad handles the E opcode class.
func (c *Interpreter) executeKeypad(ins Instruction) bool {
	pressed := c.keypad[c.v[ins.X]&0x0F]

	switch ins.Byte {
	case 0x9E: // Ex9E - skip if key Vx is down
		c.skipIf(pressed)
	case 0xA1: // ExA1 - skip if key Vx is up
		c.skipIf(!pressed)
	default:
		c.halt(ins, "unknown keypad operation")
		return false
	}
	return true
}

// executeMisc handles the F opcode class.
func (c *Interpreter) executeMisc(ins Instruction) bool {
	x := ins.X

	switch ins.Byte {
	case 0x07: // Fx07 - Vx = delay
		c.v[x] = c.delay

	case 0x0A: // Fx0A - wait for a key and store it in Vx
		c.awaitingKey = true
		c.keyDestination = x
		return false

	case 0x15: // Fx15 - delay = Vx
		c.delay = c.v[x]

	case 0x18: // Fx18 - sound = Vx
		c.sound = c.v[x]

	case 0x1E: // Fx1E - I += Vx
		c.index += uint16(c.v[x])

	case 0x29: // Fx29 - I = address of the small font glyph of Vx
		c.index = memory.FontAddress + uint16(c.v[x]&0x0F)*memory.FontGlyphSize

	case 0x30: // Fx30 - I = address of the big font glyph of Vx
		if !c.variant.SupportsExtended() {
			c.unsupported(ins)
			return false
		}
		c.index = memory.BigFontAddress + uint16(c.v[x]&0x0F)*memory.BigFontGlyphSize

	case 0x33: // Fx33 - store BCD of Vx at I, I+1 and I+2
		if !c.checkMemoryRange(ins, c.index, 3) {
			return false
		}
		value := c.v[x]
		c.memory.WriteByte(c.index, value/100)
		c.memory.WriteByte(c.index+1, value/10%10)
		c.memory.WriteByte(c.index+2, value%10)

	case 0x55: // Fx55 - store V0 to Vx at I
		if !c.checkMemoryRange(ins, c.index, int(x)+1) {
			return false
		}
		for i := range uint16(x) + 1 {
			c.memory.WriteByte(c.index+i, c.v[i])
		}
		c.advanceIndexAfterBlockTransfer(x)

	case 0x65: // Fx65 - load V0 to Vx from I
		if !c.checkMemoryRange(ins, c.index, int(x)+1) {
			return false
		}
		for i := range uint16(x) + 1 {
			c.v[i] = c.memory.ReadByte(c.index + i)
		}
		c.advanceIndexAfterBlockTransfer(x)

	case 0x75: // Fx75 - save V0 to Vx to the persistent flags
		return c.savePersistentFlags(ins)

	case 0x85: // Fx85 - load V0 to Vx from the persistent flags
		return c.loadPersistentFlags(ins)

	default:
		c.halt(ins, fmt.Sprintf("unknown operation %02X", ins.Byte))
		return false
	}
	return true
}

func (c *Interpreter) advanceIndexAfterBlockTransfer(x uint8) {
	if !c.quirks.SaveLoadIncrement {
		c.index += uint16(x) + 1
	}
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

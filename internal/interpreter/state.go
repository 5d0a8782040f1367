package interpreter

import (
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/quirks"
)

// Register returns the value of the general purpose register Vi.
func (c *Interpreter) Register(i int) byte {
	return c.v[i]
}

// Registers returns a copy of all general purpose registers.
func (c *Interpreter) Registers() [RegisterCount]byte {
	return c.v
}

// Index returns the address register I.
func (c *Interpreter) Index() uint16 {
	return c.index
}

// ProgramCounter returns the address of the next instruction.
func (c *Interpreter) ProgramCounter() uint16 {
	return c.pc
}

// StackPointer returns the number of used stack entries.
func (c *Interpreter) StackPointer() uint8 {
	return c.sp
}

// StackDepth returns the stack capacity of the variant.
func (c *Interpreter) StackDepth() int {
	return int(c.stackDepth)
}

// Stack returns the stack entry i.
func (c *Interpreter) Stack(i int) uint16 {
	return c.stack[i]
}

// Delay returns the delay timer.
func (c *Interpreter) Delay() byte {
	return c.delay
}

// Sound returns the sound timer.
func (c *Interpreter) Sound() byte {
	return c.sound
}

// CurrentOpcode returns the instruction at the program counter.
func (c *Interpreter) CurrentOpcode() uint16 {
	if int(c.pc) >= c.memory.Len()-1 {
		return 0
	}
	return c.memory.ReadOpcode(c.pc)
}

// ReadByte returns the memory byte at the given address.
func (c *Interpreter) ReadByte(address uint16) byte {
	return c.memory.ReadByte(address)
}

// MemorySize returns the size of the memory.
func (c *Interpreter) MemorySize() int {
	return c.memory.Len()
}

// KeyState returns whether the key is pressed.
func (c *Interpreter) KeyState(key int) bool {
	return c.keypad[key]
}

// Keys returns the state of all keys.
func (c *Interpreter) Keys() [KeyCount]bool {
	return c.keypad
}

// WaitingForKey returns whether execution is suspended by Fx0A.
func (c *Interpreter) WaitingForKey() bool {
	return c.awaitingKey
}

// KeyDestination returns the register that receives the awaited key.
func (c *Interpreter) KeyDestination() int {
	return int(c.keyDestination)
}

// PersistentFlags returns the persistent flags.
func (c *Interpreter) PersistentFlags() [PersistentFlagCount]byte {
	return c.persistentFlags
}

// Halted returns whether an illegal instruction halted the interpreter.
func (c *Interpreter) Halted() bool {
	return c.haltMessage != ""
}

// HaltMessage returns the diagnostic of the halt, or an empty string.
func (c *Interpreter) HaltMessage() string {
	return c.haltMessage
}

// Display returns the display. Callers must not modify it.
func (c *Interpreter) Display() *display.Display {
	return c.display
}

// ReadyToDraw returns whether a vblank happened since the last sprite was drawn.
func (c *Interpreter) ReadyToDraw() bool {
	return c.vblank
}

// Variant returns the variant of the interpreter.
func (c *Interpreter) Variant() quirks.Variant {
	return c.variant
}

// Quirks returns the current quirks configuration.
func (c *Interpreter) Quirks() quirks.Quirks {
	return c.quirks
}

// FrameCycle returns the number of cycles executed in the current frame.
func (c *Interpreter) FrameCycle() int {
	return c.frameCycle
}

// CyclesPerFrame returns the number of cycles the driver should execute per frame.
func (c *Interpreter) CyclesPerFrame() int {
	return c.cyclesPerFrame
}

// SoundEnabled returns whether the driver should play a tone.
func (c *Interpreter) SoundEnabled() bool {
	return c.soundEnabled
}

package interpreter

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrogolib/assert"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name    string
		program []uint16
		x       byte
		flag    byte
	}{
		{"add with carry", []uint16{0x60FF, 0x6101, 0x8014}, 0x00, 1},
		{"add without carry", []uint16{0x6010, 0x6120, 0x8014}, 0x30, 0},
		{"sub with borrow", []uint16{0x6005, 0x610A, 0x8015}, 0xFB, 0},
		{"sub without borrow", []uint16{0x600A, 0x610A, 0x8015}, 0x00, 1},
		{"reverse sub", []uint16{0x6005, 0x610A, 0x8017}, 0x05, 1},
		{"reverse sub with borrow", []uint16{0x600A, 0x6105, 0x8017}, 0xFB, 0},
		{"assign", []uint16{0x6F07, 0x6142, 0x8010}, 0x42, 7},
		{"add immediate keeps flag", []uint16{0x6F07, 0x60FF, 0x7002}, 0x01, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := load(t, NewChip8(), tt.program...)
			runCycles(c, len(tt.program))
			assert.Equal(t, tt.x, c.Register(0))
			assert.Equal(t, tt.flag, c.Register(FlagRegister))
		})
	}
}

func TestFlagWrittenAfterResult(t *testing.T) {
	c := load(t, NewChip8(),
		0x6FFF, // VF = 0xFF
		0x6002, // V0 = 2
		0x8F04, // VF += V0
	)
	runCycles(c, 3)
	assert.Equal(t, byte(1), c.Register(FlagRegister))
}

func TestBitwiseResetQuirk(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		reset  bool
		flag   byte
	}{
		{"or with reset", 0x8011, true, 0},
		{"or", 0x8011, false, 5},
		{"and with reset", 0x8012, true, 0},
		{"and", 0x8012, false, 5},
		{"xor with reset", 0x8013, true, 0},
		{"xor", 0x8013, false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := quirks.OctoChip()
			q.BitwiseResetVF = tt.reset
			c := load(t, NewChip8(WithQuirks(q)), 0x6F05, 0x600C, 0x610A, tt.opcode)
			runCycles(c, 4)
			assert.Equal(t, tt.flag, c.Register(FlagRegister))
		})
	}

	c := load(t, NewChip8(), 0x600C, 0x610A, 0x8011, 0x6012, 0x8012, 0x600C, 0x8013)
	runCycles(c, 3)
	assert.Equal(t, byte(0x0E), c.Register(0))
	runCycles(c, 2)
	assert.Equal(t, byte(0x02), c.Register(0))
	runCycles(c, 2)
	assert.Equal(t, byte(0x06), c.Register(0))
}

func TestShiftQuirk(t *testing.T) {
	tests := []struct {
		name   string
		direct bool
		opcode uint16
		x      byte
		flag   byte
	}{
		{"right from vy", false, 0x8016, 0x40, 1},
		{"right in place", true, 0x8016, 0x08, 0},
		{"left from vy", false, 0x801E, 0x02, 1},
		{"left in place", true, 0x801E, 0x20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := quirks.VIPChip()
			q.DirectShifting = tt.direct
			c := load(t, NewChip8(WithQuirks(q)),
				0x6010, // V0 = 0x10
				0x6181, // V1 = 0x81
				tt.opcode,
			)
			runCycles(c, 3)
			assert.Equal(t, tt.x, c.Register(0))
			assert.Equal(t, tt.flag, c.Register(FlagRegister))
		})
	}
}

func TestJumpCallReturn(t *testing.T) {
	c := load(t, NewChip8(),
		0x2206, // call 0x206
		0x6001, // V0 = 1
		0x1204, // 0x204: jump to self
		0x6102, // 0x206: V1 = 2
		0x00EE, // return
	)
	runCycles(c, 2)
	assert.Equal(t, uint16(0x208), c.ProgramCounter())
	assert.Equal(t, uint8(1), c.StackPointer())
	assert.Equal(t, uint16(0x202), c.Stack(0))
	assert.Equal(t, byte(2), c.Register(1))

	runCycles(c, 1)
	assert.Equal(t, uint16(0x202), c.ProgramCounter())
	assert.Equal(t, uint8(0), c.StackPointer())

	runCycles(c, 3)
	assert.Equal(t, uint16(0x204), c.ProgramCounter())
	assert.Equal(t, byte(1), c.Register(0))
}

func TestStackSaturates(t *testing.T) {
	c := load(t, NewChip8(), 0x2200) // call self
	runCycles(c, BaselineStackDepth+3)
	assert.Equal(t, uint8(BaselineStackDepth), c.StackPointer())
	assert.False(t, c.Halted())
	assert.Equal(t, uint16(0x202), c.Stack(BaselineStackDepth-1))

	for range BaselineStackDepth + 2 {
		c.ExecuteInstruction(0x00EE)
	}
	assert.Equal(t, uint8(0), c.StackPointer())
	assert.False(t, c.Halted())

	c = load(t, NewSuperChip11(), 0x2200)
	runCycles(c, ExtendedStackDepth+1)
	assert.Equal(t, uint8(ExtendedStackDepth), c.StackPointer())
}

func TestJumpWithOffset(t *testing.T) {
	tests := []struct {
		name   string
		jumpX  bool
		target uint16
	}{
		{"v0 offset", false, 0x314},
		{"vx offset", true, 0x320},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := quirks.VIPChip()
			q.JumpToX = tt.jumpX
			c := load(t, NewChip8(WithQuirks(q)),
				0x6004, // V0 = 4
				0x6310, // V3 = 0x10
				0xB310, // jump to 0x310 + offset
			)
			runCycles(c, 3)
			assert.Equal(t, tt.target, c.ProgramCounter())
		})
	}
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		skipped bool
	}{
		{"3xnn equal", 0x3005, true},
		{"3xnn not equal", 0x3006, false},
		{"4xnn equal", 0x4005, false},
		{"4xnn not equal", 0x4006, true},
		{"5xy0 equal", 0x5010, true},
		{"5xy0 not equal", 0x5020, false},
		{"9xy0 equal", 0x9010, false},
		{"9xy0 not equal", 0x9020, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := load(t, NewChip8(),
				0x6005, // V0 = 5
				0x6105, // V1 = 5
				0x6207, // V2 = 7
				tt.opcode,
			)
			runCycles(c, 4)

			want := uint16(0x208)
			if tt.skipped {
				want = 0x20A
			}
			assert.Equal(t, want, c.ProgramCounter())
		})
	}
}

func TestKeySkips(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		pressed bool
		skipped bool
	}{
		{"Ex9E pressed", 0xE09E, true, true},
		{"Ex9E released", 0xE09E, false, false},
		{"ExA1 pressed", 0xE0A1, true, false},
		{"ExA1 released", 0xE0A1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := load(t, NewChip8(), 0x60A7, tt.opcode) // V0 = 0xA7, key 7
			var keys [KeyCount]bool
			keys[7] = tt.pressed
			c.SetKeys(keys)
			runCycles(c, 2)

			want := uint16(0x204)
			if tt.skipped {
				want = 0x206
			}
			assert.Equal(t, want, c.ProgramCounter())
			assert.Equal(t, tt.pressed, c.KeyState(7))
		})
	}
}

func TestWaitForKey(t *testing.T) {
	c := load(t, NewChip8(), 0xF30A, 0x6001)
	c.Start()

	c.ExecuteCycle()
	assert.True(t, c.WaitingForKey())
	assert.Equal(t, 3, c.KeyDestination())
	assert.Equal(t, uint16(0x200), c.ProgramCounter())

	runCycles(c, 5)
	assert.True(t, c.WaitingForKey())
	assert.Equal(t, uint16(0x200), c.ProgramCounter())
	assert.Equal(t, 6, c.FrameCycle())

	c.SaveAwaitedKey(0x1B)
	assert.False(t, c.WaitingForKey())
	assert.Equal(t, byte(0x0B), c.Register(3))
	assert.Equal(t, uint16(0x202), c.ProgramCounter())

	c.SaveAwaitedKey(0x04)
	assert.Equal(t, byte(0x0B), c.Register(3))
	assert.Equal(t, uint16(0x202), c.ProgramCounter())

	c.ExecuteCycle()
	assert.Equal(t, byte(1), c.Register(0))
}

func TestRandomMasksByte(t *testing.T) {
	c := NewChip8(WithRand(seededRand()))
	for range 32 {
		c.Reset()
		assert.NoError(t, c.LoadProgram(program(0xC00F, 0xC100)))
		runCycles(c, 2)
		assert.Equal(t, byte(0), c.Register(0)&0xF0)
		assert.Equal(t, byte(0), c.Register(1))
	}

	first := load(t, NewChip8(WithRand(seededRand())), 0xC0FF)
	second := load(t, NewChip8(WithRand(seededRand())), 0xC0FF)
	runCycles(first, 1)
	runCycles(second, 1)
	assert.Equal(t, first.Register(0), second.Register(0))
}

func TestTimerAndIndexInstructions(t *testing.T) {
	c := load(t, NewChip8(),
		0x6A20, // VA = 0x20
		0xFA15, // delay = VA
		0xFB07, // VB = delay
		0xA100, // I = 0x100
		0xFA1E, // I += VA
	)
	runCycles(c, 5)
	assert.Equal(t, byte(0x20), c.Delay())
	assert.Equal(t, byte(0x20), c.Register(0xB))
	assert.Equal(t, uint16(0x120), c.Index())
}

func TestFontAddress(t *testing.T) {
	c := load(t, NewSuperChip11(), 0x601A, 0xF029, 0xF030)
	runCycles(c, 2)
	assert.Equal(t, uint16(memory.FontAddress+0xA*memory.FontGlyphSize), c.Index())
	runCycles(c, 1)
	assert.Equal(t, uint16(memory.BigFontAddress+0xA*memory.BigFontGlyphSize), c.Index())
}

func TestBinaryCodedDecimal(t *testing.T) {
	c := load(t, NewChip8(), 0x60FE, 0xA300, 0xF033)
	runCycles(c, 3)
	assert.Equal(t, byte(2), c.ReadByte(0x300))
	assert.Equal(t, byte(5), c.ReadByte(0x301))
	assert.Equal(t, byte(4), c.ReadByte(0x302))
	assert.Equal(t, uint16(0x300), c.Index())
}

func TestStoreLoadRegisters(t *testing.T) {
	tests := []struct {
		name      string
		increment bool
		index     uint16
	}{
		{"index unchanged", true, 0x300},
		{"index incremented", false, 0x303},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := quirks.VIPChip()
			q.SaveLoadIncrement = tt.increment
			c := load(t, NewChip8(WithQuirks(q)),
				0x6011, // V0 = 0x11
				0x6122, // V1 = 0x22
				0x6233, // V2 = 0x33
				0x6344, // V3 = 0x44
				0xA300, // I = 0x300
				0xF255, // store V0-V2
			)
			runCycles(c, 6)
			assert.Equal(t, byte(0x11), c.ReadByte(0x300))
			assert.Equal(t, byte(0x22), c.ReadByte(0x301))
			assert.Equal(t, byte(0x33), c.ReadByte(0x302))
			assert.Equal(t, byte(0x00), c.ReadByte(0x303))
			assert.Equal(t, tt.index, c.Index())

			c.ExecuteInstruction(0xA300)
			c.ExecuteInstruction(0x6000)
			c.ExecuteInstruction(0x6100)
			c.ExecuteInstruction(0xF165) // load V0-V1
			assert.Equal(t, byte(0x11), c.Register(0))
			assert.Equal(t, byte(0x22), c.Register(1))
			assert.Equal(t, byte(0x33), c.Register(2))
			want := uint16(0x300)
			if !tt.increment {
				want = 0x302
			}
			assert.Equal(t, want, c.Index())
		})
	}
}

func TestIllegalInstructions(t *testing.T) {
	tests := []struct {
		name    string
		create  func(...Option) *Interpreter
		opcode  uint16
		message string
	}{
		{"machine code", NewChip8, 0x0123, "illegal instruction 0x0123 at 0x0200: machine code routines are not supported"},
		{"zero", NewSuperChip11, 0x0000, "0x0000"},
		{"high resolution on chip8", NewChip8, 0x00FF, "0x00FF at 0x0200: not supported by variant chip8"},
		{"scroll on chip8", NewChip8, 0x00C4, "not supported by variant chip8"},
		{"big font on chip8", NewChip8, 0xF030, "not supported by variant chip8"},
		{"flags on chip8", NewChip8, 0xF075, "not supported by variant chip8"},
		{"register compare", NewChip8, 0x5011, "unknown register compare"},
		{"register compare not equal", NewChip8, 0x901F, "unknown register compare"},
		{"arithmetic", NewChip8, 0x8018, "unknown arithmetic operation"},
		{"keypad", NewChip8, 0xE0FF, "unknown keypad operation"},
		{"misc", NewChip8, 0xF0FF, "unknown operation FF"},
		{"persistent flag range", NewSuperChip11, 0xF875, "persistent flag V8 out of range"},
		{"persistent flag load range", NewSuperChip11, 0xFF85, "persistent flag VF out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := load(t, tt.create(), tt.opcode)
			c.Start()
			c.ExecuteCycle()

			assert.True(t, c.Halted())
			assert.False(t, c.Running())
			assert.Contains(t, c.HaltMessage(), tt.message)
			assert.Equal(t, uint16(0x200), c.ProgramCounter())
		})
	}
}

func TestMemoryAccessOutOfBounds(t *testing.T) {
	tests := []struct {
		name    string
		program []uint16
	}{
		{"bcd", []uint16{0xAFFE, 0xF033}},
		{"store", []uint16{0xAFFD, 0xF455}},
		{"load", []uint16{0xAFFF, 0xF165}},
		{"draw", []uint16{0xAFFC, 0xD005}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := load(t, NewChip8(), tt.program...)
			c.Start()
			runCycles(c, len(tt.program))
			assert.True(t, c.Halted())
			assert.Contains(t, c.HaltMessage(), "out of bounds")
		})
	}
}

func TestExtendedSystemInstructions(t *testing.T) {
	c := load(t, NewSuperChip11(),
		0x00FF, // high resolution
		0x00FE, // low resolution
		0x00FF, // high resolution
		0x00FD, // exit
	)
	c.Start()

	c.ExecuteCycle()
	assert.True(t, c.Display().Highres())
	c.ExecuteCycle()
	assert.False(t, c.Display().Highres())
	c.ExecuteCycle()
	assert.True(t, c.Display().Highres())

	c.ExecuteCycle()
	assert.False(t, c.Running())
	assert.False(t, c.Halted())
	assert.Equal(t, uint16(0x206), c.ProgramCounter())
}

func TestScrollInstructions(t *testing.T) {
	rom := program(
		0x00FF, // high resolution
		0xA300, // I = 0x300
		0x6000, // V0 = 0
		0xD001, // draw 1 row at 0,0
		0x00C3, // scroll down 3
		0x00FB, // scroll right 4
		0x00FC, // scroll left 4
		0x00FB, // scroll right 4
	)
	rom = append(rom, make([]byte, 0x100-len(rom))...)
	rom = append(rom, 0x80) // sprite row at 0x300
	c := NewSuperChip11()
	assert.NoError(t, c.LoadProgram(rom))

	runCycles(c, 4)
	assert.True(t, c.Display().Pixel(0, 0))

	runCycles(c, 1)
	assert.False(t, c.Display().Pixel(0, 0))
	assert.True(t, c.Display().Pixel(0, 3))

	runCycles(c, 1)
	assert.True(t, c.Display().Pixel(4, 3))

	runCycles(c, 1)
	assert.True(t, c.Display().Pixel(0, 3))

	runCycles(c, 1)
	assert.True(t, c.Display().Pixel(4, 3))
	assert.False(t, c.Display().Pixel(0, 3))
}

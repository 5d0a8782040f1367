// Package interpreter implements the CHIP-8 execution engine.
//
// The engine owns the memory, the display, the register file, the stack and
// the timers. It has no concurrency of its own: a driver calls ExecuteCycle
// at its own cadence and TickFrame once per 60 Hz frame, and has to serialize
// all access to an instance.
package interpreter

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrogolib/log"
)

const (
	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16
	// FlagRegister is the index of VF, written as flag by some instructions.
	FlagRegister = 0xF
	// KeyCount is the number of keys of the hex keypad.
	KeyCount = 16

	// BaselineStackDepth is the stack capacity of the CHIP-8.
	BaselineStackDepth = 12
	// ExtendedStackDepth is the stack capacity of the SUPER-CHIP and later variants.
	ExtendedStackDepth = 16

	// DefaultCyclesPerFrame is the default number of cycles executed per frame.
	DefaultCyclesPerFrame = 500
)

// Interpreter is a CHIP-8 interpreter context.
type Interpreter struct {
	v          [RegisterCount]byte
	index      uint16
	pc         uint16
	sp         uint8
	stack      [ExtendedStackDepth]uint16
	stackDepth uint8
	delay      byte
	sound      byte
	keypad     [KeyCount]bool

	memory  *memory.Memory
	display *display.Display

	variant        quirks.Variant
	quirks         quirks.Quirks
	frameCycle     int
	cyclesPerFrame int
	soundEnabled   bool

	running        bool
	vblank         bool
	awaitingKey    bool
	keyDestination uint8
	haltMessage    string

	persistentFlags [PersistentFlagCount]byte
	flagStore       FlagStore
	storageErr      error

	logger *log.Logger
	rng    *rand.Rand
}

// Option configures an interpreter on construction.
type Option func(*Interpreter)

// WithLogger sets the logger used to report halts and storage failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Interpreter) {
		c.logger = logger
	}
}

// WithRand sets the random number generator used by Cxnn.
func WithRand(rng *rand.Rand) Option {
	return func(c *Interpreter) {
		c.rng = rng
	}
}

// WithFlagStore sets the backing store of the persistent flags.
func WithFlagStore(store FlagStore) Option {
	return func(c *Interpreter) {
		c.flagStore = store
	}
}

// WithQuirks overrides the quirks preset of the variant.
func WithQuirks(q quirks.Quirks) Option {
	return func(c *Interpreter) {
		c.quirks = q
	}
}

// WithCyclesPerFrame sets the number of cycles the driver should execute per frame.
func WithCyclesPerFrame(cycles int) Option {
	return func(c *Interpreter) {
		c.cyclesPerFrame = max(cycles, 1)
	}
}

// NewChip8 creates an interpreter with the quirks of the original
// CHIP-8 implementation on the COSMAC VIP.
func NewChip8(options ...Option) *Interpreter {
	return New(quirks.Chip8, options...)
}

// NewSuperChip11 creates a SUPER-CHIP 1.1 interpreter.
func NewSuperChip11(options ...Option) *Interpreter {
	return New(quirks.SuperChip11, options...)
}

// NewXOChip creates an interpreter of the XO-CHIP tier using the Octo quirks.
func NewXOChip(options ...Option) *Interpreter {
	return New(quirks.XOChip, options...)
}

// New creates an interpreter for the given variant, using the default quirks
// of the variant unless overridden by an option.
func New(variant quirks.Variant, options ...Option) *Interpreter {
	c := &Interpreter{
		memory:         memory.New(),
		display:        display.New(),
		variant:        variant,
		quirks:         variant.DefaultQuirks(),
		cyclesPerFrame: DefaultCyclesPerFrame,
		stackDepth:     BaselineStackDepth,
	}
	if variant.SupportsExtended() {
		c.stackDepth = ExtendedStackDepth
	}

	for _, option := range options {
		option(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	c.resetState()
	c.loadInitialFlags()
	return c
}

// Derive creates an interpreter for another variant that shares the logger,
// the random number generator and the flag store. The speed and sound
// settings are kept, the quirks are the defaults of the new variant.
func (c *Interpreter) Derive(variant quirks.Variant) *Interpreter {
	next := New(variant,
		WithLogger(c.logger),
		WithRand(c.rng),
		WithFlagStore(c.flagStore),
		WithCyclesPerFrame(c.cyclesPerFrame),
	)
	next.soundEnabled = c.soundEnabled
	return next
}

// Start lets the driver execute instructions.
func (c *Interpreter) Start() {
	c.running = true
}

// Stop marks the interpreter as not running. It does not change the halt state.
func (c *Interpreter) Stop() {
	c.running = false
}

// Running returns whether the interpreter is executing instructions.
func (c *Interpreter) Running() bool {
	return c.running
}

// Reset puts the interpreter into its initial state. The variant, quirks,
// speed and sound settings, the persistent flags and all collaborators are kept.
func (c *Interpreter) Reset() {
	c.resetState()
}

func (c *Interpreter) resetState() {
	c.v = [RegisterCount]byte{}
	c.index = 0
	c.pc = memory.ProgramStart
	c.sp = 0
	c.stack = [ExtendedStackDepth]uint16{}
	c.delay = 0
	c.sound = 0
	c.keypad = [KeyCount]bool{}
	c.memory.Reset()
	c.display = display.New()

	c.frameCycle = 0
	c.running = false
	c.vblank = true
	c.awaitingKey = false
	c.keyDestination = 0
	c.haltMessage = ""
	c.storageErr = nil
}

// LoadProgram resets the memory and loads the program at address 0x200.
func (c *Interpreter) LoadProgram(program []byte) error {
	if err := c.memory.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return nil
}

// TickFrame signals a completed frame: both timers are decremented,
// the display is ready for drawing again and the frame cycle counter restarts.
func (c *Interpreter) TickFrame() {
	if c.delay > 0 {
		c.delay--
	}
	if c.sound > 0 {
		c.sound--
	}
	c.vblank = true
	c.frameCycle = 0
}

// ExecuteCycle fetches the instruction at the program counter and executes it.
// The interpreter stops when the program counter reaches the end of memory.
func (c *Interpreter) ExecuteCycle() {
	if int(c.pc) >= c.memory.Len()-2 {
		c.Stop()
		return
	}

	c.frameCycle++
	c.ExecuteInstruction(c.memory.ReadOpcode(c.pc))
}

// ExecuteInstruction executes the given opcode as if it was fetched from
// the program counter. Nothing is executed while waiting for a key press.
func (c *Interpreter) ExecuteInstruction(opcode uint16) {
	if c.awaitingKey {
		return
	}

	ins := Decode(opcode)
	if c.execute(ins) {
		c.pc += 2
	}
}

// SetKeys replaces the state of all keys.
func (c *Interpreter) SetKeys(keys [KeyCount]bool) {
	c.keypad = keys
}

// SaveAwaitedKey resolves a pending Fx0A instruction: the key is stored in
// the destination register and execution continues after the instruction.
func (c *Interpreter) SaveAwaitedKey(key byte) {
	if !c.awaitingKey {
		return
	}
	c.v[c.keyDestination] = key & 0x0F
	c.awaitingKey = false
	c.pc += 2
}

// SetQuirks replaces the quirks configuration.
func (c *Interpreter) SetQuirks(q quirks.Quirks) {
	c.quirks = q
}

// SetCyclesPerFrame sets the number of cycles the driver should execute per frame.
func (c *Interpreter) SetCyclesPerFrame(cycles int) {
	c.cyclesPerFrame = max(cycles, 1)
}

// SetSoundEnabled sets whether the driver should play a tone while the sound timer is active.
func (c *Interpreter) SetSoundEnabled(enabled bool) {
	c.soundEnabled = enabled
}

// halt stops execution because of an instruction that can not be executed.
// The state is kept until the next reset.
func (c *Interpreter) halt(ins Instruction, reason string) {
	c.haltMessage = fmt.Sprintf("illegal instruction 0x%04X at 0x%04X: %s", ins.Opcode, c.pc, reason)
	c.running = false

	if c.logger != nil {
		c.logger.Error("Interpreter halted",
			log.Hex("opcode", ins.Opcode),
			log.Hex("pc", c.pc),
			log.String("reason", reason))
	}
}

// unsupported halts for an extended instruction executed by a baseline variant.
func (c *Interpreter) unsupported(ins Instruction) {
	c.halt(ins, fmt.Sprintf("not supported by variant %s", c.variant))
}

// checkMemoryRange halts if the memory range starting at address is not addressable.
func (c *Interpreter) checkMemoryRange(ins Instruction, address uint16, length int) bool {
	end := int(address) + length
	if end <= c.memory.Len() {
		return true
	}
	c.halt(ins, fmt.Sprintf("memory access 0x%04X-0x%04X out of bounds", address, end-1))
	return false
}

// push stores a return address. The stack pointer saturates at the stack
// capacity, a full stack gets its top entry overwritten.
func (c *Interpreter) push(address uint16) {
	slot := min(c.sp, c.stackDepth-1)
	c.stack[slot] = address
	c.sp = min(c.sp+1, c.stackDepth)
}

// pop returns the last return address. The stack pointer saturates at 0.
func (c *Interpreter) pop() uint16 {
	if c.sp > 0 {
		c.sp--
	}
	return c.stack[c.sp]
}

func (c *Interpreter) setFlag(value byte) {
	c.v[FlagRegister] = value
}

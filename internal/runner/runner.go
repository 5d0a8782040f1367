// Package runner drives an interpreter at the CHIP-8 frame rate.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the number of frames per second.
const FrameRate = 60

// Beeper plays a tone while the sound timer is active.
type Beeper interface {
	Play()
	Pause()
}

// Option configures a runner on construction.
type Option func(*Runner)

// WithBeeper sets the beeper that is controlled by the sound timer.
func WithBeeper(beeper Beeper) Option {
	return func(r *Runner) {
		r.beeper = beeper
	}
}

// WithTrace enables debug logging of every executed instruction.
func WithTrace(trace bool) Option {
	return func(r *Runner) {
		r.trace = trace
	}
}

// Runner owns an interpreter and serializes all access to it.
type Runner struct {
	mu     sync.Mutex
	logger *log.Logger
	interp *interpreter.Interpreter
	beeper Beeper
	trace  bool

	frames       uint64
	beeping      bool
	haltReported bool
}

// New returns a runner for the interpreter.
func New(logger *log.Logger, interp *interpreter.Interpreter, options ...Option) *Runner {
	r := &Runner{
		logger: logger,
		interp: interp,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run steps a frame every 1/60 s until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()
	defer r.pauseBeeper()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.mu.Lock()
			if r.interp.Running() {
				r.stepFrame()
			}
			r.mu.Unlock()
		}
	}
}

// StepFrame executes the remaining cycles of the current frame and ticks
// the frame, regardless of whether the interpreter is running.
func (r *Runner) StepFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stepFrame()
}

// StepCycle executes a single cycle. The frame is ticked once all cycles of
// the frame have been executed.
func (r *Runner) StepCycle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.interp
	if c.Halted() {
		return
	}
	r.executeCycle()
	if c.FrameCycle() >= c.CyclesPerFrame() {
		r.tickFrame()
	}
	r.reportHalt()
}

// Do calls fn with exclusive access to the interpreter.
func (r *Runner) Do(fn func(c *interpreter.Interpreter)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.interp)
}

// Swap replaces the interpreter, for example after switching the variant.
func (r *Runner) Swap(interp *interpreter.Interpreter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interp = interp
	r.haltReported = false
	r.frames = 0
}

// Load resets the interpreter, loads the program and starts execution.
func (r *Runner) Load(program []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.interp.Reset()
	if err := r.interp.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program into interpreter: %w", err)
	}
	r.interp.Start()
	r.haltReported = false
	r.frames = 0
	return nil
}

// Frames returns the number of frames ticked since the last load.
func (r *Runner) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *Runner) stepFrame() {
	c := r.interp
	running := c.Running()
	for c.FrameCycle() < c.CyclesPerFrame() && !c.Halted() {
		cycle := c.FrameCycle()
		r.executeCycle()
		// the end of memory stops without executing
		if c.FrameCycle() == cycle || running && !c.Running() {
			break
		}
	}
	r.tickFrame()
	r.reportHalt()
}

func (r *Runner) executeCycle() {
	if r.trace {
		c := r.interp
		opcode := c.CurrentOpcode()
		r.logger.Debug("Executing instruction",
			log.Hex("pc", c.ProgramCounter()),
			log.Hex("opcode", opcode),
			log.String("instruction", disasm.Mnemonic(opcode)))
	}
	r.interp.ExecuteCycle()
}

func (r *Runner) tickFrame() {
	r.interp.TickFrame()
	r.frames++
	r.updateBeeper()
}

// updateBeeper plays the tone while the sound timer is active.
func (r *Runner) updateBeeper() {
	if r.beeper == nil {
		return
	}

	c := r.interp
	beep := c.SoundEnabled() && c.Sound() > 1
	if beep == r.beeping {
		return
	}
	r.beeping = beep
	if beep {
		r.beeper.Play()
	} else {
		r.beeper.Pause()
	}
}

func (r *Runner) pauseBeeper() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.beeper != nil && r.beeping {
		r.beeper.Pause()
		r.beeping = false
	}
}

// reportHalt logs a halt once per program run.
func (r *Runner) reportHalt() {
	if r.haltReported || !r.interp.Halted() {
		return
	}
	r.haltReported = true
	r.logger.Error("Program halted", log.String("reason", r.interp.HaltMessage()))
}

// Package pipeline orchestrates the interpreter workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/flags"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// Window shows a running program until it is closed.
type Window interface {
	Run() error
}

// Host creates the platform specific front-end parts.
type Host interface {
	// NewBeeper opens the audio device.
	NewBeeper() (runner.Beeper, io.Closer, error)
	// NewWindow creates a window for the runner. The window has to close
	// when the context gets cancelled.
	NewWindow(ctx context.Context, r *runner.Runner, program []byte, opts options.Program, variant quirks.Variant) (Window, error)
}

// Pipeline orchestrates the complete interpreter workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	host     Host
}

// New creates a new interpreter pipeline. Without a host only headless
// runs are supported.
func New(logger *log.Logger, host Host) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		host:     host,
	}
}

// Execute runs the complete interpreter pipeline, the output of headless
// runs is written to the writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	variant := p.detector.Detect(opts)

	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disasm {
		if err := disasm.Listing(writer, rom); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
		return nil
	}

	interp, err := p.createInterpreter(opts, variant)
	if err != nil {
		return fmt.Errorf("creating interpreter: %w", err)
	}

	p.printInfo(opts, interp)

	if opts.Headless || p.host == nil {
		return p.runHeadless(ctx, opts, interp, rom, writer)
	}
	return p.runWindowed(ctx, opts, interp, rom, variant)
}

// createInterpreter creates the interpreter for the variant and options.
func (p *Pipeline) createInterpreter(opts options.Program, variant quirks.Variant) (*interpreter.Interpreter, error) {
	var store interpreter.FlagStore = flags.NewMemoryStore()
	if opts.FlagsFile != "" {
		store = flags.NewFileStore(opts.FlagsFile)
	}

	interpOptions := []interpreter.Option{
		interpreter.WithLogger(p.logger),
		interpreter.WithFlagStore(store),
		interpreter.WithCyclesPerFrame(opts.Speed),
	}
	if opts.Quirks != "" {
		q, err := quirks.Preset(opts.Quirks)
		if err != nil {
			return nil, fmt.Errorf("selecting quirks: %w", err)
		}
		interpOptions = append(interpOptions, interpreter.WithQuirks(q))
	}

	interp := interpreter.New(variant, interpOptions...)
	interp.SetSoundEnabled(opts.Sound)
	if opts.Clear {
		if err := interp.ClearPersistentFlags(); err != nil {
			return nil, err
		}
	}
	return interp, nil
}

// runHeadless executes the given number of frames as fast as possible and
// prints the final display and state.
func (p *Pipeline) runHeadless(ctx context.Context, opts options.Program, interp *interpreter.Interpreter,
	rom []byte, writer io.Writer) error {

	r := runner.New(p.logger, interp, runner.WithTrace(opts.Trace))
	if err := r.Load(rom); err != nil {
		return fmt.Errorf("starting program: %w", err)
	}

	for range opts.Frames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
		if !interp.Running() {
			break
		}
		r.StepFrame()
	}

	var err error
	r.Do(func(c *interpreter.Interpreter) {
		err = p.writeResult(opts, c, writer)
	})
	return err
}

func (p *Pipeline) writeResult(opts options.Program, c *interpreter.Interpreter, writer io.Writer) error {
	if err := terminal.Clear(writer); err != nil {
		return err
	}
	if err := terminal.Render(writer, c.Display()); err != nil {
		return err
	}
	if err := terminal.WriteState(writer, c); err != nil {
		return err
	}

	if opts.Screenshot != "" {
		if err := p.writeScreenshot(opts, c); err != nil {
			return err
		}
	}
	if err := c.StorageError(); err != nil {
		p.logger.Warn("Persistent flags were not stored", log.Err(err))
	}
	return nil
}

// writeScreenshot writes the display as PNG file.
func (p *Pipeline) writeScreenshot(opts options.Program, c *interpreter.Interpreter) error {
	file, err := os.Create(opts.Screenshot)
	if err != nil {
		return fmt.Errorf("creating screenshot file: %w", err)
	}

	img := c.Display().Render(opts.Foreground, opts.Background, opts.Scale)
	if err := png.Encode(file, img); err != nil {
		_ = file.Close()
		return fmt.Errorf("encoding screenshot: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing screenshot file: %w", err)
	}

	p.logger.Info("Screenshot written", log.String("file", opts.Screenshot))
	return nil
}

// runWindowed runs the program at the frame rate in a background goroutine
// while the window runs on the calling goroutine.
func (p *Pipeline) runWindowed(ctx context.Context, opts options.Program, interp *interpreter.Interpreter,
	rom []byte, variant quirks.Variant) error {

	runnerOptions := []runner.Option{runner.WithTrace(opts.Trace)}
	if opts.Sound {
		beeper, closer, err := p.host.NewBeeper()
		if err != nil {
			p.logger.Warn("Sound is not available", log.Err(err))
		} else {
			defer func() { _ = closer.Close() }()
			runnerOptions = append(runnerOptions, runner.WithBeeper(beeper))
		}
	}

	r := runner.New(p.logger, interp, runnerOptions...)
	if err := r.Load(rom); err != nil {
		return fmt.Errorf("starting program: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(groupCtx)
	defer cancel()

	window, err := p.host.NewWindow(runCtx, r, rom, opts, variant)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}

	group.Go(func() error {
		return r.Run(runCtx)
	})

	windowErr := window.Run()
	cancel()
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running program: %w", err)
	}
	if windowErr != nil {
		return fmt.Errorf("running window: %w", windowErr)
	}

	// the interpreter can be swapped by the window
	r.Do(func(c *interpreter.Interpreter) {
		if err := c.StorageError(); err != nil {
			p.logger.Warn("Persistent flags were not stored", log.Err(err))
		}
	})
	return nil
}

// printInfo prints information about the ROM being run.
func (p *Pipeline) printInfo(opts options.Program, interp *interpreter.Interpreter) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Stringer("variant", interp.Variant()),
		log.Stringer("quirks", interp.Quirks()),
		log.Int("speed", interp.CyclesPerFrame()),
	)
}

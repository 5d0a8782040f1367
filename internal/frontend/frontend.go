//go:build !headless

// Package frontend implements the windowed front-end using ebiten.
package frontend

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// speedStep is the change of the cycles per frame of the speed hotkeys.
const speedStep = 50

// Config contains the window settings.
type Config struct {
	Title      string // the variant is appended
	Scale      int
	Foreground color.Color
	Background color.Color
}

// Game implements ebiten.Game for a runner.
//
// Hotkeys: Escape quits, P pauses, F5 restarts the program, F6 steps a frame
// and F7 steps a cycle while paused. F1 selects the next quirks preset, F2
// restarts the program with the next variant, F3 clears the persistent flags
// and + and - change the speed.
type Game struct {
	ctx      context.Context
	logger   *log.Logger
	runner   *runner.Runner
	program  []byte
	config   Config
	setTitle func(string)
}

// New returns a front-end for the runner. The program is used for restarts.
func New(ctx context.Context, logger *log.Logger, r *runner.Runner, program []byte, config Config) *Game {
	config.Scale = max(config.Scale, 1)
	if config.Foreground == nil {
		config.Foreground = color.White
	}
	if config.Background == nil {
		config.Background = color.Black
	}

	return &Game{
		ctx:      ctx,
		logger:   logger,
		runner:   r,
		program:  program,
		config:   config,
		setTitle: ebiten.SetWindowTitle,
	}
}

// Run opens the window and blocks until it is closed or the context is
// cancelled. It has to be called from the main goroutine.
func (g *Game) Run() error {
	width, height := g.Layout(0, 0)
	ebiten.SetWindowSize(width, height)
	g.setTitle(g.title())
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update handles the keyboard input.
func (g *Game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if err := g.handleHotkeys(inpututil.IsKeyJustPressed); err != nil {
		return err
	}

	keys := keypadState(ebiten.IsKeyPressed)
	key, released := releasedKey(inpututil.IsKeyJustReleased)
	g.runner.Do(func(c *interpreter.Interpreter) {
		c.SetKeys(keys)
		if released && c.WaitingForKey() {
			c.SaveAwaitedKey(key)
		}
	})
	return nil
}

// handleHotkeys executes the action of the first just pressed hotkey.
func (g *Game) handleHotkeys(justPressed func(ebiten.Key) bool) error {
	switch {
	case justPressed(ebiten.KeyF5):
		if err := g.runner.Load(g.program); err != nil {
			return fmt.Errorf("restarting program: %w", err)
		}
		g.logger.Info("Program restarted")

	case justPressed(ebiten.KeyP):
		g.runner.Do(func(c *interpreter.Interpreter) {
			if c.Running() {
				c.Stop()
			} else if !c.Halted() {
				c.Start()
			}
		})

	case justPressed(ebiten.KeyF6):
		if !g.running() {
			g.runner.StepFrame()
		}

	case justPressed(ebiten.KeyF7):
		if !g.running() {
			g.runner.StepCycle()
		}

	case justPressed(ebiten.KeyF1):
		if _, err := g.runner.CycleQuirks(); err != nil {
			g.logger.Error("Changing quirks failed", log.Err(err))
		}

	case justPressed(ebiten.KeyF2):
		if _, err := g.runner.SwitchVariant(g.program); err != nil {
			g.logger.Error("Changing variant failed", log.Err(err))
			return nil
		}
		g.setTitle(g.title())

	case justPressed(ebiten.KeyF3):
		if err := g.runner.ClearPersistentFlags(); err != nil {
			g.logger.Error("Clearing persistent flags failed", log.Err(err))
		}

	case justPressed(ebiten.KeyEqual), justPressed(ebiten.KeyNumpadAdd):
		g.runner.AdjustSpeed(speedStep)

	case justPressed(ebiten.KeyMinus), justPressed(ebiten.KeyNumpadSubtract):
		g.runner.AdjustSpeed(-speedStep)
	}
	return nil
}

// title returns the window title for the current variant.
func (g *Game) title() string {
	var variant string
	g.runner.Do(func(c *interpreter.Interpreter) {
		variant = c.Variant().String()
	})
	if g.config.Title == "" {
		return variant
	}
	return g.config.Title + " - " + variant
}

// Draw draws the display scaled to the window size.
func (g *Game) Draw(screen *ebiten.Image) {
	var pixels []byte
	g.runner.Do(func(c *interpreter.Interpreter) {
		d := c.Display()
		scale := g.config.Scale * display.HighresWidth / d.Width()
		pixels = d.Render(g.config.Foreground, g.config.Background, scale).Pix
	})
	screen.WritePixels(pixels)
}

// Layout returns a fixed screen size that fits both resolutions.
func (g *Game) Layout(_, _ int) (int, int) {
	return display.HighresWidth * g.config.Scale, display.HighresHeight * g.config.Scale
}

func (g *Game) running() bool {
	var running bool
	g.runner.Do(func(c *interpreter.Interpreter) {
		running = c.Running()
	})
	return running
}

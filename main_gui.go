//go:build !headless

package main

import (
	"context"
	"io"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// guiHost opens ebiten windows and plays sound using oto.
type guiHost struct {
	logger *log.Logger
}

func newHost(logger *log.Logger) pipeline.Host {
	return &guiHost{logger: logger}
}

func (h *guiHost) NewBeeper() (runner.Beeper, io.Closer, error) {
	beeper, err := frontend.NewBeeper()
	if err != nil {
		return nil, nil, err
	}
	return beeper, beeper, nil
}

func (h *guiHost) NewWindow(ctx context.Context, r *runner.Runner, program []byte, opts options.Program,
	_ quirks.Variant) (pipeline.Window, error) {

	cfg := frontend.Config{
		Title:      "retrochip8",
		Scale:      opts.Scale,
		Foreground: opts.Foreground,
		Background: opts.Background,
	}
	return frontend.New(ctx, h.logger, r, program, cfg), nil
}

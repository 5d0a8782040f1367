// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/quirks"
)

const (
	defaultScale      = 8
	defaultFrames     = 600
	defaultForeground = "ffffff"
	defaultBackground = "000000"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	var foreground, background string
	readOptionFlags(flags, &opts)
	flags.StringVar(&foreground, "fg", defaultForeground, "color of set pixels as hex RGB value")
	flags.StringVar(&background, "bg", defaultBackground, "color of cleared pixels as hex RGB value")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if len(args) > 0 {
		opts.Input = args[0]
	}

	if opts.Foreground, err = parseColor(foreground); err != nil {
		return opts, fmt.Errorf("parsing foreground color: %w", err)
	}
	if opts.Background, err = parseColor(background); err != nil {
		return opts, fmt.Errorf("parsing background color: %w", err)
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.System = strings.ToLower(opts.System)
	if opts.System != "" {
		if _, err := quirks.ParseVariant(opts.System); err != nil {
			return fmt.Errorf("%w. Valid options: chip8, schip, xochip", err)
		}
	}

	opts.Quirks = strings.ToLower(opts.Quirks)
	if opts.Quirks != "" {
		if _, err := quirks.Preset(opts.Quirks); err != nil {
			return fmt.Errorf("%w. Valid options: %s", err, strings.Join(quirks.PresetNames(), ", "))
		}
	}

	opts.Speed = max(opts.Speed, 1)
	opts.Frames = max(opts.Frames, 1)
	opts.Scale = max(opts.Scale, 1)
	return nil
}

// parseColor parses a color given as RGB hex value like ff8000 or #f80.
func parseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color '%s'", s)
	}

	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color '%s': %w", s, err)
	}
	return color.RGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 0xff,
	}, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.FlagsFile, "flags", "", "file to keep the SUPER-CHIP persistent flags in, kept in memory if not set")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "name of a PNG file to write the display to after a headless run")
	flags.StringVar(&opts.System, "s", "", "interpreter variant (chip8, schip, xochip) - if not auto-detected from file extension")
	flags.StringVar(&opts.Quirks, "quirks", "", "quirks preset (vip, octo, schip) to use instead of the variant default")
	flags.IntVar(&opts.Speed, "speed", interpreter.DefaultCyclesPerFrame, "number of instructions executed per frame")
	flags.IntVar(&opts.Scale, "scale", defaultScale, "window scale factor")
	flags.IntVar(&opts.Frames, "frames", defaultFrames, "number of frames to run in headless mode")
	flags.BoolVar(&opts.Headless, "headless", false, "run without a window and print the display to the console")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly of the ROM instead of running it")
	flags.BoolVar(&opts.Sound, "sound", false, "play a tone while the sound timer is active")
	flags.BoolVar(&opts.Clear, "clearflags", false, "clear the persistent flags before running the ROM")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, enables debug logging")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

// Package options contains the program options.
package options

import "image/color"

// Parameters contains file path options.
type Parameters struct {
	Input      string `flag:"i" usage:"input ROM file"`
	FlagsFile  string `flag:"flags" usage:"file to keep the SUPER-CHIP persistent flags in"`
	Screenshot string `flag:"screenshot" usage:"PNG file to write the display to after a headless run"`
}

// Flags contains behavior options.
type Flags struct {
	System   string `flag:"s" usage:"interpreter variant: chip8, schip, xochip (default: auto-detect)"`
	Quirks   string `flag:"quirks" usage:"quirks preset: vip, octo, schip (default: variant preset)"`
	Speed    int    `flag:"speed" usage:"instructions executed per frame" default:"500"`
	Headless bool   `flag:"headless" usage:"run without a window and print the display"`
	Frames   int    `flag:"frames" usage:"number of frames of a headless run" default:"600"`
	Disasm   bool   `flag:"disasm" usage:"print a disassembly of the ROM instead of running it"`
	Sound    bool   `flag:"sound" usage:"play a tone while the sound timer is active"`
	Clear    bool   `flag:"clearflags" usage:"clear the persistent flags before running"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction at debug level"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// Display contains window options.
type Display struct {
	Scale      int         `flag:"scale" usage:"window scale factor" default:"8"`
	Foreground color.Color `flag:"fg" usage:"color of set pixels as hex RGB" default:"ffffff"`
	Background color.Color `flag:"bg" usage:"color of cleared pixels as hex RGB" default:"000000"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Display
}

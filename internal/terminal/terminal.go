// Package terminal renders the interpreter display and state as text.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"golang.org/x/term"
)

// Half block characters, each text row shows two pixel rows.
const (
	blockEmpty  = " "
	blockUpper  = "▀"
	blockLower  = "▄"
	blockFull   = "█"
	clearScreen = "\x1b[H\x1b[2J"
)

// IsTerminal returns whether the writer is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Clear clears the screen if the writer is a terminal.
func Clear(w io.Writer) error {
	if !IsTerminal(w) {
		return nil
	}
	if _, err := io.WriteString(w, clearScreen); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}
	return nil
}

// Render writes the display as rows of half block characters.
func Render(w io.Writer, d *display.Display) error {
	buf := bufio.NewWriter(w)
	width, height := d.Width(), d.Height()

	for y := 0; y < height; y += 2 {
		for x := range width {
			upper := d.Pixel(x, y)
			lower := y+1 < height && d.Pixel(x, y+1)

			switch {
			case upper && lower:
				_, _ = buf.WriteString(blockFull)
			case upper:
				_, _ = buf.WriteString(blockUpper)
			case lower:
				_, _ = buf.WriteString(blockLower)
			default:
				_, _ = buf.WriteString(blockEmpty)
			}
		}
		_ = buf.WriteByte('\n')
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	return nil
}

// WriteState writes the registers, timers, stack, keys and the current
// instruction. The persistent flags are written for extended variants.
func WriteState(w io.Writer, c *interpreter.Interpreter) error {
	buf := bufio.NewWriter(w)

	opcode := c.CurrentOpcode()
	pattern, description := disasm.Explain(opcode, c.Quirks(), c.Variant())
	_, _ = fmt.Fprintf(buf, "PC: %04X  I: %04X  SP: %d  DT: %02X  ST: %02X\n",
		c.ProgramCounter(), c.Index(), c.StackPointer(), c.Delay(), c.Sound())
	_, _ = fmt.Fprintf(buf, "Opcode: %04X  %-16s %s: %s\n",
		opcode, disasm.Mnemonic(opcode), pattern, description)

	registers := c.Registers()
	for i, value := range registers {
		_, _ = fmt.Fprintf(buf, "V%X: %02X", i, value)
		if i%8 == 7 {
			_ = buf.WriteByte('\n')
		} else {
			_ = buf.WriteByte(' ')
		}
	}

	_, _ = buf.WriteString("Stack:")
	writeList(buf, int(c.StackPointer()), func(i int) string {
		return fmt.Sprintf("%04X", c.Stack(i))
	})

	keys := c.Keys()
	var pressed []int
	for key, down := range keys {
		if down {
			pressed = append(pressed, key)
		}
	}
	_, _ = buf.WriteString("Keys:")
	writeList(buf, len(pressed), func(i int) string {
		return fmt.Sprintf("%X", pressed[i])
	})

	if c.Variant().SupportsExtended() {
		flags := c.PersistentFlags()
		_, _ = buf.WriteString("Flags:")
		writeList(buf, len(flags), func(i int) string {
			return fmt.Sprintf("%02X", flags[i])
		})
	}

	switch {
	case c.Halted():
		_, _ = fmt.Fprintf(buf, "Halted: %s\n", c.HaltMessage())
	case c.WaitingForKey():
		_, _ = fmt.Fprintf(buf, "Waiting for key into V%X\n", c.KeyDestination())
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// writeList writes the items separated by spaces, or a dash if there are none.
func writeList(buf *bufio.Writer, count int, item func(i int) string) {
	if count == 0 {
		_, _ = buf.WriteString(" -")
	}
	for i := range count {
		_ = buf.WriteByte(' ')
		_, _ = buf.WriteString(item(i))
	}
	_ = buf.WriteByte('\n')
}

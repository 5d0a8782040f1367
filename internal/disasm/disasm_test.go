package disasm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrogolib/assert"
)

func TestExplain(t *testing.T) {
	vip := quirks.VIPChip()
	schip := quirks.SuperChip11Quirks()

	tests := []struct {
		name        string
		opcode      uint16
		quirks      quirks.Quirks
		variant     quirks.Variant
		pattern     string
		description string
	}{
		{"skip equal", 0x3124, vip, quirks.Chip8, "3xnn", "Skip if Vx == nn"},
		{"clear", 0x00E0, vip, quirks.Chip8, "00E0", "Clear screen"},
		{"machine code", 0x0123, vip, quirks.Chip8, "0nnn", "Machine code routine (not supported)"},
		{"highres on chip8", 0x00FF, vip, quirks.Chip8, "0nnn", "Machine code routine (not supported)"},
		{"highres", 0x00FF, schip, quirks.SuperChip11, "00FF", "Enable high resolution mode"},
		{"scroll left", 0x00FC, schip, quirks.SuperChip11, "00FC", "Scroll left by 4 pixels"},
		{"scroll down", 0x00C5, schip, quirks.XOChip, "00Cn", "Scroll down by n pixels"},
		{"or with reset", 0x8121, vip, quirks.Chip8, "8xy1", "Vx = Vx OR Vy (VF = 0)"},
		{"or", 0x8121, schip, quirks.SuperChip11, "8xy1", "Vx = Vx OR Vy"},
		{"shift from vy", 0x8126, vip, quirks.Chip8, "8xy6", "Vx = Vy >> 1 (VF = shifted bit)"},
		{"shift in place", 0x812E, schip, quirks.SuperChip11, "8xyE", "Vx = Vx << 1 (VF = shifted bit)"},
		{"unknown arithmetic", 0x8128, vip, quirks.Chip8, "????", "Illegal instruction"},
		{"unknown compare", 0x5121, vip, quirks.Chip8, "????", "Illegal instruction"},
		{"jump v0", 0xB123, vip, quirks.Chip8, "Bnnn", "Jump to nnn + V0"},
		{"jump vx", 0xB123, schip, quirks.SuperChip11, "Bxnn", "Jump to xnn + Vx"},
		{"small sprite", 0xD120, vip, quirks.Chip8, "Dxyn", "Draw 8xn sprite at (Vx, Vy)"},
		{"large sprite", 0xD120, schip, quirks.SuperChip11, "Dxy0", "Draw 16x16 sprite at (Vx, Vy)"},
		{"key up", 0xE1A1, vip, quirks.Chip8, "ExA1", "Skip if key Vx is up"},
		{"unknown key", 0xE1A2, vip, quirks.Chip8, "????", "Illegal instruction"},
		{"store incrementing", 0xF355, vip, quirks.Chip8, "Fx55", "Write V0 to Vx (I = I + x + 1)"},
		{"load", 0xF365, schip, quirks.SuperChip11, "Fx65", "Read V0 to Vx"},
		{"big font on chip8", 0xF130, vip, quirks.Chip8, "????", "Illegal instruction"},
		{"persistent flags", 0xF375, schip, quirks.SuperChip11, "Fx75", "Save V0 to Vx to persistent flags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, description := Explain(tt.opcode, tt.quirks, tt.variant)
			assert.Equal(t, tt.pattern, pattern)
			assert.Equal(t, tt.description, description)
		})
	}
}

func TestMnemonic(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected string
	}{
		{0x00E0, "cls"},
		{0x1234, "jp $234"},
		{0x2300, "call $300"},
		{0x3234, "se V2, $34"},
		{0xA234, "ld I, $234"},
		{0x00C4, "scd $4"},
		{0x00FB, "scr"},
		{0x00FC, "scl"},
		{0x00FD, "exit"},
		{0x00FE, "low"},
		{0x00FF, "high"},
		{0xF330, "ld HF, V3"},
		{0xF775, "ld R, V7"},
		{0xF285, "ld V2, R"},
		{0xE2FF, ".word $E2FF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Mnemonic(tt.opcode))
		})
	}
}

func TestFormatInstruction(t *testing.T) {
	tests := []struct {
		name      string
		instrName string
		opcode    uint16
		expected  string
	}{
		{"CLS instruction", "cls", 0x00E0, ""},
		{"RET instruction", "ret", 0x00EE, ""},
		{"JP instruction", "jp", 0x1234, "$234"},
		{"JP V0 instruction", "jp", 0xB234, "V0, $234"},
		{"CALL instruction", "call", 0x2234, "$234"},
		{"SE Vx, byte", "se", 0x3234, "V2, $34"},
		{"SE Vx, Vy", "se", 0x5230, "V2, V3"},
		{"SNE Vx, byte", "sne", 0x4234, "V2, $34"},
		{"SNE Vx, Vy", "sne", 0x9230, "V2, V3"},
		{"LD Vx, byte", "ld", 0x6234, "V2, $34"},
		{"LD Vx, Vy", "ld", 0x8230, "V2, V3"},
		{"LD I, addr", "ld", 0xA234, "I, $234"},
		{"LD Vx, DT", "ld", 0xF207, "V2, DT"},
		{"LD Vx, K", "ld", 0xF20A, "V2, K"},
		{"LD DT, Vx", "ld", 0xF215, "DT, V2"},
		{"LD ST, Vx", "ld", 0xF218, "ST, V2"},
		{"LD F, Vx", "ld", 0xF229, "F, V2"},
		{"LD B, Vx", "ld", 0xF233, "B, V2"},
		{"LD [I], Vx", "ld", 0xF255, "[I], V2"},
		{"LD Vx, [I]", "ld", 0xF265, "V2, [I]"},
		{"ADD Vx, byte", "add", 0x7234, "V2, $34"},
		{"ADD Vx, Vy", "add", 0x8234, "V2, V3"},
		{"ADD I, Vx", "add", 0xF21E, "I, V2"},
		{"OR Vx, Vy", "or", 0x8231, "V2, V3"},
		{"AND Vx, Vy", "and", 0x8232, "V2, V3"},
		{"XOR Vx, Vy", "xor", 0x8233, "V2, V3"},
		{"SUB Vx, Vy", "sub", 0x8235, "V2, V3"},
		{"SUBN Vx, Vy", "subn", 0x8237, "V2, V3"},
		{"SHR Vx", "shr", 0x8236, "V2"},
		{"SHL Vx", "shl", 0x823E, "V2"},
		{"RND Vx, byte", "rnd", 0xC234, "V2, $34"},
		{"DRW Vx, Vy, n", "drw", 0xD235, "V2, V3, $5"},
		{"SKP Vx", "skp", 0xE29E, "V2"},
		{"SKNP Vx", "sknp", 0xE2A1, "V2"},
		{"unknown instruction", "unknown", 0x0000, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatInstruction(tt.instrName, tt.opcode))
		})
	}
}

func TestListing(t *testing.T) {
	code := func(s string, address uint16, b1, b2 byte) string {
		return fmt.Sprintf("%-32s ; $%04X %02X %02X\n", "    "+s, address, b1, b2)
	}
	data := func(s string, address uint16) string {
		return fmt.Sprintf("%-32s ; $%04X\n", "    "+s, address)
	}

	t.Run("follow control flow", func(t *testing.T) {
		program := []byte{
			0x60, 0x00, // ld V0, $00
			0xA2, 0x0C, // ld I, $20C
			0x22, 0x0A, // call $20A
			0x30, 0x01, // se V0, $01
			0x12, 0x06, // jp $206
			0x00, 0xEE, // ret
			0xFF, 0x81, // sprite data
		}

		expected := ".org $200\n\n" +
			"Start:\n" +
			code("ld V0, $00", 0x200, 0x60, 0x00) +
			code("ld I, $20C", 0x202, 0xA2, 0x0C) +
			code("call $20A", 0x204, 0x22, 0x0A) +
			"_label_0206:\n" +
			code("se V0, $01", 0x206, 0x30, 0x01) +
			code("jp $206", 0x208, 0x12, 0x06) +
			"_func_020a:\n" +
			code("ret", 0x20A, 0x00, 0xEE) +
			"_data_020c:\n" +
			data(".byte $FF, $81", 0x20C)

		var buf bytes.Buffer
		assert.NoError(t, Listing(&buf, program))
		assert.Equal(t, expected, buf.String())
	})

	t.Run("indirect jump ends the flow", func(t *testing.T) {
		program := []byte{0xB2, 0x04, 0x12, 0x34, 0x01}

		expected := ".org $200\n\n" +
			"Start:\n" +
			code("jp V0, $204", 0x200, 0xB2, 0x04) +
			data(".byte $12, $34, $01", 0x202)

		var buf bytes.Buffer
		assert.NoError(t, Listing(&buf, program))
		assert.Equal(t, expected, buf.String())
	})

	t.Run("machine code routine is data", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NoError(t, Listing(&buf, []byte{0x01, 0x23}))
		assert.Equal(t, ".org $200\n\nStart:\n"+data(".byte $01, $23", 0x200), buf.String())
	})
	t.Run("jump into an instruction", func(t *testing.T) {
		program := []byte{
			0x60, 0x12, // ld V0, $12
			0x12, 0x01, // jp $201
		}

		expected := ".org $200\n\n" +
			"Start:\n" +
			code("ld V0, $12", 0x200, 0x60, 0x12) +
			"_label_0201 = $0201\n" +
			code("jp $201", 0x202, 0x12, 0x01)

		var buf bytes.Buffer
		assert.NoError(t, Listing(&buf, program))
		assert.Equal(t, expected, buf.String())
	})

	t.Run("jump before an instruction", func(t *testing.T) {
		program := []byte{
			0x22, 0x05, // call $205
			0x12, 0x04, // jp $204
			0x60,       // would overlap the routine
			0x00, 0xEE, // ret
		}

		expected := ".org $200\n\n" +
			"Start:\n" +
			code("call $205", 0x200, 0x22, 0x05) +
			code("jp $204", 0x202, 0x12, 0x04) +
			"_label_0204:\n" +
			data(".byte $60", 0x204) +
			"_func_0205:\n" +
			code("ret", 0x205, 0x00, 0xEE)

		var buf bytes.Buffer
		assert.NoError(t, Listing(&buf, program))
		assert.Equal(t, expected, buf.String())
	})
}

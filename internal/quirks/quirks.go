// Package quirks contains the behavior switches that select between the
// historically divergent interpretations of CHIP-8 opcodes, and the supported
// interpreter variants.
package quirks

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPreset is returned for an unsupported quirks preset name.
var ErrUnknownPreset = errors.New("unknown quirks preset")

// Preset names.
const (
	PresetVIP   = "vip"
	PresetOcto  = "octo"
	PresetSCHIP = "schip"
)

// Quirks is the set of implementation quirks of an interpreter. It is a value
// type and gets replaced as a whole.
type Quirks struct {
	// BitwiseResetVF makes 8xy1, 8xy2 and 8xy3 set VF to 0.
	BitwiseResetVF bool
	// DirectShifting makes 8xy6 and 8xyE shift Vx in place instead of
	// shifting Vy into Vx.
	DirectShifting bool
	// SaveLoadIncrement selects the SUPER-CHIP 1.1 behavior of Fx55 and Fx65
	// which leaves I unchanged. If not set, I is advanced by x+1 like on the
	// COSMAC VIP.
	SaveLoadIncrement bool
	// JumpToX makes Bxnn jump to xnn + Vx instead of nnn + V0.
	JumpToX bool
	// WaitForVBlank makes Dxyn wait for the display to be ready for drawing,
	// which happens once per frame.
	WaitForVBlank bool
	// EdgeClipping clips sprites at the display edges instead of wrapping
	// them around.
	EdgeClipping bool
	// LowresScroll halves the scroll distance in low resolution mode.
	LowresScroll bool
}

// VIPChip returns the quirks of the original CHIP-8 interpreter on the COSMAC VIP.
func VIPChip() Quirks {
	return Quirks{
		BitwiseResetVF:    true,
		DirectShifting:    false,
		SaveLoadIncrement: false,
		JumpToX:           false,
		WaitForVBlank:     true,
		EdgeClipping:      true,
	}
}

// OctoChip returns the default quirks of the Octo emulator, which are also
// used for XO-CHIP.
func OctoChip() Quirks {
	return Quirks{
		BitwiseResetVF:    false,
		DirectShifting:    false,
		SaveLoadIncrement: false,
		JumpToX:           false,
		WaitForVBlank:     false,
		EdgeClipping:      false,
	}
}

// SuperChip11Quirks returns the quirks of the SUPER-CHIP 1.1.
func SuperChip11Quirks() Quirks {
	return Quirks{
		BitwiseResetVF:    false,
		DirectShifting:    true,
		SaveLoadIncrement: true,
		JumpToX:           true,
		WaitForVBlank:     false,
		EdgeClipping:      true,
	}
}

// Preset returns the quirks preset with the given name.
func Preset(name string) (Quirks, error) {
	switch strings.ToLower(name) {
	case PresetVIP:
		return VIPChip(), nil
	case PresetOcto:
		return OctoChip(), nil
	case PresetSCHIP:
		return SuperChip11Quirks(), nil
	default:
		return Quirks{}, fmt.Errorf("%w '%s', valid options: %s",
			ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
}

// PresetNames returns the names of all presets.
func PresetNames() []string {
	return []string{PresetVIP, PresetOcto, PresetSCHIP}
}

// String returns a compact representation of the enabled quirks.
func (q Quirks) String() string {
	var enabled []string
	flags := []struct {
		set  bool
		name string
	}{
		{q.BitwiseResetVF, "vf-reset"},
		{q.DirectShifting, "direct-shift"},
		{q.SaveLoadIncrement, "save-load-index"},
		{q.JumpToX, "jump-x"},
		{q.WaitForVBlank, "vblank"},
		{q.EdgeClipping, "clip"},
		{q.LowresScroll, "lowres-scroll"},
	}
	for _, f := range flags {
		if f.set {
			enabled = append(enabled, f.name)
		}
	}
	if len(enabled) == 0 {
		return "none"
	}
	return strings.Join(enabled, ",")
}

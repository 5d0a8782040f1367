package quirks

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariant is returned for an unsupported variant name.
var ErrUnknownVariant = errors.New("unknown variant")

// Variant determines the interpreter feature tier.
type Variant int

// Supported variants.
const (
	Chip8       Variant = iota // CHIP-8
	SuperChip11                // SUPER-CHIP 1.1
	XOChip                     // XO-CHIP, only the SUPER-CHIP feature set is implemented
)

var variantNames = map[Variant]string{
	Chip8:       "chip8",
	SuperChip11: "schip",
	XOChip:      "xochip",
}

// SupportsExtended returns whether the variant supports the features
// introduced by the SUPER-CHIP.
func (v Variant) SupportsExtended() bool {
	switch v {
	case SuperChip11, XOChip:
		return true
	default:
		return false
	}
}

// DefaultQuirks returns the quirks preset matching the variant.
func (v Variant) DefaultQuirks() Quirks {
	switch v {
	case SuperChip11:
		return SuperChip11Quirks()
	case XOChip:
		return OctoChip()
	default:
		return VIPChip()
	}
}

// String returns the name of the variant.
func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant returns the variant for the given name.
func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(name)
	switch name {
	case "chip8", "chip-8":
		return Chip8, nil
	case "schip", "superchip", "super-chip":
		return SuperChip11, nil
	case "xochip", "xo-chip":
		return XOChip, nil
	default:
		return Chip8, fmt.Errorf("%w '%s', valid options: chip8, schip, xochip", ErrUnknownVariant, name)
	}
}

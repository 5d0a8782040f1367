// Package detector handles interpreter variant detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles variant detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new variant detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the interpreter variant from options or file auto-detection.
// It first checks if a variant is explicitly specified in options, otherwise
// attempts to detect the variant from the input filename extension.
func (d *Detector) Detect(opts options.Program) quirks.Variant {
	if opts.System != "" {
		variant, err := quirks.ParseVariant(opts.System)
		if err == nil {
			return variant
		}
		d.logger.Warn("Ignoring unsupported variant", log.String("variant", opts.System))
	}

	variant := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected variant",
		log.Stringer("variant", variant),
		log.String("file", opts.Input))
	return variant
}

// detectFromFile determines the variant based on file extension.
func (d *Detector) detectFromFile(filename string) quirks.Variant {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".sc8":
		return quirks.SuperChip11
	case ".xo8":
		return quirks.XOChip
	default:
		// .ch8 and unknown extensions like .rom are run as CHIP-8
		return quirks.Chip8
	}
}

package runner

import (
	"fmt"
	"slices"

	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrogolib/log"
)

// variantOrder is the order in which SwitchVariant cycles through the variants.
var variantOrder = []quirks.Variant{quirks.Chip8, quirks.SuperChip11, quirks.XOChip}

// CycleQuirks replaces the quirks with the next preset and returns its name.
// Quirks that match no preset are replaced by the first preset.
func (r *Runner) CycleQuirks() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := quirks.PresetNames()
	next := 0
	for i, name := range names {
		q, err := quirks.Preset(name)
		if err != nil {
			return "", fmt.Errorf("selecting quirks: %w", err)
		}
		if q == r.interp.Quirks() {
			next = (i + 1) % len(names)
			break
		}
	}

	q, err := quirks.Preset(names[next])
	if err != nil {
		return "", fmt.Errorf("selecting quirks: %w", err)
	}
	r.interp.SetQuirks(q)
	r.logger.Info("Quirks changed", log.String("preset", names[next]), log.Stringer("quirks", q))
	return names[next], nil
}

// AdjustSpeed changes the number of cycles per frame by delta and returns
// the new speed. The speed does not drop below one cycle per frame.
func (r *Runner) AdjustSpeed(delta int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.interp.SetCyclesPerFrame(r.interp.CyclesPerFrame() + delta)
	speed := r.interp.CyclesPerFrame()
	r.logger.Info("Speed changed", log.Int("speed", speed))
	return speed
}

// ClearPersistentFlags zeroes the persistent flags of the interpreter and
// its flag store.
func (r *Runner) ClearPersistentFlags() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.interp.ClearPersistentFlags(); err != nil {
		return fmt.Errorf("clearing flags: %w", err)
	}
	r.logger.Info("Persistent flags cleared")
	return nil
}

// SwitchVariant replaces the interpreter by one of the next variant, loads
// the program and starts it. The current interpreter is kept on failure.
func (r *Runner) SwitchVariant(program []byte) (quirks.Variant, error) {
	r.mu.Lock()
	current := r.interp.Variant()
	variant := variantOrder[(slices.Index(variantOrder, current)+1)%len(variantOrder)]
	next := r.interp.Derive(variant)
	r.mu.Unlock()

	if err := next.LoadProgram(program); err != nil {
		return current, fmt.Errorf("loading program into interpreter: %w", err)
	}
	next.Start()

	r.Swap(next)
	r.logger.Info("Variant changed", log.Stringer("variant", variant))
	return variant, nil
}

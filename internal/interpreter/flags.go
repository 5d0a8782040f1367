package interpreter

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// PersistentFlagCount is the number of persistent flag bytes of the SUPER-CHIP.
const PersistentFlagCount = 8

// FlagStore persists the flags written by Fx75 across program runs.
// Load returns zeroed flags if nothing was stored yet.
type FlagStore interface {
	Load() ([PersistentFlagCount]byte, error)
	Save(flags [PersistentFlagCount]byte) error
}

// savePersistentFlags handles Fx75.
func (c *Interpreter) savePersistentFlags(ins Instruction) bool {
	if !c.variant.SupportsExtended() {
		c.unsupported(ins)
		return false
	}
	if ins.X >= PersistentFlagCount {
		c.halt(ins, fmt.Sprintf("persistent flag V%X out of range", ins.X))
		return false
	}

	copy(c.persistentFlags[:ins.X+1], c.v[:ins.X+1])
	if c.flagStore != nil {
		if err := c.flagStore.Save(c.persistentFlags); err != nil {
			c.storageFailure("saving", err)
		}
	}
	return true
}

// loadPersistentFlags handles Fx85. If the store can not be read the
// in-memory copy of the flags is used.
func (c *Interpreter) loadPersistentFlags(ins Instruction) bool {
	if !c.variant.SupportsExtended() {
		c.unsupported(ins)
		return false
	}
	if ins.X >= PersistentFlagCount {
		c.halt(ins, fmt.Sprintf("persistent flag V%X out of range", ins.X))
		return false
	}

	if c.flagStore != nil {
		flags, err := c.flagStore.Load()
		if err != nil {
			c.storageFailure("loading", err)
		} else {
			c.persistentFlags = flags
		}
	}
	copy(c.v[:ins.X+1], c.persistentFlags[:ins.X+1])
	return true
}

// ClearPersistentFlags zeroes the persistent flags and writes them to the store.
func (c *Interpreter) ClearPersistentFlags() error {
	c.persistentFlags = [PersistentFlagCount]byte{}
	if c.flagStore == nil {
		return nil
	}
	if err := c.flagStore.Save(c.persistentFlags); err != nil {
		return fmt.Errorf("clearing persistent flags: %w", err)
	}
	return nil
}

// StorageError returns the last persistent flag storage failure that
// happened while executing instructions, or nil.
func (c *Interpreter) StorageError() error {
	return c.storageErr
}

func (c *Interpreter) loadInitialFlags() {
	if c.flagStore == nil || !c.variant.SupportsExtended() {
		return
	}
	flags, err := c.flagStore.Load()
	if err != nil {
		c.storageFailure("loading", err)
		return
	}
	c.persistentFlags = flags
}

func (c *Interpreter) storageFailure(operation string, err error) {
	c.storageErr = fmt.Errorf("%s persistent flags: %w", operation, err)
	if c.logger != nil {
		c.logger.Warn("Persistent flag storage failed", log.Err(c.storageErr))
	}
}

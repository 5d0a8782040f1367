//go:build headless

package main

import (
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

// newHost returns no host, programs are always run headless.
func newHost(_ *log.Logger) pipeline.Host {
	return nil
}

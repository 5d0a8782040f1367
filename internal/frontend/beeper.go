//go:build !headless

package frontend

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate    = 44100
	toneFrequency = 440
	toneVolume    = 0.05
	bytesPerFloat = 4
)

// Beeper plays a square wave tone through the audio device.
type Beeper struct {
	mu      sync.Mutex
	ctx     *oto.Context
	player  *oto.Player
	playing bool
}

// NewBeeper opens the audio device. The tone is paused initially.
func NewBeeper() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	return &Beeper{
		ctx:    ctx,
		player: ctx.NewPlayer(newSquareWave(sampleRate, toneFrequency, toneVolume)),
	}, nil
}

// Play starts the tone.
func (b *Beeper) Play() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.playing {
		b.player.Play()
		b.playing = true
	}
}

// Pause stops the tone.
func (b *Beeper) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.playing {
		b.player.Pause()
		b.playing = false
	}
}

// Close releases the audio player.
func (b *Beeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.playing = false
	if err := b.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}

// squareWave is an endless mono square wave in 32 bit float samples.
type squareWave struct {
	period    int
	amplitude float32
	position  int
	pending   []byte
}

func newSquareWave(rate, frequency int, volume float32) *squareWave {
	return &squareWave{
		period:    max(rate/frequency, 2),
		amplitude: volume,
	}
}

// Read fills p with samples, it never returns an error.
func (w *squareWave) Read(p []byte) (int, error) {
	n := copy(p, w.pending)
	w.pending = w.pending[n:]

	var sample [bytesPerFloat]byte
	for n < len(p) {
		value := w.amplitude
		if w.position >= w.period/2 {
			value = -value
		}
		w.position = (w.position + 1) % w.period

		binary.LittleEndian.PutUint32(sample[:], math.Float32bits(value))
		copied := copy(p[n:], sample[:])
		if copied < bytesPerFloat {
			w.pending = append(w.pending[:0], sample[copied:]...)
		}
		n += copied
	}
	return n, nil
}

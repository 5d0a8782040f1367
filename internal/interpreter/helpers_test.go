package interpreter

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

var errStoreFailed = errors.New("store failed")

// mockFlagStore is an in-memory flag store that can be set up to fail.
type mockFlagStore struct {
	flags     [PersistentFlagCount]byte
	loads     int
	saves     int
	failLoad  bool
	failSave  bool
	lastSaved [PersistentFlagCount]byte
}

func (m *mockFlagStore) Load() ([PersistentFlagCount]byte, error) {
	m.loads++
	if m.failLoad {
		return [PersistentFlagCount]byte{}, errStoreFailed
	}
	return m.flags, nil
}

func (m *mockFlagStore) Save(flags [PersistentFlagCount]byte) error {
	m.saves++
	if m.failSave {
		return errStoreFailed
	}
	m.flags = flags
	m.lastSaved = flags
	return nil
}

// program encodes opcodes as big-endian program bytes.
func program(opcodes ...uint16) []byte {
	data := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		data = append(data, byte(op>>8), byte(op))
	}
	return data
}

// load loads the opcodes as program into the interpreter.
func load(t *testing.T, c *Interpreter, opcodes ...uint16) *Interpreter {
	t.Helper()
	assert.NoError(t, c.LoadProgram(program(opcodes...)))
	return c
}

func runCycles(c *Interpreter, cycles int) {
	for range cycles {
		c.ExecuteCycle()
	}
}

func seededRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

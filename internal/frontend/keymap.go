//go:build !headless

package frontend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/interpreter"
)

// keyMap maps the hex keypad keys 0-F to the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D      Q W E R
//	7 8 9 E  ->  A S D F
//	A 0 B F      Z X C V
var keyMap = [interpreter.KeyCount]ebiten.Key{
	ebiten.KeyX, // 0
	ebiten.Key1, // 1
	ebiten.Key2, // 2
	ebiten.Key3, // 3
	ebiten.KeyQ, // 4
	ebiten.KeyW, // 5
	ebiten.KeyE, // 6
	ebiten.KeyA, // 7
	ebiten.KeyS, // 8
	ebiten.KeyD, // 9
	ebiten.KeyZ, // A
	ebiten.KeyC, // B
	ebiten.Key4, // C
	ebiten.KeyR, // D
	ebiten.KeyF, // E
	ebiten.KeyV, // F
}

// keypadState returns the state of all keypad keys.
func keypadState(pressed func(ebiten.Key) bool) [interpreter.KeyCount]bool {
	var keys [interpreter.KeyCount]bool
	for i, key := range keyMap {
		keys[i] = pressed(key)
	}
	return keys
}

// releasedKey returns the lowest keypad key that was released.
func releasedKey(released func(ebiten.Key) bool) (byte, bool) {
	for i, key := range keyMap {
		if released(key) {
			return byte(i), true
		}
	}
	return 0, false
}

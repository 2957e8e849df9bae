// Package input contains the keypad capability queried by the CPU.
package input

import (
	"sync"
)

// NumKeys is the number of keys of the hexadecimal keypad.
const NumKeys = 16

// Input reports the state of the hexadecimal keypad.
type Input interface {
	// IsKeyPressed returns whether the key 0-15 is currently down.
	IsKeyPressed(key uint8) bool
	// PressedKey returns a key that is currently down, preferring the lowest key value.
	PressedKey() (uint8, bool)
}

// Keypad is a concurrency safe key state shared between a backend that
// receives key events and the CPU that queries it.
type Keypad struct {
	mu   sync.RWMutex
	keys [NumKeys]bool
}

// Press marks the key as down. Values outside of 0-15 are ignored.
func (k *Keypad) Press(key uint8) {
	k.set(key, true)
}

// Release marks the key as up. Values outside of 0-15 are ignored.
func (k *Keypad) Release(key uint8) {
	k.set(key, false)
}

// ReleaseAll marks all keys as up.
func (k *Keypad) ReleaseAll() {
	k.mu.Lock()
	k.keys = [NumKeys]bool{}
	k.mu.Unlock()
}

// Set replaces the complete key state.
func (k *Keypad) Set(keys [NumKeys]bool) {
	k.mu.Lock()
	k.keys = keys
	k.mu.Unlock()
}

// IsKeyPressed returns whether the key is down.
func (k *Keypad) IsKeyPressed(key uint8) bool {
	if key >= NumKeys {
		return false
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.keys[key]
}

// PressedKey returns the lowest key that is down.
func (k *Keypad) PressedKey() (uint8, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	for key, down := range k.keys {
		if down {
			return uint8(key), true
		}
	}
	return 0, false
}

func (k *Keypad) set(key uint8, down bool) {
	if key >= NumKeys {
		return
	}
	k.mu.Lock()
	k.keys[key] = down
	k.mu.Unlock()
}

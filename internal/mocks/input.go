package mocks

import (
	"github.com/retroenv/retrochip8/internal/input"
)

// Input is an input.Input with directly settable key state.
type Input struct {
	Keys    [input.NumKeys]bool
	Queries int
}

// Press marks the key as down.
func (i *Input) Press(key uint8) {
	i.Keys[key] = true
}

// Release marks the key as up.
func (i *Input) Release(key uint8) {
	i.Keys[key] = false
}

// IsKeyPressed returns whether the key is down.
func (i *Input) IsKeyPressed(key uint8) bool {
	i.Queries++
	return key < input.NumKeys && i.Keys[key]
}

// PressedKey returns the lowest key that is down.
func (i *Input) PressedKey() (uint8, bool) {
	i.Queries++
	for key, down := range i.Keys {
		if down {
			return uint8(key), true
		}
	}
	return 0, false
}

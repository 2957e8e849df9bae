package input

import (
	"sync"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad(t *testing.T) {
	var k Keypad

	_, ok := k.PressedKey()
	assert.False(t, ok)

	k.Press(0xB)
	k.Press(0x8)
	assert.True(t, k.IsKeyPressed(0xB))
	assert.False(t, k.IsKeyPressed(0x1))

	key, ok := k.PressedKey()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x8), key)

	k.Release(0x8)
	key, ok = k.PressedKey()
	assert.True(t, ok)
	assert.Equal(t, uint8(0xB), key)

	k.ReleaseAll()
	_, ok = k.PressedKey()
	assert.False(t, ok)
}

func TestKeypad_OutOfRange(t *testing.T) {
	var k Keypad
	k.Press(16)
	k.Press(0xFF)
	assert.False(t, k.IsKeyPressed(16))
	_, ok := k.PressedKey()
	assert.False(t, ok)
}

func TestKeypad_Concurrent(t *testing.T) {
	var k Keypad
	var wg sync.WaitGroup

	for i := range NumKeys {
		wg.Add(1)
		go func(key uint8) {
			defer wg.Done()
			k.Press(key)
			_ = k.IsKeyPressed(key)
		}(uint8(i))
	}
	wg.Wait()

	for i := range NumKeys {
		assert.True(t, k.IsKeyPressed(uint8(i)))
	}
	k.Set([NumKeys]bool{})
	_, ok := k.PressedKey()
	assert.False(t, ok)
}

func TestLookupRune(t *testing.T) {
	tests := []struct {
		r     rune
		key   uint8
		found bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'Q', 0x4, true},
		{'r', 0xD, true},
		{'s', 0x8, true},
		{'x', 0x0, true},
		{'z', 0xA, true},
		{'c', 0xB, true},
		{'v', 0xF, true},
		{'p', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			key, found := LookupRune(tt.r)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.key, key)
		})
	}
}

package terminal

import (
	"time"

	"github.com/retroenv/retrochip8/internal/input"
)

// holdTime is how long a key stays down after its last character was read.
// Terminals do not report key releases, auto repeat keeps held keys down.
const holdTime = 200 * time.Millisecond

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// keyboard translates characters read from the terminal to keypad state.
type keyboard struct {
	input.Keypad

	lastSeen [input.NumKeys]time.Time
}

// feed processes the characters of one read. It returns true if the user
// requested to quit.
func (k *keyboard) feed(data []byte, now time.Time) bool {
	for i := 0; i < len(data); i++ {
		b := data[i]
		switch b {
		case keyCtrlC:
			return true

		case keyEscape:
			if i == len(data)-1 {
				return true
			}
			// skip escape sequences such as cursor keys
			i = skipSequence(data, i)
			continue
		}

		key, ok := input.LookupRune(rune(b))
		if !ok {
			continue
		}
		k.lastSeen[key] = now
		k.Press(key)
	}
	return false
}

// expire releases all keys that were not seen within the hold time.
func (k *keyboard) expire(now time.Time) {
	for key, seen := range k.lastSeen {
		if seen.IsZero() || now.Sub(seen) < holdTime {
			continue
		}
		k.lastSeen[key] = time.Time{}
		k.Release(uint8(key))
	}
}

// skipSequence returns the index of the last byte of the escape sequence
// starting at index i.
func skipSequence(data []byte, i int) int {
	if i+1 >= len(data) || (data[i+1] != '[' && data[i+1] != 'O') {
		return i
	}
	for j := i + 2; j < len(data); j++ {
		if data[j] >= 0x40 && data[j] <= 0x7e {
			return j
		}
	}
	return len(data) - 1
}

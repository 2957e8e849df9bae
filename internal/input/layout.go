package input

import (
	"unicode"
)

// Layout maps the left hand block of a QWERTY keyboard to the keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var Layout = [NumKeys]rune{
	0x0: 'x',
	0x1: '1', 0x2: '2', 0x3: '3',
	0x4: 'q', 0x5: 'w', 0x6: 'e',
	0x7: 'a', 0x8: 's', 0x9: 'd',
	0xA: 'z', 0xB: 'c',
	0xC: '4', 0xD: 'r', 0xE: 'f', 0xF: 'v',
}

// LookupRune returns the keypad key for a keyboard character.
func LookupRune(r rune) (uint8, bool) {
	r = unicode.ToLower(r)
	for key, c := range Layout {
		if c == r {
			return uint8(key), true
		}
	}
	return 0, false
}

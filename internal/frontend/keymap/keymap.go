// Package keymap maps the left side of a QWERTY keyboard to the hexadecimal
// CHIP-8 keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
package keymap

import (
	"unicode"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// runes contains the keyboard rune for every CHIP-8 key, indexed by key.
var runes = [chip8.KeyCount]rune{
	0x0: 'x',
	0x1: '1', 0x2: '2', 0x3: '3',
	0x4: 'q', 0x5: 'w', 0x6: 'e',
	0x7: 'a', 0x8: 's', 0x9: 'd',
	0xA: 'z', 0xB: 'c',
	0xC: '4', 0xD: 'r', 0xE: 'f', 0xF: 'v',
}

var keys = func() map[rune]uint8 {
	m := make(map[rune]uint8, len(runes))
	for key, r := range runes {
		m[r] = uint8(key)
	}
	return m
}()

// Rune returns the lower case keyboard rune for a CHIP-8 key.
func Rune(key uint8) rune {
	return runes[key&0xF]
}

// Key returns the CHIP-8 key for a keyboard rune, upper and lower case
// letters map to the same key.
func Key(r rune) (uint8, bool) {
	key, ok := keys[unicode.ToLower(r)]
	return key, ok
}

package chip8

import "fmt"

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// Keypad holds the pressed state of the keys 0x0-0xF.
type Keypad [KeyCount]bool

// pressed returns whether a key is pressed, only the low nibble of the key
// value is used.
func (k *Keypad) pressed(key uint8) bool {
	return k[key&0xF]
}

// lowestPressed returns the lowest numbered pressed key.
func (k *Keypad) lowestPressed() (uint8, bool) {
	for key, pressed := range k {
		if pressed {
			return uint8(key), true
		}
	}
	return 0, false
}

// SetKey sets the pressed state of a single key.
func (m *Machine) SetKey(key uint8, pressed bool) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: %X", ErrInvalidKey, key)
	}
	m.keypad[key] = pressed
	return nil
}

// SetKeypad replaces the state of all keys.
func (m *Machine) SetKeypad(keypad Keypad) {
	m.keypad = keypad
}

// Keypad returns the current key states.
func (m *Machine) Keypad() Keypad {
	return m.keypad
}

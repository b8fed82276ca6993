// Package headless implements a frontend without any output device. It
// keeps the latest frame in memory, which makes it usable for batch runs,
// screenshots and tests.
package headless

import (
	"context"
	"sync"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Headless is a frontend that records presented frames.
type Headless struct {
	mu       sync.Mutex
	frame    chip8.Frame
	keypad   chip8.Keypad
	presents int
}

// New returns a new headless frontend.
func New() *Headless {
	return &Headless{}
}

// Run blocks until the context is cancelled.
func (h *Headless) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Present stores a copy of the frame.
func (h *Headless) Present(frame chip8.Frame) {
	h.mu.Lock()
	h.frame = frame
	h.presents++
	h.mu.Unlock()
}

// Keypad returns the keys set by SetKeypad.
func (h *Headless) Keypad() chip8.Keypad {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.keypad
}

// SetKeypad sets the keys that are reported as pressed.
func (h *Headless) SetKeypad(keypad chip8.Keypad) {
	h.mu.Lock()
	h.keypad = keypad
	h.mu.Unlock()
}

// Frame returns the last presented frame.
func (h *Headless) Frame() chip8.Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frame
}

// Presents returns the number of presented frames.
func (h *Headless) Presents() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presents
}

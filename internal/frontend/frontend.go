// Package frontend defines the interface between the execution loop and
// the user facing output and input implementations.
package frontend

import (
	"context"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// IO is the part of a frontend that the runner talks to. Implementations
// must be safe for concurrent use since the runner calls them from its own
// goroutine.
type IO interface {
	// Present publishes a new display frame.
	Present(frame chip8.Frame)
	// Keypad returns a snapshot of the currently pressed keys.
	Keypad() chip8.Keypad
}

// Frontend is a complete frontend that also owns an event loop.
type Frontend interface {
	IO

	// Run blocks until the user closes the frontend or the context is
	// cancelled. Closing by the user returns ErrClosed.
	Run(ctx context.Context) error
}

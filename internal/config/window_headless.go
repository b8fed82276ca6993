//go:build headless

package config

import (
	"errors"

	"github.com/retroenv/retrochip8/internal/frontend"
)

// WindowSupport reports whether the binary was built with window support.
const WindowSupport = false

// ErrWindowUnsupported is returned when the window frontend is requested
// in a binary built with the headless tag.
var ErrWindowUnsupported = errors.New("window frontend is not supported by this build")

func createWindow(_ int) (frontend.Frontend, error) {
	return nil, ErrWindowUnsupported
}

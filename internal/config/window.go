//go:build !headless

package config

import (
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/window"
)

// WindowSupport reports whether the binary was built with window support.
const WindowSupport = true

func createWindow(scale int) (frontend.Frontend, error) {
	return window.New(scale), nil
}

// Package terminal implements a frontend that renders the display with
// unicode block characters and reads keys from a raw mode terminal.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/keymap"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	// terminals only report key presses, a key counts as held for this
	// long after its last press or auto repeat.
	holdTime = 150 * time.Millisecond

	refreshPeriod  = time.Second / 60
	readerShutdown = 100 * time.Millisecond

	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

// ErrNotTerminal is returned when the input is not a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

// Terminal is a frontend for text terminals.
type Terminal struct {
	logger *log.Logger
	in     *os.File
	out    io.Writer
	now    func() time.Time

	mu       sync.Mutex
	frame    chip8.Frame
	dirty    bool
	released [chip8.KeyCount]time.Time // time at which a pressed key counts as released
}

// New returns a terminal frontend using stdin and stdout.
func New(logger *log.Logger) *Terminal {
	return &Terminal{
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
		now:    time.Now,
		dirty:  true,
	}
}

// Run switches the terminal to raw mode and renders frames until the
// context is cancelled or the user presses Escape or Ctrl+C.
func (t *Terminal) Run(ctx context.Context) error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	input := make(chan byte, 64)
	readCtx, cancel := context.WithCancel(ctx)
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		if err := readInput(readCtx, t.in, input); err != nil {
			t.logger.Error("Reading terminal input failed", log.Err(err))
		}
	}()
	defer func() {
		cancel()
		select {
		case <-readerDone:
		case <-time.After(readerShutdown):
		}
	}()

	if _, err := io.WriteString(t.out, clearScreen+hideCursor); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	defer func() { _, _ = io.WriteString(t.out, showCursor+"\r\n") }()

	ticker := time.NewTicker(refreshPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case b := <-input:
			if t.handleInput(b) {
				return frontend.ErrClosed
			}

		case <-ticker.C:
			if err := t.draw(); err != nil {
				return err
			}
		}
	}
}

// handleInput processes a single input byte and returns whether the user
// requested to quit.
func (t *Terminal) handleInput(b byte) bool {
	if b == keyCtrlC || b == keyEscape {
		return true
	}

	key, ok := keymap.Key(rune(b))
	if !ok {
		return false
	}

	t.mu.Lock()
	t.released[key] = t.now().Add(holdTime)
	t.mu.Unlock()
	return false
}

// draw renders the latest frame if it changed since the last call.
func (t *Terminal) draw() error {
	t.mu.Lock()
	frame, dirty := t.frame, t.dirty
	t.dirty = false
	t.mu.Unlock()

	if !dirty {
		return nil
	}
	if _, err := io.WriteString(t.out, render(frame)); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// Present stores the frame for the next refresh.
func (t *Terminal) Present(frame chip8.Frame) {
	t.mu.Lock()
	t.frame = frame
	t.dirty = true
	t.mu.Unlock()
}

// Keypad returns the keys that were pressed within the hold time.
func (t *Terminal) Keypad() chip8.Keypad {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	var keys chip8.Keypad
	for key, released := range t.released {
		keys[key] = now.Before(released)
	}
	return keys
}

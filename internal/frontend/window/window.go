//go:build !headless

// Package window implements a desktop window frontend using ebiten.
package window

import (
	"context"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/keymap"
	"golang.org/x/image/colornames"
)

const title = "retrochip8"

// physicalKeys maps the keymap runes to ebiten keys.
var physicalKeys = map[rune]ebiten.Key{
	'1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2, '3': ebiten.KeyDigit3, '4': ebiten.KeyDigit4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}

// Window is an ebiten based frontend.
type Window struct {
	scale int
	keys  [chip8.KeyCount]ebiten.Key
	ctx   context.Context

	mu          sync.Mutex
	frameBuffer []byte // RGBA pixels of the display
	keypad      chip8.Keypad
	closed      bool

	image *ebiten.Image
}

// New returns a new window frontend that scales every display pixel by
// the given factor.
func New(scale int) *Window {
	w := &Window{
		scale:       scale,
		frameBuffer: make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4),
	}
	for key := range uint8(chip8.KeyCount) {
		w.keys[key] = physicalKeys[keymap.Rune(key)]
	}
	w.fill(chip8.Frame{})
	return w
}

// Run opens the window and blocks until it is closed or the context is
// cancelled.
func (w *Window) Run(ctx context.Context) error {
	w.ctx = ctx

	ebiten.SetWindowSize(chip8.DisplayWidth*w.scale, chip8.DisplayHeight*w.scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}

	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return frontend.ErrClosed
	}
	return nil
}

// Update samples the keyboard state, it is called by ebiten every tick.
func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		return ebiten.Termination
	}

	var keypad chip8.Keypad
	for key, physical := range w.keys {
		keypad[key] = ebiten.IsKeyPressed(physical)
	}

	w.mu.Lock()
	w.keypad = keypad
	w.mu.Unlock()
	return nil
}

// Draw renders the last presented frame.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight)
	}

	w.mu.Lock()
	w.image.WritePixels(w.frameBuffer)
	w.mu.Unlock()
	screen.DrawImage(w.image, nil)
}

// Layout returns the logical screen size, ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth, chip8.DisplayHeight
}

// Present converts the frame to the pixel buffer shown by the next Draw.
func (w *Window) Present(frame chip8.Frame) {
	w.mu.Lock()
	w.fill(frame)
	w.mu.Unlock()
}

// Keypad returns the key state of the last ebiten tick.
func (w *Window) Keypad() chip8.Keypad {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.keypad
}

func (w *Window) fill(frame chip8.Frame) {
	for i, lit := range frame {
		c := colornames.Black
		if lit != 0 {
			c = colornames.White
		}
		offset := i * 4
		w.frameBuffer[offset] = c.R
		w.frameBuffer[offset+1] = c.G
		w.frameBuffer[offset+2] = c.B
		w.frameBuffer[offset+3] = c.A
	}
}

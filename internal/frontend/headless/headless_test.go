package headless

import (
	"context"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/assert"
)

var _ frontend.Frontend = (*Headless)(nil)

func TestPresent(t *testing.T) {
	h := New()
	assert.Equal(t, 0, h.Presents())

	var frame chip8.Frame
	frame[5] = 1
	h.Present(frame)
	frame[6] = 1

	assert.Equal(t, 1, h.Presents())
	assert.Equal(t, 1, h.Frame().Lit())
	assert.True(t, h.Frame().Pixel(5, 0))
}

func TestKeypad(t *testing.T) {
	h := New()
	var keys chip8.Keypad
	keys[0xA] = true
	h.SetKeypad(keys)
	assert.Equal(t, keys, h.Keypad())
}

func TestRunStopsOnCancel(t *testing.T) {
	h := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, h.Run(ctx))
}

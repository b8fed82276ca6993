package terminal

import (
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// ANSI escape sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// render returns the frame as text. Every character cell combines two
// display rows using half block characters. Lines end with CR LF as the
// terminal is in raw mode.
func render(frame chip8.Frame) string {
	var sb strings.Builder
	sb.Grow(len(cursorHome) + chip8.DisplayHeight/2*(chip8.DisplayWidth*3+2))
	sb.WriteString(cursorHome)

	for y := 0; y < chip8.DisplayHeight; y += 2 {
		for x := range chip8.DisplayWidth {
			top := frame.Pixel(x, y)
			bottom := frame.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}

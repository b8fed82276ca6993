package chip8

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Frame is a copy of the display. Each cell is 1 if the pixel is lit and 0
// otherwise, stored row by row.
type Frame [DisplayWidth * DisplayHeight]uint8

// Pixel returns whether the pixel at the given coordinates is lit.
// Coordinates wrap around the display edges.
func (f Frame) Pixel(x, y int) bool {
	return f[offset(x, y)] != 0
}

// Lit returns the number of lit pixels.
func (f Frame) Lit() int {
	var n int
	for _, p := range f {
		n += int(p)
	}
	return n
}

func (f *Frame) clear() {
	*f = Frame{}
}

// drawSprite XORs the sprite rows onto the frame. The start position is
// taken modulo the display size and every pixel wraps around the edges
// individually. It returns whether any lit pixel was turned off.
func (f *Frame) drawSprite(x, y uint8, sprite []byte) bool {
	startX := int(x) % DisplayWidth
	startY := int(y) % DisplayHeight
	collision := false

	for row, data := range sprite {
		for col := range 8 {
			if data&(0x80>>col) == 0 {
				continue
			}
			i := offset(startX+col, startY+row)
			if f[i] != 0 {
				collision = true
			}
			f[i] ^= 1
		}
	}
	return collision
}

func offset(x, y int) int {
	x %= DisplayWidth
	if x < 0 {
		x += DisplayWidth
	}
	y %= DisplayHeight
	if y < 0 {
		y += DisplayHeight
	}
	return y*DisplayWidth + x
}

// Frame returns a copy of the current display content.
func (m *Machine) Frame() Frame {
	return m.display
}

// ConsumeRedraw returns whether the display changed since the last call
// and resets the flag.
func (m *Machine) ConsumeRedraw() bool {
	redraw := m.redraw
	m.redraw = false
	return redraw
}

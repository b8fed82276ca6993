// Package screenshot saves CHIP-8 display frames as PNG images.
package screenshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
)

// Colors used for unlit and lit pixels.
var (
	Background = colornames.Black
	Foreground = colornames.White
)

// Image converts a frame to an image with each display pixel scaled to a
// square of scale by scale image pixels.
func Image(frame chip8.Frame, scale int) image.Image {
	palette := color.Palette{Background, Foreground}
	src := image.NewPaletted(image.Rect(0, 0, chip8.DisplayWidth, chip8.DisplayHeight), palette)
	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			if frame.Pixel(x, y) {
				src.SetColorIndex(x, y, 1)
			}
		}
	}
	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, chip8.DisplayWidth*scale, chip8.DisplayHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Write encodes the frame as PNG to the writer.
func Write(w io.Writer, frame chip8.Frame, scale int) error {
	if err := png.Encode(w, Image(frame, scale)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Save writes the frame as PNG file.
func Save(fileName string, frame chip8.Frame, scale int) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating screenshot file %s: %w", fileName, err)
	}

	if err := Write(file, frame, scale); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing screenshot file %s: %w", fileName, err)
	}
	return nil
}

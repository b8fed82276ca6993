//go:build !unix

package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// readInput forwards bytes read from the file to the channel until the
// context is cancelled. A pending blocking read only returns after the
// next key press.
func readInput(ctx context.Context, file *os.File, input chan<- byte) error {
	buf := make([]byte, 16)
	for {
		n, err := file.Read(buf)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		for _, b := range buf[:n] {
			select {
			case input <- b:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

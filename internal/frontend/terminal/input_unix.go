//go:build unix

package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

const pollInterval = 5 * time.Millisecond

// readInput forwards bytes read from the file to the channel until the
// context is cancelled. The file is switched to non-blocking mode so that
// the reader can notice the cancellation.
func readInput(ctx context.Context, file *os.File, input chan<- byte) error {
	fd := int(file.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("setting non-blocking input: %w", err)
	}
	defer func() { _ = unix.SetNonblock(fd, false) }()

	buf := make([]byte, 16)
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := unix.Read(fd, buf)
		if err != nil && !errors.Is(err, unix.EAGAIN) && !errors.Is(err, unix.EINTR) {
			return fmt.Errorf("reading input: %w", err)
		}
		if n == 0 && err == nil {
			return nil // end of input
		}
		if n <= 0 {
			time.Sleep(pollInterval)
			continue
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

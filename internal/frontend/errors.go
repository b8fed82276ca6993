package frontend

import "errors"

// ErrClosed is returned by Frontend.Run when the user closed the frontend.
var ErrClosed = errors.New("frontend closed")

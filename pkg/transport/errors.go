package transport

import "errors"

// Transport errors.
var (
	// ErrClosed indicates the transport has been closed.
	ErrClosed = errors.New("transport closed")

	// ErrFrameTooLarge indicates a frame exceeds the maximum size.
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrFrameEmpty indicates an empty frame.
	ErrFrameEmpty = errors.New("frame is empty")
)

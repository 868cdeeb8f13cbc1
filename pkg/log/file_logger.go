package log

import (
	"io"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger writes capture events as a CBOR stream.
// It is safe for concurrent use from multiple goroutines.
type FileLogger struct {
	w       io.Writer
	closer  io.Closer
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
	dropped int
}

// NewFileLogger creates a FileLogger that appends to the file at path,
// creating it with permissions 0644 if needed.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l := NewStreamLogger(f)
	l.closer = f
	return l, nil
}

// NewStreamLogger creates a FileLogger that writes to w. Close does not
// close w.
func NewStreamLogger(w io.Writer) *FileLogger {
	return &FileLogger{
		w:       w,
		encoder: NewEncoder(w),
	}
}

// Log encodes an event. Encoding failures are counted, not returned,
// so capture never disrupts a download.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if err := l.encoder.Encode(event); err != nil {
		l.dropped++
	}
}

// Dropped returns how many events failed to encode.
func (l *FileLogger) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Close closes the underlying file. It is safe to call Close multiple
// times; subsequent Log calls are ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)

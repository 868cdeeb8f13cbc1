package transport

import (
	"time"

	"github.com/divelink/divelink-go/pkg/status"
)

// Transport is the byte link between the host and a dive computer.
// Implementations are not safe for concurrent use; a transport is driven by
// one device session at a time.
type Transport interface {
	// Read reads up to len(p) bytes. It returns a status.Timeout error when
	// no data arrives within the configured timeout.
	Read(p []byte) (int, error)

	// Write writes all of p or returns an error.
	Write(p []byte) (int, error)

	// SetTimeout sets the read timeout. See the package documentation.
	SetTimeout(d time.Duration) error

	// Close releases the link.
	Close() error
}

// Direction selects which buffers Purge discards.
type Direction uint8

const (
	// DirectionInput discards received but unread bytes.
	DirectionInput Direction = 1 << iota
	// DirectionOutput discards written but untransmitted bytes.
	DirectionOutput
	// DirectionAll discards both.
	DirectionAll = DirectionInput | DirectionOutput
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "INPUT"
	case DirectionOutput:
		return "OUTPUT"
	case DirectionAll:
		return "ALL"
	default:
		return "UNKNOWN"
	}
}

// Purger is implemented by transports that can discard buffered bytes.
type Purger interface {
	Purge(dir Direction) error
}

// Controller is implemented by transports that accept out-of-band control
// requests (modem lines, break, baud changes).
type Controller interface {
	// Ioctl performs request with data as argument. It returns the number
	// of result bytes written back into data.
	Ioctl(request uint32, data []byte) (int, error)
}

// Named is implemented by transports that know their endpoint name.
type Named interface {
	Name() string
}

// Ioctl requests understood by the serial transport.
const (
	// IoctlSetDTR sets DTR from data[0] (0 clears, anything else sets).
	IoctlSetDTR uint32 = 0x5401
	// IoctlSetRTS sets RTS from data[0].
	IoctlSetRTS uint32 = 0x5402
	// IoctlBreak holds a break for data[0] * 10 ms.
	IoctlBreak uint32 = 0x5403
	// IoctlSetBaud switches the baud rate to the big-endian uint32 in data[0:4].
	IoctlSetBaud uint32 = 0x5404
)

// Purge discards buffered bytes when t supports it and is a no-op otherwise.
func Purge(t Transport, dir Direction) error {
	if p, ok := t.(Purger); ok {
		return p.Purge(dir)
	}
	return nil
}

// Ioctl forwards request to t, or fails with status.Unsupported.
func Ioctl(t Transport, request uint32, data []byte) (int, error) {
	if c, ok := t.(Controller); ok {
		return c.Ioctl(request, data)
	}
	return 0, status.Errorf("transport.ioctl", status.Unsupported, "request 0x%04x", request)
}

// Name returns the endpoint name of t, or "" when unknown.
func Name(t Transport) string {
	if n, ok := t.(Named); ok {
		return n.Name()
	}
	return ""
}

// ReadFull reads exactly len(p) bytes from t. A Read that makes no
// progress fails with status.Timeout; a partial frame keeps the bytes
// already read in p.
func ReadFull(t Transport, p []byte) (int, error) {
	n := 0
	for n < len(p) {
		m, err := t.Read(p[n:])
		n += m
		if err != nil {
			return n, err
		}
		if m == 0 {
			return n, status.Errorf("transport.read", status.Timeout, "%d of %d bytes", n, len(p))
		}
	}
	return n, nil
}

// WriteAll writes p to t, failing with status.IO on a short write.
func WriteAll(t Transport, p []byte) error {
	n, err := t.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return status.Errorf("transport.write", status.IO, "short write: %d of %d bytes", n, len(p))
	}
	return nil
}

package transport

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/divelink/divelink-go/pkg/status"
)

// DefaultDialTimeout bounds DialTCP when the context has no deadline.
const DefaultDialTimeout = 5 * time.Second

// TCP is a Transport over a TCP connection to a serial-over-network bridge.
type TCP struct {
	conn    net.Conn
	addr    string
	timeout time.Duration
	closed  bool
}

// DialTCP connects to the bridge at addr (host:port).
func DialTCP(ctx context.Context, addr string) (*TCP, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultDialTimeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		s := status.Of(err)
		if s != status.Timeout {
			s = status.IO
		}
		return nil, status.Wrap("transport.dial", s, err)
	}
	return NewTCP(conn, addr), nil
}

// NewTCP wraps an established connection. name is reported by Name.
func NewTCP(conn net.Conn, name string) *TCP {
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}
	return &TCP{conn: conn, addr: name, timeout: -1}
}

// Name returns the bridge address.
func (t *TCP) Name() string {
	return t.addr
}

// Read reads from the connection within the configured timeout.
func (t *TCP) Read(p []byte) (int, error) {
	if t.closed {
		return 0, status.Wrap("transport.read", status.IO, ErrClosed)
	}
	var deadline time.Time
	if t.timeout >= 0 {
		deadline = time.Now().Add(t.timeout)
	}
	if err := t.conn.SetReadDeadline(deadline); err != nil {
		return 0, status.Wrap("transport.read", status.IO, err)
	}
	n, err := t.conn.Read(p)
	if err != nil {
		if n > 0 {
			return n, nil
		}
		return 0, classify("transport.read", err)
	}
	return n, nil
}

// Write writes p to the connection.
func (t *TCP) Write(p []byte) (int, error) {
	if t.closed {
		return 0, status.Wrap("transport.write", status.IO, ErrClosed)
	}
	n, err := t.conn.Write(p)
	if err != nil {
		return n, classify("transport.write", err)
	}
	return n, nil
}

// SetTimeout sets the read timeout.
func (t *TCP) SetTimeout(d time.Duration) error {
	t.timeout = d
	return nil
}

// Purge discards unread input by draining the socket without blocking.
func (t *TCP) Purge(dir Direction) error {
	if dir&DirectionInput == 0 {
		return nil
	}
	buf := make([]byte, 512)
	for {
		if err := t.conn.SetReadDeadline(time.Now()); err != nil {
			return status.Wrap("transport.purge", status.IO, err)
		}
		n, err := t.conn.Read(buf)
		if n == 0 || err != nil {
			return nil
		}
	}
}

// Close closes the connection. It is safe to call Close multiple times.
func (t *TCP) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	if err := t.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return status.Wrap("transport.close", status.IO, err)
	}
	return nil
}

func classify(op string, err error) error {
	if status.Of(err) == status.Timeout {
		return status.Wrap(op, status.Timeout, err)
	}
	return status.Wrap(op, status.IO, err)
}

// Compile-time interface satisfaction checks.
var (
	_ Transport = (*TCP)(nil)
	_ Purger    = (*TCP)(nil)
	_ Named     = (*TCP)(nil)
)

package transport

import (
	"bytes"
	"time"

	"github.com/divelink/divelink-go/pkg/status"
)

// bufTransport serves reads from in and collects writes in out.
// chunk limits how many bytes a single Read returns (0 = unlimited).
type bufTransport struct {
	in      bytes.Buffer
	out     bytes.Buffer
	chunk   int
	timeout time.Duration
	closed  bool
}

func (b *bufTransport) Read(p []byte) (int, error) {
	if b.in.Len() == 0 {
		return 0, status.New("test.read", status.Timeout)
	}
	if b.chunk > 0 && len(p) > b.chunk {
		p = p[:b.chunk]
	}
	return b.in.Read(p)
}

func (b *bufTransport) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *bufTransport) SetTimeout(d time.Duration) error {
	b.timeout = d
	return nil
}

func (b *bufTransport) Close() error {
	b.closed = true
	return nil
}

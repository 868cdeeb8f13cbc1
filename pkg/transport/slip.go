package transport

import (
	"fmt"
	"sync"

	"github.com/divelink/divelink-go/pkg/status"
)

// SLIP special characters (RFC 1055).
const (
	SLIPEnd    = 0xC0
	SLIPEsc    = 0xDB
	SLIPEscEnd = 0xDC
	SLIPEscEsc = 0xDD
)

// DefaultMaxFrameSize bounds decoded SLIP frames.
const DefaultMaxFrameSize = 1024

// FrameReadWriter provides framed I/O over a Transport.
// Implemented by SLIPFramer.
type FrameReadWriter interface {
	// ReadFrame reads one frame.
	ReadFrame() ([]byte, error)

	// WriteFrame writes one frame.
	WriteFrame(data []byte) error
}

// EncodeSLIP appends the SLIP encoding of p, terminated by END, to dst.
func EncodeSLIP(dst, p []byte) []byte {
	for _, b := range p {
		switch b {
		case SLIPEnd:
			dst = append(dst, SLIPEsc, SLIPEscEnd)
		case SLIPEsc:
			dst = append(dst, SLIPEsc, SLIPEscEsc)
		default:
			dst = append(dst, b)
		}
	}
	return append(dst, SLIPEnd)
}

// SLIPWriter writes SLIP frames to a Transport.
type SLIPWriter struct {
	t            Transport
	maxFrameSize int
	mu           sync.Mutex
}

// NewSLIPWriter creates a SLIP frame writer.
func NewSLIPWriter(t Transport) *SLIPWriter {
	return &SLIPWriter{t: t, maxFrameSize: DefaultMaxFrameSize}
}

// WriteFrame encodes data and writes it in a single transport write.
func (fw *SLIPWriter) WriteFrame(data []byte) error {
	if len(data) == 0 {
		return status.Wrap("slip.write", status.InvalidArgs, ErrFrameEmpty)
	}
	if len(data) > fw.maxFrameSize {
		return status.Wrap("slip.write", status.InvalidArgs,
			fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, len(data), fw.maxFrameSize))
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	return WriteAll(fw.t, EncodeSLIP(make([]byte, 0, 2*len(data)+1), data))
}

// SLIPReader reads SLIP frames from a Transport.
type SLIPReader struct {
	t            Transport
	maxFrameSize int
	buf          [256]byte
	r, w         int
}

// NewSLIPReader creates a SLIP frame reader.
func NewSLIPReader(t Transport) *SLIPReader {
	return &SLIPReader{t: t, maxFrameSize: DefaultMaxFrameSize}
}

func (fr *SLIPReader) readByte() (byte, error) {
	if fr.r == fr.w {
		n, err := fr.t.Read(fr.buf[:])
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, status.New("slip.read", status.Timeout)
		}
		fr.r, fr.w = 0, n
	}
	b := fr.buf[fr.r]
	fr.r++
	return b, nil
}

// ReadFrame reads and decodes the next non-empty frame. Leading END bytes
// are skipped. An unknown escape sequence keeps the escaped byte as is.
func (fr *SLIPReader) ReadFrame() ([]byte, error) {
	var frame []byte
	escaped := false
	for {
		b, err := fr.readByte()
		if err != nil {
			return nil, err
		}

		switch {
		case b == SLIPEnd:
			if len(frame) == 0 {
				escaped = false
				continue
			}
			return frame, nil
		case b == SLIPEsc && !escaped:
			escaped = true
			continue
		case escaped:
			escaped = false
			switch b {
			case SLIPEscEnd:
				b = SLIPEnd
			case SLIPEscEsc:
				b = SLIPEsc
			}
		}

		if len(frame) >= fr.maxFrameSize {
			return nil, status.Wrap("slip.read", status.Protocol,
				fmt.Errorf("%w: > %d", ErrFrameTooLarge, fr.maxFrameSize))
		}
		frame = append(frame, b)
	}
}

// Reset discards buffered bytes, e.g. after a protocol error.
func (fr *SLIPReader) Reset() {
	fr.r, fr.w = 0, 0
}

// SLIPFramer combines SLIP frame reading and writing.
type SLIPFramer struct {
	*SLIPReader
	*SLIPWriter
}

// NewSLIPFramer creates a SLIP framer over t.
func NewSLIPFramer(t Transport) *SLIPFramer {
	return &SLIPFramer{
		SLIPReader: NewSLIPReader(t),
		SLIPWriter: NewSLIPWriter(t),
	}
}

// NewSLIPFramerWithMaxSize creates a SLIP framer with a custom frame limit.
func NewSLIPFramerWithMaxSize(t Transport, maxSize int) *SLIPFramer {
	f := NewSLIPFramer(t)
	f.SLIPReader.maxFrameSize = maxSize
	f.SLIPWriter.maxFrameSize = maxSize
	return f
}

// Compile-time interface satisfaction check.
var _ FrameReadWriter = (*SLIPFramer)(nil)

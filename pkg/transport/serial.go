package transport

import (
	"encoding/binary"
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/divelink/divelink-go/pkg/status"
)

// Parity selects the serial parity mode.
type Parity uint8

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
	ParityMark
	ParitySpace
)

// StopBits selects the number of serial stop bits.
type StopBits uint8

const (
	StopBitsOne StopBits = iota
	StopBitsOnePointFive
	StopBitsTwo
)

// SerialConfig configures a serial line.
type SerialConfig struct {
	// BaudRate in bits per second. Default: 9600.
	BaudRate int

	// DataBits per character. Default: 8.
	DataBits int

	Parity   Parity
	StopBits StopBits

	// Timeout is the initial read timeout. Default: 3 seconds.
	Timeout time.Duration

	// DTR and RTS set the modem lines right after opening. Some
	// interface cables draw power from them.
	DTR *bool
	RTS *bool
}

// DefaultSerialConfig returns 9600 8N1 with a 3 second timeout.
func DefaultSerialConfig() SerialConfig {
	return SerialConfig{
		BaudRate: 9600,
		DataBits: 8,
		Parity:   ParityNone,
		StopBits: StopBitsOne,
		Timeout:  3 * time.Second,
	}
}

func (c SerialConfig) mode() *serial.Mode {
	m := &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
	}
	if m.BaudRate == 0 {
		m.BaudRate = 9600
	}
	if m.DataBits == 0 {
		m.DataBits = 8
	}
	switch c.Parity {
	case ParityOdd:
		m.Parity = serial.OddParity
	case ParityEven:
		m.Parity = serial.EvenParity
	case ParityMark:
		m.Parity = serial.MarkParity
	case ParitySpace:
		m.Parity = serial.SpaceParity
	default:
		m.Parity = serial.NoParity
	}
	switch c.StopBits {
	case StopBitsOnePointFive:
		m.StopBits = serial.OnePointFiveStopBits
	case StopBitsTwo:
		m.StopBits = serial.TwoStopBits
	default:
		m.StopBits = serial.OneStopBit
	}
	return m
}

// Serial is a Transport over a local serial port.
type Serial struct {
	path   string
	port   serial.Port
	mode   *serial.Mode
	closed bool
}

// OpenSerial opens the serial port at path.
func OpenSerial(path string, cfg SerialConfig) (*Serial, error) {
	const op = "transport.open"

	mode := cfg.mode()
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, status.Wrap(op, status.IO, fmt.Errorf("%s: %w", path, err))
	}

	s := &Serial{path: path, port: port, mode: mode}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultSerialConfig().Timeout
	}
	if err := s.SetTimeout(timeout); err != nil {
		port.Close()
		return nil, err
	}
	if cfg.DTR != nil {
		if err := port.SetDTR(*cfg.DTR); err != nil {
			port.Close()
			return nil, status.Wrap(op, status.IO, err)
		}
	}
	if cfg.RTS != nil {
		if err := port.SetRTS(*cfg.RTS); err != nil {
			port.Close()
			return nil, status.Wrap(op, status.IO, err)
		}
	}
	return s, nil
}

// Name returns the port path.
func (s *Serial) Name() string {
	return s.path
}

// Read reads from the port. The driver reports an expired timeout as a
// zero-length read, which is surfaced as status.Timeout.
func (s *Serial) Read(p []byte) (int, error) {
	if s.closed {
		return 0, status.Wrap("transport.read", status.IO, ErrClosed)
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := s.port.Read(p)
	if err != nil {
		return n, status.Wrap("transport.read", status.IO, err)
	}
	if n == 0 {
		return 0, status.New("transport.read", status.Timeout)
	}
	return n, nil
}

// Write writes p to the port and waits until it has been transmitted.
func (s *Serial) Write(p []byte) (int, error) {
	if s.closed {
		return 0, status.Wrap("transport.write", status.IO, ErrClosed)
	}
	n, err := s.port.Write(p)
	if err != nil {
		return n, status.Wrap("transport.write", status.IO, err)
	}
	if err := s.port.Drain(); err != nil {
		return n, status.Wrap("transport.write", status.IO, err)
	}
	return n, nil
}

// SetTimeout sets the read timeout.
func (s *Serial) SetTimeout(d time.Duration) error {
	t := d
	switch {
	case d < 0:
		t = serial.NoTimeout
	case d == 0:
		// Shortest wait the driver supports.
		t = time.Millisecond
	}
	if err := s.port.SetReadTimeout(t); err != nil {
		return status.Wrap("transport.timeout", status.IO, err)
	}
	return nil
}

// Purge discards buffered bytes.
func (s *Serial) Purge(dir Direction) error {
	if dir&DirectionInput != 0 {
		if err := s.port.ResetInputBuffer(); err != nil {
			return status.Wrap("transport.purge", status.IO, err)
		}
	}
	if dir&DirectionOutput != 0 {
		if err := s.port.ResetOutputBuffer(); err != nil {
			return status.Wrap("transport.purge", status.IO, err)
		}
	}
	return nil
}

// Ioctl handles the Ioctl* requests defined in this package.
func (s *Serial) Ioctl(request uint32, data []byte) (int, error) {
	const op = "transport.ioctl"
	var err error
	switch request {
	case IoctlSetDTR, IoctlSetRTS, IoctlBreak:
		if len(data) < 1 {
			return 0, status.New(op, status.InvalidArgs)
		}
		switch request {
		case IoctlSetDTR:
			err = s.port.SetDTR(data[0] != 0)
		case IoctlSetRTS:
			err = s.port.SetRTS(data[0] != 0)
		default:
			err = s.port.Break(time.Duration(data[0]) * 10 * time.Millisecond)
		}
	case IoctlSetBaud:
		if len(data) < 4 {
			return 0, status.New(op, status.InvalidArgs)
		}
		mode := *s.mode
		mode.BaudRate = int(binary.BigEndian.Uint32(data))
		if err = s.port.SetMode(&mode); err == nil {
			s.mode = &mode
		}
	default:
		return 0, status.Errorf(op, status.Unsupported, "request 0x%04x", request)
	}
	if err != nil {
		return 0, status.Wrap(op, status.IO, err)
	}
	return 0, nil
}

// Close closes the port. It is safe to call Close multiple times.
func (s *Serial) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.port.Close(); err != nil {
		return status.Wrap("transport.close", status.IO, err)
	}
	return nil
}

// SerialPorts lists the serial ports present on the host.
func SerialPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, status.Wrap("transport.ports", status.IO, err)
	}
	return ports, nil
}

// Compile-time interface satisfaction checks.
var (
	_ Transport  = (*Serial)(nil)
	_ Purger     = (*Serial)(nil)
	_ Controller = (*Serial)(nil)
	_ Named      = (*Serial)(nil)
)

package device

import (
	"github.com/divelink/divelink-go/pkg/status"
)

// Backend implements the protocol of one dive computer family.
//
// Methods receive the calling Session, which carries the transport and all
// per-contact state. Implementations must start with Check(s, Type()).
type Backend interface {
	// Type returns the family the backend implements.
	Type() Type

	// Handshake identifies the device and copies the identification bytes
	// into p. It fails with status.Memory when p is too small.
	Handshake(s *Session, p []byte) (int, error)

	// Version copies the versioned identification (firmware) into p.
	Version(s *Session, p []byte) (int, error)

	// Read reads len(p) bytes of device memory starting at address.
	Read(s *Session, address uint32, p []byte) error

	// Write writes p to device memory starting at address.
	Write(s *Session, address uint32, p []byte) error

	// Dump copies the complete device memory into p and returns its size.
	// It fails with status.Memory when the memory does not fit.
	Dump(s *Session, p []byte) (int, error)

	// Foreach calls fn once per stored dive, newest first.
	Foreach(s *Session, fn DiveFunc) error
}

// Unimplemented can be embedded by backends that support only part of the
// contract. Every method fails with status.Unsupported.
type Unimplemented struct{}

func (Unimplemented) Handshake(*Session, []byte) (int, error) {
	return 0, status.New("device.handshake", status.Unsupported)
}

func (Unimplemented) Version(*Session, []byte) (int, error) {
	return 0, status.New("device.version", status.Unsupported)
}

func (Unimplemented) Read(*Session, uint32, []byte) error {
	return status.New("device.read", status.Unsupported)
}

func (Unimplemented) Write(*Session, uint32, []byte) error {
	return status.New("device.write", status.Unsupported)
}

func (Unimplemented) Dump(*Session, []byte) (int, error) {
	return 0, status.New("device.dump", status.Unsupported)
}

func (Unimplemented) Foreach(*Session, DiveFunc) error {
	return status.New("device.foreach", status.Unsupported)
}

// Check is the dispatch guard run by every backend operation.
func Check(s *Session, t Type) error {
	if s == nil || s.backend == nil {
		return status.New("device.check", status.InvalidArgs)
	}
	if s.backend.Type() != t {
		return status.Errorf("device.check", status.TypeMismatch, "session is %s, backend is %s", s.backend.Type(), t)
	}
	return nil
}

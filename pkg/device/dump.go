package device

import (
	"github.com/divelink/divelink-go/pkg/status"
)

// DumpRead implements Dump for backends with address-based reads: it reads
// size bytes starting at address 0 in chunks of blockSize into p, emitting
// an EventProgress before the first chunk and after every chunk. p is only
// written once every chunk has been read.
func DumpRead(s *Session, p []byte, size, blockSize int, read func(address uint32, p []byte) error) (int, error) {
	const op = "device.dump"
	if size <= 0 || blockSize <= 0 {
		return 0, status.New(op, status.InvalidArgs)
	}
	if len(p) < size {
		return 0, status.Errorf(op, status.Memory, "buffer %d bytes, device memory %d bytes", len(p), size)
	}

	buf := make([]byte, size)
	s.Emit(Event{Kind: EventProgress, Current: 0, Maximum: uint32(size)})
	for offset := 0; offset < size; offset += blockSize {
		n := min(blockSize, size-offset)
		if err := read(uint32(offset), buf[offset:offset+n]); err != nil {
			return 0, err
		}
		s.Emit(Event{Kind: EventProgress, Current: uint32(offset + n), Maximum: uint32(size)})
	}
	return copy(p, buf), nil
}

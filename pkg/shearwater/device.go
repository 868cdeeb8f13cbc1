package shearwater

import (
	"strings"
	"time"

	"github.com/divelink/divelink-go/pkg/device"
	"github.com/divelink/divelink-go/pkg/log"
	"github.com/divelink/divelink-go/pkg/status"
)

// Device is the Predator protocol backend.
var Device device.Backend = predatorDevice{}

// Timeout is the read timeout set during Handshake.
const Timeout = 3 * time.Second

// dumpChunk is the size of one download transaction during Dump.
const dumpChunk = 0x2000

// FingerprintSize is the length of the dive fingerprint: the start time
// field of the header.
const FingerprintSize = 4

type predatorDevice struct{}

func (predatorDevice) Type() device.Type { return device.TypeShearwaterPredator }

// command runs one retried protocol exchange and logs it to the capture.
func command(s *device.Session, name string, opcode uint8, addr *uint32, length int, fn func(c *conn) error) error {
	start := time.Now()
	attempts := 0
	err := s.Retry(name, func(attempt int) error {
		attempts = attempt
		return fn(newConn(s.Transport()))
	})

	elapsed := time.Since(start)
	s.LogCommand(log.CommandEvent{
		Name:     name,
		Opcode:   &opcode,
		Address:  addr,
		Length:   length,
		Status:   status.Of(err).String(),
		Attempt:  attempts,
		Duration: &elapsed,
	})
	if err != nil {
		s.Logger().Debug("command failed", "command", name, "attempts", attempts, "error", err)
	}
	return err
}

func (predatorDevice) Handshake(s *device.Session, p []byte) (int, error) {
	if err := device.Check(s, device.TypeShearwaterPredator); err != nil {
		return 0, err
	}
	if err := s.Transport().SetTimeout(Timeout); err != nil {
		return 0, err
	}
	s.Emit(device.Event{Kind: device.EventWaiting})

	var serial []byte
	err := command(s, "handshake", sidReadByID, nil, 0, func(c *conn) error {
		var err error
		serial, err = c.readByID(idSerial)
		return err
	})
	if err != nil {
		return 0, err
	}
	if len(p) < len(serial) {
		return 0, status.Errorf("shearwater.handshake", status.Memory, "serial is %d bytes, buffer %d", len(serial), len(p))
	}

	info := s.Info()
	info.Model = "Predator"
	info.Serial = text(serial)
	s.SetInfo(info)
	s.Logger().Debug("device identified", "serial", info.Serial)
	return copy(p, serial), nil
}

func (predatorDevice) Version(s *device.Session, p []byte) (int, error) {
	if err := device.Check(s, device.TypeShearwaterPredator); err != nil {
		return 0, err
	}

	var firmware []byte
	err := command(s, "version", sidReadByID, nil, 0, func(c *conn) error {
		var err error
		firmware, err = c.readByID(idFirmware)
		return err
	})
	if err != nil {
		return 0, err
	}
	if len(p) < len(firmware) {
		return 0, status.Errorf("shearwater.version", status.Memory, "firmware is %d bytes, buffer %d", len(firmware), len(p))
	}

	info := s.Info()
	info.Firmware = text(firmware)
	s.SetInfo(info)
	return copy(p, firmware), nil
}

// Read reads logical memory; address zero is BaseAddress on the device.
func (predatorDevice) Read(s *device.Session, address uint32, p []byte) error {
	if err := device.Check(s, device.TypeShearwaterPredator); err != nil {
		return err
	}
	return read(s, address, p)
}

func read(s *device.Session, address uint32, p []byte) error {
	if uint64(address)+uint64(len(p)) > MemorySize {
		return status.Errorf("shearwater.read", status.InvalidArgs,
			"range 0x%X+%d exceeds memory", address, len(p))
	}

	// p stays untouched unless the whole transfer succeeds
	buf := make([]byte, len(p))
	err := command(s, "read", sidInitDownload, &address, len(p), func(c *conn) error {
		return c.download(BaseAddress+address, buf)
	})
	if err != nil {
		return err
	}
	copy(p, buf)
	return nil
}

// Write stores p under a data identifier. The Predator has no raw memory
// writes; address must fit in 16 bits.
func (predatorDevice) Write(s *device.Session, address uint32, p []byte) error {
	if err := device.Check(s, device.TypeShearwaterPredator); err != nil {
		return err
	}
	if address > 0xFFFF || len(p) > maxPayload-3 {
		return status.Errorf("shearwater.write", status.InvalidArgs,
			"identifier 0x%X with %d bytes", address, len(p))
	}
	return command(s, "write", sidWriteByID, &address, len(p), func(c *conn) error {
		return c.writeByID(uint16(address), p)
	})
}

func (predatorDevice) Dump(s *device.Session, p []byte) (int, error) {
	if err := device.Check(s, device.TypeShearwaterPredator); err != nil {
		return 0, err
	}
	return device.DumpRead(s, p, MemorySize, dumpChunk, func(address uint32, chunk []byte) error {
		return read(s, address, chunk)
	})
}

func (b predatorDevice) Foreach(s *device.Session, fn device.DiveFunc) error {
	if err := device.Check(s, device.TypeShearwaterPredator); err != nil {
		return err
	}

	memory := make([]byte, MemorySize)
	if _, err := b.Dump(s, memory); err != nil {
		return err
	}

	dives := ExtractDives(memory)
	s.Logger().Debug("dives located", "count", len(dives))
	for i := len(dives) - 1; i >= 0; i-- {
		dive := dives[i]
		fp := Fingerprint(dive)
		if s.FingerprintMatches(fp) {
			return nil
		}
		if !fn(dive, fp) {
			return nil
		}
	}
	return nil
}

// Fingerprint returns the fingerprint of a dive.
func Fingerprint(dive []byte) []byte {
	if len(dive) < offTicks+FingerprintSize {
		return nil
	}
	return append([]byte(nil), dive[offTicks:offTicks+FingerprintSize]...)
}

// ExtractDives locates the dives in a memory image, oldest first. A dive
// starts at a block with the header marker and ends with the first
// following block carrying the footer marker. Incomplete dives are
// ignored.
func ExtractDives(memory []byte) [][]byte {
	end := min(len(memory), ProfileSize)
	var dives [][]byte
	begin := -1
	for off := 0; off+BlockSize <= end; off += BlockSize {
		switch be16(memory, off) {
		case headerMarker:
			begin = off
		case footerMarker:
			if begin >= 0 {
				dives = append(dives, append([]byte(nil), memory[begin:off+BlockSize]...))
				begin = -1
			}
		}
	}
	return dives
}

func text(b []byte) string {
	return strings.TrimRight(string(b), "\x00 ")
}

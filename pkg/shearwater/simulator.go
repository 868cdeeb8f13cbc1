package shearwater

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/divelink/divelink-go/pkg/status"
	"github.com/divelink/divelink-go/pkg/transport"
)

// Negative response codes sent by the simulator.
const (
	nrcServiceNotSupported = 0x11
	nrcSequenceError       = 0x24
	nrcOutOfRange          = 0x31
	nrcWrongBlockSequence  = 0x73
)

// DefaultBlockData is the number of data bytes per download block the
// simulator sends unless configured otherwise.
const DefaultBlockData = 0xF8

// SimulatorConfig describes a simulated Predator.
type SimulatorConfig struct {
	// Serial is the 8 character serial number. Defaults to "1A2B3C4D".
	Serial string

	// Firmware is the firmware version string. Defaults to "V71".
	Firmware string

	// Memory is the memory image. Shorter images are zero padded to
	// MemorySize, see Layout.
	Memory []byte

	// BlockData is the data size of one download block, at most 0xFC.
	BlockData int
}

// Simulator is an in-memory transport that answers like a Predator.
// Requests are processed when their final SLIP END byte is written; the
// response is queued for Read.
type Simulator struct {
	mu sync.Mutex

	memory    []byte
	serial    string
	firmware  string
	ids       map[uint16][]byte
	blockData int

	in      []byte
	escaped bool
	out     []byte
	timeout time.Duration
	closed  bool

	failReads int
	requests  int

	dl download
}

// download is an active download transaction.
type download struct {
	active bool
	offset int
	remain int
	seq    byte
}

// NewSimulator creates a simulator.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	sim := &Simulator{
		memory:    make([]byte, MemorySize),
		serial:    cfg.Serial,
		firmware:  cfg.Firmware,
		ids:       make(map[uint16][]byte),
		blockData: cfg.BlockData,
		timeout:   -1,
	}
	copy(sim.memory, cfg.Memory)
	if sim.serial == "" {
		sim.serial = "1A2B3C4D"
	}
	if sim.firmware == "" {
		sim.firmware = "V71"
	}
	if sim.blockData <= 0 || sim.blockData > maxPayload-2 {
		sim.blockData = DefaultBlockData
	}
	return sim
}

// NewSimulatorWithDives creates a simulator whose memory holds dives,
// oldest first.
func NewSimulatorWithDives(cfg SimulatorConfig, dives ...[]byte) (*Simulator, error) {
	mem, err := Layout(dives...)
	if err != nil {
		return nil, err
	}
	cfg.Memory = mem
	return NewSimulator(cfg), nil
}

// Layout builds a memory image with dives stored back to back from offset
// zero, oldest first.
func Layout(dives ...[]byte) ([]byte, error) {
	mem := make([]byte, MemorySize)
	off := 0
	for i, d := range dives {
		if len(d) < MinDiveSize || len(d)%BlockSize != 0 {
			return nil, status.Errorf("shearwater.layout", status.InvalidArgs, "dive %d is %d bytes", i, len(d))
		}
		if off+len(d) > ProfileSize {
			return nil, status.Errorf("shearwater.layout", status.Memory, "dive %d does not fit the profile area", i)
		}
		off += copy(mem[off:], d)
	}
	return mem, nil
}

// FailReads makes the next n calls to Read fail with status.IO.
func (sim *Simulator) FailReads(n int) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.failReads = n
}

// Requests returns the number of valid request packets received.
func (sim *Simulator) Requests() int {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.requests
}

// Memory returns a copy of the memory image.
func (sim *Simulator) Memory() []byte {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return append([]byte(nil), sim.memory...)
}

// Identifier returns the value last written to a data identifier.
func (sim *Simulator) Identifier(id uint16) ([]byte, bool) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	v, ok := sim.ids[id]
	return v, ok
}

// Timeout returns the read timeout last set by the host.
func (sim *Simulator) Timeout() time.Duration {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.timeout
}

func (sim *Simulator) Read(p []byte) (int, error) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	if sim.closed {
		return 0, status.Wrap("simulator.read", status.IO, transport.ErrClosed)
	}
	if sim.failReads > 0 {
		sim.failReads--
		sim.out = sim.out[:0]
		return 0, status.Errorf("simulator.read", status.IO, "injected failure")
	}
	if len(sim.out) == 0 {
		return 0, status.New("simulator.read", status.Timeout)
	}
	n := copy(p, sim.out)
	sim.out = sim.out[n:]
	return n, nil
}

func (sim *Simulator) Write(p []byte) (int, error) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	if sim.closed {
		return 0, status.Wrap("simulator.write", status.IO, transport.ErrClosed)
	}
	for _, b := range p {
		sim.feed(b)
	}
	return len(p), nil
}

func (sim *Simulator) SetTimeout(d time.Duration) error {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.timeout = d
	return nil
}

func (sim *Simulator) Close() error {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.closed = true
	return nil
}

// Purge discards undelivered responses (input) or partial requests (output).
func (sim *Simulator) Purge(dir transport.Direction) error {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	if dir&transport.DirectionInput != 0 {
		sim.out = sim.out[:0]
	}
	if dir&transport.DirectionOutput != 0 {
		sim.in = sim.in[:0]
		sim.escaped = false
	}
	return nil
}

func (sim *Simulator) Name() string { return "simulator" }

// feed decodes one SLIP byte.
func (sim *Simulator) feed(b byte) {
	switch {
	case sim.escaped:
		sim.escaped = false
		switch b {
		case transport.SLIPEscEnd:
			b = transport.SLIPEnd
		case transport.SLIPEscEsc:
			b = transport.SLIPEsc
		}
		sim.in = append(sim.in, b)
	case b == transport.SLIPEsc:
		sim.escaped = true
	case b == transport.SLIPEnd:
		if len(sim.in) > 0 {
			sim.handle(sim.in)
			sim.in = sim.in[:0]
		}
	default:
		sim.in = append(sim.in, b)
	}
}

func (sim *Simulator) handle(pkt []byte) {
	req, err := decodePacket(requestHeader, pkt)
	if err != nil {
		return
	}
	sim.requests++

	var resp []byte
	switch req[0] {
	case sidReadByID:
		resp = sim.readByID(req)
	case sidWriteByID:
		resp = sim.writeByID(req)
	case sidInitDownload:
		resp = sim.initDownload(req)
	case sidBlock:
		resp = sim.block(req)
	case sidQuit:
		sim.dl = download{}
		resp = []byte{sidQuit | responseBit, 0x00}
	default:
		resp = negative(req[0], nrcServiceNotSupported)
	}
	sim.out = transport.EncodeSLIP(sim.out, encodePacket(responseHeader, resp))
}

func negative(sid, code byte) []byte {
	return []byte{sidNegative, sid, code}
}

func (sim *Simulator) readByID(req []byte) []byte {
	if len(req) != 3 {
		return negative(sidReadByID, nrcOutOfRange)
	}
	id := binary.BigEndian.Uint16(req[1:])
	var value []byte
	switch id {
	case idSerial:
		value = []byte(sim.serial)
	case idFirmware:
		value = []byte(sim.firmware)
	default:
		v, ok := sim.ids[id]
		if !ok {
			return negative(sidReadByID, nrcOutOfRange)
		}
		value = v
	}
	return append([]byte{sidReadByID | responseBit, req[1], req[2]}, value...)
}

func (sim *Simulator) writeByID(req []byte) []byte {
	if len(req) < 3 {
		return negative(sidWriteByID, nrcOutOfRange)
	}
	id := binary.BigEndian.Uint16(req[1:])
	sim.ids[id] = append([]byte(nil), req[3:]...)
	return []byte{sidWriteByID | responseBit, req[1], req[2]}
}

func (sim *Simulator) initDownload(req []byte) []byte {
	if len(req) != 10 || req[2] != addressFormat {
		return negative(sidInitDownload, nrcOutOfRange)
	}
	addr := binary.BigEndian.Uint32(req[3:])
	size := int(req[7])<<16 | int(req[8])<<8 | int(req[9])
	if addr < BaseAddress {
		return negative(sidInitDownload, nrcOutOfRange)
	}
	offset := int(addr - BaseAddress)
	if offset+size > len(sim.memory) {
		return negative(sidInitDownload, nrcOutOfRange)
	}
	sim.dl = download{active: true, offset: offset, remain: size, seq: 1}
	return []byte{sidInitDownload | responseBit, initAccepted}
}

func (sim *Simulator) block(req []byte) []byte {
	if !sim.dl.active || sim.dl.remain == 0 {
		return negative(sidBlock, nrcSequenceError)
	}
	if len(req) != 2 || req[1] != sim.dl.seq {
		return negative(sidBlock, nrcWrongBlockSequence)
	}
	n := min(sim.blockData, sim.dl.remain)
	resp := append([]byte{sidBlock | responseBit, req[1]}, sim.memory[sim.dl.offset:sim.dl.offset+n]...)
	sim.dl.offset += n
	sim.dl.remain -= n
	sim.dl.seq++
	return resp
}

// Compile-time interface satisfaction checks.
var (
	_ transport.Transport = (*Simulator)(nil)
	_ transport.Purger    = (*Simulator)(nil)
	_ transport.Named     = (*Simulator)(nil)
)

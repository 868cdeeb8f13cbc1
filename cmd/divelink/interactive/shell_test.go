package interactive

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/divelink/divelink-go/pkg/device"
	"github.com/divelink/divelink-go/pkg/divelog"
	"github.com/divelink/divelink-go/pkg/parser"
	"github.com/divelink/divelink-go/pkg/registry"
	"github.com/divelink/divelink-go/pkg/shearwater"
)

// simConnector opens sessions on an in-memory Predator simulator.
type simConnector struct {
	sim     *shearwater.Simulator
	session *device.Session
	closed  int
}

func (c *simConnector) Connect(context.Context) (*device.Session, error) {
	s, err := registry.NewDevice(device.TypeShearwaterPredator, c.sim,
		device.WithRetry(device.RetryConfig{MaxAttempts: 1}))
	if err != nil {
		return nil, err
	}
	c.session = s
	return s, nil
}

func (c *simConnector) Disconnect() error {
	c.closed++
	return c.session.Close()
}

func (c *simConnector) Decode(t device.Type, data, fingerprint []byte) (*divelog.Dive, error) {
	s, err := registry.NewParser(t, parser.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}
	if err := s.SetData(data); err != nil {
		return nil, err
	}
	return divelog.Build(s)
}

func newTestShell(t *testing.T) (*Shell, *simConnector, *bytes.Buffer) {
	t.Helper()
	start := time.Date(2024, time.March, 9, 8, 15, 0, 0, time.UTC)
	var dives [][]byte
	for i := 0; i < 2; i++ {
		d := shearwater.Dive{
			Start:    start.Add(time.Duration(i) * time.Hour),
			MaxDepth: uint16(20 + i),
			DiveTime: 40,
			Records:  []shearwater.Record{{Depth: 100, Oxygen: 21, Temperature: 19}},
		}
		d.Mixes[0] = shearwater.Mix{Oxygen: 32}
		data, err := shearwater.EncodeDive(d)
		if err != nil {
			t.Fatalf("EncodeDive failed: %v", err)
		}
		dives = append(dives, data)
	}
	sim, err := shearwater.NewSimulatorWithDives(shearwater.SimulatorConfig{}, dives...)
	if err != nil {
		t.Fatalf("NewSimulatorWithDives failed: %v", err)
	}

	conn := &simConnector{sim: sim}
	var out bytes.Buffer
	return &Shell{conn: conn, out: &out}, conn, &out
}

func run(t *testing.T, sh *Shell, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	if !sh.Execute(context.Background(), line) {
		t.Fatalf("Execute(%q) requested exit", line)
	}
	return out.String()
}

func TestShellRequiresSession(t *testing.T) {
	sh, _, out := newTestShell(t)
	for _, cmd := range []string{"handshake", "version", "read 0 16", "dives", "status"} {
		if got := run(t, sh, out, cmd); !strings.Contains(got, "No session") {
			t.Errorf("%s: expected session hint, got: %s", cmd, got)
		}
	}
}

func TestShellSessionCommands(t *testing.T) {
	sh, _, out := newTestShell(t)

	if got := run(t, sh, out, "open"); !strings.Contains(got, "shearwater-predator on simulator") {
		t.Errorf("open: got %s", got)
	}
	if got := run(t, sh, out, "handshake"); !strings.Contains(got, "Predator serial 1A2B3C4D") {
		t.Errorf("handshake: got %s", got)
	}
	if got := run(t, sh, out, "version"); !strings.Contains(got, "Firmware: V71") {
		t.Errorf("version: got %s", got)
	}
	if got := run(t, sh, out, "status"); !strings.Contains(got, "Serial:   1A2B3C4D") {
		t.Errorf("status: got %s", got)
	}
	if got := run(t, sh, out, "read 0x100 16"); !strings.Contains(got, "00000000  ") {
		t.Errorf("read: expected hex dump, got %s", got)
	}
	if got := run(t, sh, out, "read zz 16"); !strings.Contains(got, "Invalid address") {
		t.Errorf("read: expected address error, got %s", got)
	}
}

func TestShellDivesAndParse(t *testing.T) {
	sh, _, out := newTestShell(t)
	run(t, sh, out, "open")
	run(t, sh, out, "handshake")

	got := run(t, sh, out, "dives")
	if !strings.Contains(got, "Dives (2)") {
		t.Fatalf("dives: got %s", got)
	}

	// newest first
	got = run(t, sh, out, "parse 1")
	if !strings.Contains(got, "Start:     2024-03-09 09:15") {
		t.Errorf("parse 1: got %s", got)
	}
	if !strings.Contains(got, "Max depth: 21.0 m") || !strings.Contains(got, "O2 32%") {
		t.Errorf("parse 1: got %s", got)
	}
	if got := run(t, sh, out, "parse 3"); !strings.Contains(got, "No dive 3") {
		t.Errorf("parse 3: got %s", got)
	}
}

func TestShellDump(t *testing.T) {
	sh, _, out := newTestShell(t)
	run(t, sh, out, "open")
	run(t, sh, out, "handshake")

	path := filepath.Join(t.TempDir(), "memory.bin")
	if got := run(t, sh, out, "dump "+path); !strings.Contains(got, "Wrote") {
		t.Fatalf("dump: got %s", got)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if fi.Size() != shearwater.MemorySize {
		t.Errorf("dump size: got %d, want %d", fi.Size(), shearwater.MemorySize)
	}
}

func TestShellCloseAndQuit(t *testing.T) {
	sh, conn, out := newTestShell(t)
	run(t, sh, out, "open")
	run(t, sh, out, "close")
	if conn.closed != 1 {
		t.Errorf("Disconnect calls: got %d, want 1", conn.closed)
	}
	if got := run(t, sh, out, "status"); !strings.Contains(got, "No session") {
		t.Errorf("status after close: got %s", got)
	}
	if got := run(t, sh, out, "bogus"); !strings.Contains(got, "Unknown command: bogus") {
		t.Errorf("unknown: got %s", got)
	}
	if sh.Execute(context.Background(), "quit") {
		t.Error("quit should end the shell")
	}
}

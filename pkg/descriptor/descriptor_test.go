package descriptor

import (
	"context"
	"io"
	"testing"

	"go.bug.st/serial/enumerator"

	"github.com/divelink/divelink-go/pkg/device"
	"github.com/divelink/divelink-go/pkg/discovery"
)

func TestTableCoversEveryFamily(t *testing.T) {
	for _, typ := range device.Types() {
		ds, err := All(Filter(ByType(typ)))
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(ds) == 0 {
			t.Errorf("no descriptor for %s", typ)
		}
	}
}

func TestIteratorEndsWithEOF(t *testing.T) {
	it := NewIterator()
	n := 0
	for {
		_, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		n++
	}
	if n != len(table) {
		t.Errorf("count: got %d, want %d", n, len(table))
	}
	if _, err := it.Next(); err != io.EOF {
		t.Errorf("Next after end: got %v, want io.EOF", err)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"Predator", "shearwater predator", " PREDATOR "} {
		d, ok := Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q): not found", name)
			continue
		}
		if d.Type != device.TypeShearwaterPredator {
			t.Errorf("Lookup(%q): got %s", name, d.Type)
		}
	}
	if _, ok := Lookup("Abacus"); ok {
		t.Error("Lookup(Abacus): found")
	}
}

func TestTransportKind(t *testing.T) {
	k := TransportSerial | TransportBluetooth
	if got := k.String(); got != "serial|bluetooth" {
		t.Errorf("String: got %q", got)
	}
	if !k.Has(TransportSerial) || k.Has(TransportIrDA) {
		t.Errorf("Has: wrong result for %s", k)
	}
	if got := TransportKind(0).String(); got != "none" {
		t.Errorf("String: got %q, want none", got)
	}

	irda, _ := All(Filter(ByTransport(TransportIrDA)))
	for _, d := range irda {
		if d.Type != device.TypeUwatecSmart {
			t.Errorf("IrDA descriptor %s has type %s", d, d.Type)
		}
	}
}

func TestMatchPorts(t *testing.T) {
	details := []*enumerator.PortDetails{
		{Name: "/dev/ttyS0"},
		{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "f460", SerialNumber: "OC123"},
		{Name: "/dev/ttyUSB1", IsUSB: true, VID: "1234", PID: "5678"},
	}
	ports, err := matchPorts(details)
	if err != nil {
		t.Fatalf("matchPorts failed: %v", err)
	}
	if len(ports) != 3 {
		t.Fatalf("ports: got %d, want 3", len(ports))
	}

	if ports[0].USB != nil || len(ports[0].Candidates) != 0 {
		t.Errorf("ttyS0: got %+v", ports[0])
	}
	if ports[1].USB == nil || *ports[1].USB != oceanicCable {
		t.Errorf("ttyUSB0 USB: got %v", ports[1].USB)
	}
	if len(ports[1].Candidates) != 2 {
		t.Errorf("ttyUSB0 candidates: got %d, want 2", len(ports[1].Candidates))
	}
	if ports[1].Serial != "OC123" {
		t.Errorf("Serial: got %q", ports[1].Serial)
	}
	if len(ports[2].Candidates) != 0 {
		t.Errorf("ttyUSB1 candidates: got %v", ports[2].Candidates)
	}

	_, err = matchPorts([]*enumerator.PortDetails{{Name: "x", IsUSB: true, VID: "zz", PID: "0000"}})
	if err == nil {
		t.Error("matchPorts: expected error for invalid VID")
	}
}

func TestScanSerialPortsUsesLister(t *testing.T) {
	orig := portLister
	defer func() { portLister = orig }()
	portLister = func() ([]*enumerator.PortDetails, error) {
		return []*enumerator.PortDetails{{Name: "COM3", IsUSB: true, VID: "0403", PID: "6015"}}, nil
	}

	ports, err := ScanSerialPorts()
	if err != nil {
		t.Fatalf("ScanSerialPorts failed: %v", err)
	}
	if len(ports) != 1 || len(ports[0].Candidates) != 2 {
		t.Errorf("ports: got %+v", ports)
	}
}

type fakeBrowser struct {
	services []*discovery.BridgeService
}

func (b *fakeBrowser) BrowseBridges(context.Context) (<-chan *discovery.BridgeService, error) {
	ch := make(chan *discovery.BridgeService, len(b.services))
	for _, s := range b.services {
		ch <- s
	}
	close(ch)
	return ch, nil
}

func (b *fakeBrowser) FindBridge(context.Context, string) (*discovery.BridgeService, error) {
	return nil, discovery.ErrNotFound
}

func (b *fakeBrowser) Stop() {}

func TestBrowseBridges(t *testing.T) {
	b := &fakeBrowser{services: []*discovery.BridgeService{
		{InstanceName: "desk", Device: device.TypeShearwaterPredator},
		{InstanceName: "boat", Device: device.TypeSuuntoD9},
	}}

	bridges, err := BrowseBridges(context.Background(), b)
	if err != nil {
		t.Fatalf("BrowseBridges failed: %v", err)
	}
	if len(bridges) != 2 {
		t.Fatalf("bridges: got %d, want 2", len(bridges))
	}
	if len(bridges[0].Candidates) != 1 || bridges[0].Candidates[0].Product != "Predator" {
		t.Errorf("desk candidates: got %v", bridges[0].Candidates)
	}
	if len(bridges[1].Candidates) != 2 {
		t.Errorf("boat candidates: got %d, want 2", len(bridges[1].Candidates))
	}
}

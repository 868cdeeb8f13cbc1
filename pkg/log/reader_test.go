package log

import (
	"bytes"
	"io"
	"testing"
	"time"
)

func captureStream(t *testing.T, events []Event) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	l := NewStreamLogger(&buf)
	for _, e := range events {
		l.Log(e)
	}
	l.Close()
	return &buf
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var out []Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		out = append(out, e)
	}
}

func TestReaderHandlesEmptyStream(t *testing.T) {
	r := NewStreamReader(&bytes.Buffer{}, Filter{})
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("Next on empty stream: got %v, want io.EOF", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: got %v, want nil", err)
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, SessionID: "a", Direction: DirectionOut, Layer: LayerTransport, Category: CategoryFrame, DeviceType: "predator"},
		{Timestamp: base.Add(time.Second), SessionID: "a", Direction: DirectionIn, Layer: LayerTransport, Category: CategoryFrame, DeviceType: "predator", Serial: "12345678"},
		{Timestamp: base.Add(2 * time.Second), SessionID: "b", Layer: LayerDevice, Category: CategoryState, DeviceType: "vyper"},
		{Timestamp: base.Add(3 * time.Second), SessionID: "b", Layer: LayerParser, Category: CategoryError},
	}

	in := DirectionIn
	device := LayerDevice
	frame := CategoryFrame
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"session", Filter{SessionID: "b"}, 2},
		{"direction", Filter{Direction: &in}, 1},
		{"layer", Filter{Layer: &device}, 1},
		{"category", Filter{Category: &frame}, 2},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"device type", Filter{DeviceType: "predator"}, 2},
		{"serial", Filter{Serial: "12345678"}, 1},
		{"combined", Filter{SessionID: "a", Category: &frame, Direction: &in}, 1},
		{"none", Filter{SessionID: "zzz"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewStreamReader(captureStream(t, events), tt.filter)
			got := readAll(t, r)
			if len(got) != tt.want {
				t.Errorf("got %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestReaderReportsCorruptData(t *testing.T) {
	buf := captureStream(t, []Event{{SessionID: "ok"}})
	buf.Write([]byte{0xA1, 0x01})

	r := NewStreamReader(buf, Filter{})
	if _, err := r.Next(); err != nil {
		t.Fatalf("first Next failed: %v", err)
	}
	if _, err := r.Next(); err == nil || err == io.EOF {
		t.Errorf("Next on truncated record: got %v, want decode error", err)
	}
}

func TestNewReaderMissingFile(t *testing.T) {
	if _, err := NewReader("/nonexistent/capture.dlog"); err == nil {
		t.Error("NewReader: expected error for missing file")
	}
}

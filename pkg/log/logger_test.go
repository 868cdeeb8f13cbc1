package log

import (
	"testing"
	"time"
)

// mockLogger records events for testing
type mockLogger struct {
	events []Event
}

func (m *mockLogger) Log(event Event) {
	m.events = append(m.events, event)
}

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}
	event := Event{Timestamp: time.Now(), SessionID: "s", Category: CategoryFrame}

	logger.Log(event)
	event.Frame = &FrameEvent{Size: 3, Data: []byte{1, 2, 3}}
	logger.Log(event)
	event.Frame = nil
	event.Progress = &ProgressEvent{Current: 1, Maximum: 2}
	logger.Log(event)
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil): want NoopLogger")
	}
	m := &mockLogger{}
	if OrNoop(m) != Logger(m) {
		t.Error("OrNoop(m): want m")
	}
}

func TestMultiLoggerCallsAll(t *testing.T) {
	mock1 := &mockLogger{}
	mock2 := &mockLogger{}

	multi := NewMultiLogger(mock1, nil, mock2)
	if multi.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", multi.Len())
	}

	multi.Log(Event{SessionID: "s-123", Layer: LayerDevice, Category: CategoryState})

	for i, mock := range []*mockLogger{mock1, mock2} {
		if len(mock.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(mock.events))
			continue
		}
		if mock.events[0].SessionID != "s-123" {
			t.Errorf("logger %d: SessionID = %q, want %q", i, mock.events[0].SessionID, "s-123")
		}
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	NewMultiLogger().Log(Event{SessionID: "s"})
}

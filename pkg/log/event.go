package log

import (
	"time"
)

// Event represents a capture event recorded at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the device session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates data flow relative to the host.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// DeviceType is the device family name (e.g. "predator").
	DeviceType string `cbor:"6,keyasint,omitempty"`

	// Port is the transport endpoint (serial device path or host:port).
	Port string `cbor:"7,keyasint,omitempty"`

	// Serial is the dive computer serial number once known.
	Serial string `cbor:"8,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"` // Transport layer
	Command     *CommandEvent     `cbor:"11,keyasint,omitempty"` // Device protocol command
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Session state
	Progress    *ProgressEvent    `cbor:"13,keyasint,omitempty"` // Download progress
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of data flow.
type Direction uint8

const (
	// DirectionIn indicates data received from the dive computer.
	DirectionIn Direction = 0
	// DirectionOut indicates data sent to the dive computer.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerTransport is the raw byte layer.
	LayerTransport Layer = 0
	// LayerDevice is the device backend protocol layer.
	LayerDevice Layer = 1
	// LayerParser is the dive-log decoding layer.
	LayerParser Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerDevice:
		return "DEVICE"
	case LayerParser:
		return "PARSER"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryFrame indicates raw transport bytes.
	CategoryFrame Category = 0
	// CategoryCommand indicates a device protocol command and its response.
	CategoryCommand Category = 1
	// CategoryState indicates a session state change.
	CategoryState Category = 2
	// CategoryProgress indicates a progress or waiting notification.
	CategoryProgress Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryFrame:
		return "FRAME"
	case CategoryCommand:
		return "COMMAND"
	case CategoryState:
		return "STATE"
	case CategoryProgress:
		return "PROGRESS"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MaxFrameCapture is the number of frame bytes kept in a FrameEvent.
// Larger frames are truncated and flagged.
const MaxFrameCapture = 4096

// FrameEvent captures raw bytes at the transport layer.
type FrameEvent struct {
	// Size is the full size of the transfer in bytes.
	Size int `cbor:"1,keyasint"`

	// Data contains the bytes (may be truncated).
	Data []byte `cbor:"2,keyasint"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// NewFrameEvent builds a FrameEvent from p, copying at most MaxFrameCapture bytes.
func NewFrameEvent(p []byte) *FrameEvent {
	n := len(p)
	truncated := false
	if n > MaxFrameCapture {
		n = MaxFrameCapture
		truncated = true
	}
	data := make([]byte, n)
	copy(data, p[:n])
	return &FrameEvent{Size: len(p), Data: data, Truncated: truncated}
}

// CommandEvent captures a device protocol command.
type CommandEvent struct {
	// Name is the backend operation ("handshake", "read", ...).
	Name string `cbor:"1,keyasint"`

	// Opcode is the protocol request code, when the protocol has one.
	Opcode *uint8 `cbor:"2,keyasint,omitempty"`

	// Address is the memory address for read and write commands.
	Address *uint32 `cbor:"3,keyasint,omitempty"`

	// Length is the number of payload bytes requested or sent.
	Length int `cbor:"4,keyasint,omitempty"`

	// Status is the resulting status name (empty when still pending).
	Status string `cbor:"5,keyasint,omitempty"`

	// Attempt is the 1-based attempt number for retried commands.
	Attempt int `cbor:"6,keyasint,omitempty"`

	// Duration is how long the command took.
	Duration *time.Duration `cbor:"7,keyasint,omitempty"`
}

// StateChangeEvent captures device and parser session lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityDevice indicates a device session state change.
	StateEntityDevice StateEntity = 0
	// StateEntityParser indicates a parser session state change.
	StateEntityParser StateEntity = 1
	// StateEntityTransport indicates a transport open/close.
	StateEntityTransport StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityDevice:
		return "DEVICE"
	case StateEntityParser:
		return "PARSER"
	case StateEntityTransport:
		return "TRANSPORT"
	default:
		return "UNKNOWN"
	}
}

// ProgressEvent captures download progress notifications.
type ProgressEvent struct {
	// Waiting is set when the device is blocked on user input.
	Waiting bool `cbor:"1,keyasint,omitempty"`

	// Current is the number of units transferred so far.
	Current uint32 `cbor:"2,keyasint,omitempty"`

	// Maximum is the total number of units.
	Maximum uint32 `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the numeric status code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}

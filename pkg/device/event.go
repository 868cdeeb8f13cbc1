package device

// EventKind classifies progress notifications.
type EventKind uint8

const (
	// EventWaiting is emitted while the device waits for the user, e.g. to
	// put the computer into download mode.
	EventWaiting EventKind = iota + 1
	// EventProgress reports transfer progress.
	EventProgress
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventWaiting:
		return "WAITING"
	case EventProgress:
		return "PROGRESS"
	default:
		return "UNKNOWN"
	}
}

// Event is a progress notification. Current and Maximum are set for
// EventProgress only.
type Event struct {
	Kind    EventKind
	Current uint32
	Maximum uint32
}

// ProgressFunc receives progress notifications inline.
type ProgressFunc func(Event)

// DiveFunc receives one stored dive and its fingerprint. Returning false
// stops enumeration without error. Both slices are only valid during the
// call.
type DiveFunc func(data, fingerprint []byte) bool

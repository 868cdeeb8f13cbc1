package device

// State is the lifecycle state of a Session.
type State uint8

const (
	// StateOpen is a bound session that has not been handshaken yet.
	StateOpen State = iota
	// StateReady is a handshaken, idle session.
	StateReady
	// StateReading is a session inside Read or Foreach.
	StateReading
	// StateWriting is a session inside Write.
	StateWriting
	// StateDumping is a session inside Dump.
	StateDumping
	// StateClosed is terminal.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateReady:
		return "READY"
	case StateReading:
		return "READING"
	case StateWriting:
		return "WRITING"
	case StateDumping:
		return "DUMPING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

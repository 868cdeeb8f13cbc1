package status

// Status is a framework status code. Success is zero, every failure is negative.
type Status int

const (
	// Success indicates the operation completed successfully.
	Success Status = 0

	// Unsupported indicates the backend does not implement the requested
	// field or operation.
	Unsupported Status = -1

	// TypeMismatch indicates a handle was passed to a backend of another kind.
	TypeMismatch Status = -2

	// Error indicates a generic failure.
	Error Status = -3

	// IO indicates a transport input/output failure.
	IO Status = -4

	// Timeout indicates the transport deadline expired.
	Timeout Status = -5

	// Protocol indicates an unexpected exchange with the device.
	Protocol Status = -6

	// Memory indicates a caller buffer is too small for the result.
	Memory Status = -7

	// DataFormat indicates the data buffer is malformed or too small.
	DataFormat Status = -8

	// InvalidArgs indicates invalid arguments or an unusable handle.
	InvalidArgs Status = -9

	// NoMemory indicates an allocation failure.
	NoMemory Status = -10
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Unsupported:
		return "UNSUPPORTED"
	case TypeMismatch:
		return "TYPE_MISMATCH"
	case Error:
		return "ERROR"
	case IO:
		return "IO"
	case Timeout:
		return "TIMEOUT"
	case Protocol:
		return "PROTOCOL"
	case Memory:
		return "MEMORY"
	case DataFormat:
		return "DATAFORMAT"
	case InvalidArgs:
		return "INVALIDARGS"
	case NoMemory:
		return "NOMEMORY"
	default:
		return "UNKNOWN"
	}
}

// Error implements the error interface so a bare Status can be returned or
// used as an errors.Is target.
func (s Status) Error() string {
	return s.String()
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == Success
}

// IsError returns true if the status indicates an error.
func (s Status) IsError() bool {
	return s != Success
}

// Class groups status codes by how callers are expected to react to them.
type Class uint8

const (
	// ClassNone is the class of Success.
	ClassNone Class = iota
	// ClassUsage covers malformed or mismatched handles and arguments.
	ClassUsage
	// ClassCapability covers fields or operations a backend does not offer.
	ClassCapability
	// ClassTransport covers failures surfaced by the transport.
	ClassTransport
	// ClassData covers structurally invalid data buffers.
	ClassData
	// ClassResource covers buffer and allocation failures.
	ClassResource
	// ClassOther covers generic and protocol failures.
	ClassOther
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassUsage:
		return "usage"
	case ClassCapability:
		return "capability"
	case ClassTransport:
		return "transport"
	case ClassData:
		return "data"
	case ClassResource:
		return "resource"
	case ClassOther:
		return "other"
	default:
		return "unknown"
	}
}

// Class returns the class of the status code.
func (s Status) Class() Class {
	switch s {
	case Success:
		return ClassNone
	case InvalidArgs, TypeMismatch:
		return ClassUsage
	case Unsupported:
		return ClassCapability
	case IO, Timeout:
		return ClassTransport
	case DataFormat:
		return ClassData
	case Memory, NoMemory:
		return ClassResource
	default:
		return ClassOther
	}
}

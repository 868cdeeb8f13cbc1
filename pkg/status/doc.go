// Package status defines the error surface shared by every device and parser
// operation.
//
// Each public operation returns nil or an error that maps to exactly one
// Status code. Status itself implements error, so callers can compare with
// errors.Is:
//
//	if errors.Is(err, status.Timeout) {
//	    // the device did not answer in time
//	}
//
// Errors produced inside the framework are *Error values carrying the failed
// operation name and, optionally, the underlying cause (for example the
// transport error that triggered an IO status).
//
// # Classes
//
// Codes fall into the classes returned by Status.Class:
//   - Usage: INVALIDARGS, TYPE_MISMATCH (programming errors, never retried)
//   - Capability: UNSUPPORTED (the backend has no such field or operation)
//   - Transport: IO, TIMEOUT (surfaced from the transport layer)
//   - Data: DATAFORMAT (the bound buffer is too small or inconsistent)
//   - Resource: MEMORY, NOMEMORY
//   - Other: ERROR, PROTOCOL
package status

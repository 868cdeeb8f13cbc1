package status

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
)

// OpError describes a failed operation.
type OpError struct {
	// Status is the resulting status code.
	Status Status

	// Op names the failed operation, e.g. "shearwater.read".
	Op string

	// Err is the underlying cause, if any.
	Err error
}

// New returns an error for op with status s.
func New(op string, s Status) *OpError {
	return &OpError{Status: s, Op: op}
}

// Wrap returns an error for op with status s caused by err.
func Wrap(op string, s Status, err error) *OpError {
	return &OpError{Status: s, Op: op, Err: err}
}

// Errorf returns an error for op with status s and a formatted cause.
func Errorf(op string, s Status, format string, args ...any) *OpError {
	return &OpError{Status: s, Op: op, Err: fmt.Errorf(format, args...)}
}

// Error implements the error interface.
func (e *OpError) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Status, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Status, e.Err)
	default:
		return e.Status.String()
	}
}

// Unwrap returns the underlying cause.
func (e *OpError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Status carried by e.
func (e *OpError) Is(target error) bool {
	s, ok := target.(Status)
	return ok && s == e.Status
}

// Of returns the status code carried by err.
// A nil error is Success; deadline errors map to Timeout; anything else that
// does not carry a status maps to Error.
func Of(err error) Status {
	if err == nil {
		return Success
	}

	var se *OpError
	if errors.As(err, &se) {
		return se.Status
	}

	var s Status
	if errors.As(err, &s) {
		return s
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return Timeout
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Timeout
	}

	return Error
}

// Retryable reports whether err may be retried by a bounded retry loop.
// Only IO failures qualify; timeouts are never retried silently.
func Retryable(err error) bool {
	return Of(err) == IO
}

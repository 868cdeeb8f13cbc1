package status

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
)

func TestStatusValues(t *testing.T) {
	tests := []struct {
		status Status
		want   int
		name   string
	}{
		{Success, 0, "SUCCESS"},
		{Unsupported, -1, "UNSUPPORTED"},
		{TypeMismatch, -2, "TYPE_MISMATCH"},
		{Error, -3, "ERROR"},
		{IO, -4, "IO"},
		{Timeout, -5, "TIMEOUT"},
		{Protocol, -6, "PROTOCOL"},
		{Memory, -7, "MEMORY"},
		{DataFormat, -8, "DATAFORMAT"},
		{InvalidArgs, -9, "INVALIDARGS"},
		{NoMemory, -10, "NOMEMORY"},
	}

	for _, tt := range tests {
		if int(tt.status) != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, int(tt.status), tt.want)
		}
		if tt.status.String() != tt.name {
			t.Errorf("String(): got %q, want %q", tt.status.String(), tt.name)
		}
	}

	if Status(-42).String() != "UNKNOWN" {
		t.Errorf("unknown status: got %q", Status(-42).String())
	}
}

func TestStatusIsSuccess(t *testing.T) {
	if !Success.IsSuccess() || Success.IsError() {
		t.Error("Success should be success")
	}
	if IO.IsSuccess() || !IO.IsError() {
		t.Error("IO should be an error")
	}
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status Status
		class  Class
	}{
		{Success, ClassNone},
		{InvalidArgs, ClassUsage},
		{TypeMismatch, ClassUsage},
		{Unsupported, ClassCapability},
		{IO, ClassTransport},
		{Timeout, ClassTransport},
		{DataFormat, ClassData},
		{Memory, ClassResource},
		{NoMemory, ClassResource},
		{Error, ClassOther},
		{Protocol, ClassOther},
	}

	for _, tt := range tests {
		if got := tt.status.Class(); got != tt.class {
			t.Errorf("%s.Class(): got %s, want %s", tt.status, got, tt.class)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  *OpError
		want string
	}{
		{New("device.read", Protocol), "device.read: PROTOCOL"},
		{Wrap("serial.read", IO, io.ErrUnexpectedEOF), "serial.read: IO: unexpected EOF"},
		{&OpError{Status: Memory}, "MEMORY"},
		{&OpError{Status: IO, Err: io.EOF}, "IO: EOF"},
		{Errorf("parse", DataFormat, "size %d", 12), "parse: DATAFORMAT: size 12"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error(): got %q, want %q", got, tt.want)
		}
	}
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("dump failed: %w", Wrap("read", Timeout, os.ErrDeadlineExceeded))

	if !errors.Is(err, Timeout) {
		t.Error("expected errors.Is(err, Timeout)")
	}
	if errors.Is(err, IO) {
		t.Error("did not expect errors.Is(err, IO)")
	}
	if !errors.Is(err, os.ErrDeadlineExceeded) {
		t.Error("expected cause to be reachable")
	}
}

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"nil", nil, Success},
		{"bare status", Unsupported, Unsupported},
		{"wrapped status", fmt.Errorf("x: %w", DataFormat), DataFormat},
		{"error", New("op", TypeMismatch), TypeMismatch},
		{"wrapped error", fmt.Errorf("x: %w", New("op", IO)), IO},
		{"context deadline", context.DeadlineExceeded, Timeout},
		{"os deadline", fmt.Errorf("read: %w", os.ErrDeadlineExceeded), Timeout},
		{"plain", errors.New("boom"), Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.err); got != tt.want {
				t.Errorf("Of(): got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(New("read", IO)) {
		t.Error("IO should be retryable")
	}
	if Retryable(New("read", Timeout)) {
		t.Error("Timeout must not be retryable")
	}
	if Retryable(New("read", Protocol)) {
		t.Error("Protocol must not be retryable")
	}
	if Retryable(nil) {
		t.Error("nil must not be retryable")
	}
}

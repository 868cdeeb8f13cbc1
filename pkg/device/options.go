package device

import (
	"log/slog"
	"time"

	"github.com/divelink/divelink-go/pkg/log"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the operational logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCapture records device-layer events (commands, state changes,
// progress) to l. Transport frames are captured by wrapping the transport
// with transport.NewCapture using the same session ID.
func WithCapture(l log.Logger) Option {
	return func(s *Session) {
		s.capture = log.OrNoop(l)
	}
}

// WithProgress installs the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Session) {
		s.progress = fn
	}
}

// WithObserver installs session instrumentation.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithRetry overrides the retry policy.
func WithRetry(cfg RetryConfig) Option {
	return func(s *Session) {
		s.retry = cfg.normalized()
	}
}

// WithSessionID sets the session ID instead of generating a UUID.
func WithSessionID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithFingerprint sets the initial fingerprint (see Session.SetFingerprint).
func WithFingerprint(fp []byte) Option {
	return func(s *Session) {
		s.SetFingerprint(fp)
	}
}

// WithClock replaces time.Now and time.Sleep, for tests.
func WithClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

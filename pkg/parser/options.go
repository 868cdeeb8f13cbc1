package parser

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

// WithLocation sets the zone DateTime converts to. Default: time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Session) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithCapture records decoding failures to l under sessionID.
func WithCapture(l log.Logger, sessionID string) Option {
	return func(s *Session) {
		s.capture = log.OrNoop(l)
		s.captureID = sessionID
	}
}

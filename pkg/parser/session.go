package parser

import (
	"log/slog"
	"time"

	"github.com/divelink/divelink-go/pkg/log"
	"github.com/divelink/divelink-go/pkg/status"
)

// Session binds a Backend to a dive buffer. A Session is not safe for
// concurrent use; several sessions may share one buffer.
type Session struct {
	backend   Backend
	data      []byte
	destroyed bool

	loc       *time.Location
	logger    *slog.Logger
	capture   log.Logger
	captureID string
}

// NewSession creates an unbound session for backend.
func NewSession(backend Backend, opts ...Option) (*Session, error) {
	if backend == nil {
		return nil, status.New("parser.open", status.InvalidArgs)
	}
	s := &Session{
		backend: backend,
		loc:     time.Local,
		logger:  slog.Default(),
		capture: log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("parser", backend.Family().String())
	return s, nil
}

// Backend returns the bound backend.
func (s *Session) Backend() Backend { return s.backend }

// Data returns the bound buffer (nil when unbound).
func (s *Session) Data() []byte { return s.data }

// Location returns the zone used by DateTime.
func (s *Session) Location() *time.Location { return s.loc }

// Logger returns the session's operational logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// SetData binds data, replacing any previous buffer. The slice is kept by
// reference. Nothing is decoded until a query runs. A buffer the backend
// rejects is not bound.
func (s *Session) SetData(data []byte) error {
	if err := s.live("parser.setdata"); err != nil {
		return err
	}
	if err := s.backend.SetData(s, data); err != nil {
		s.fail("setdata", err)
		return err
	}
	s.data = data
	return nil
}

// DateTime returns the dive start time.
func (s *Session) DateTime() (time.Time, error) {
	if err := s.query("parser.datetime"); err != nil {
		return time.Time{}, err
	}
	t, err := s.backend.DateTime(s)
	if err != nil {
		s.fail("datetime", err)
		return time.Time{}, err
	}
	return t, nil
}

// Field decodes the summary field ft. index selects the slot of indexed
// fields and is ignored otherwise.
func (s *Session) Field(ft FieldType, index int) (Value, error) {
	if err := s.query("parser.field"); err != nil {
		return nil, err
	}
	v, err := s.backend.Field(s, ft, index)
	if err != nil {
		if status.Of(err) != status.Unsupported {
			s.fail("field "+ft.String(), err)
		}
		return nil, err
	}
	return v, nil
}

// FieldInto decodes ft into *out. A nil out succeeds without decoding once
// the buffer passed the size check, whatever ft is. On failure *out is left
// untouched.
func (s *Session) FieldInto(ft FieldType, index int, out *Value) error {
	if err := s.query("parser.field"); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	v, err := s.Field(ft, index)
	if err != nil {
		return err
	}
	*out = v
	return nil
}

// Supports reports whether the backend decodes ft.
func (s *Session) Supports(ft FieldType) bool {
	return s.backend.Supports(ft)
}

// Samples makes one forward pass over the profile. A nil fn walks the
// profile without delivering samples.
func (s *Session) Samples(fn SampleFunc) error {
	if err := s.query("parser.samples"); err != nil {
		return err
	}
	if fn == nil {
		fn = func(Sample) bool { return true }
	}
	if err := s.backend.Samples(s, fn); err != nil {
		s.fail("samples", err)
		return err
	}
	return nil
}

// Destroy releases the session. The buffer is not touched. Further calls
// fail with status.InvalidArgs.
func (s *Session) Destroy() error {
	if err := s.live("parser.destroy"); err != nil {
		return err
	}
	s.destroyed = true
	s.data = nil
	return nil
}

func (s *Session) live(op string) error {
	if s == nil || s.destroyed {
		return status.New(op, status.InvalidArgs)
	}
	return nil
}

func (s *Session) query(op string) error {
	if err := s.live(op); err != nil {
		return err
	}
	if need := s.backend.MinSize(); len(s.data) < need {
		return status.Errorf(op, status.DataFormat, "buffer %d bytes, need at least %d", len(s.data), need)
	}
	return nil
}

func (s *Session) fail(op string, err error) {
	s.logger.Debug("decode failed", "op", op, "error", err)
	code := int(status.Of(err))
	s.capture.Log(log.Event{
		Timestamp:  time.Now(),
		SessionID:  s.captureID,
		Layer:      log.LayerParser,
		Category:   log.CategoryError,
		DeviceType: s.backend.Family().String(),
		Error: &log.ErrorEventData{
			Layer:   log.LayerParser,
			Message: err.Error(),
			Code:    &code,
			Context: op,
		},
	})
}

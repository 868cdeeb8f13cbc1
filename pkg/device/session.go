package device

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/divelink/divelink-go/pkg/log"
	"github.com/divelink/divelink-go/pkg/status"
	"github.com/divelink/divelink-go/pkg/transport"
)

// Info identifies the connected dive computer. Fields are filled in by the
// backend during Handshake and Version.
type Info struct {
	Model    string
	Firmware string
	Serial   string
}

// Session is one contact with a dive computer: a backend bound to a
// transport. A Session is not safe for concurrent use.
type Session struct {
	backend   Backend
	transport *countingTransport
	id        string

	logger   *slog.Logger
	capture  log.Logger
	progress ProgressFunc
	observer Observer
	retry    RetryConfig
	now      func() time.Time
	sleep    func(time.Duration)

	state       State
	fingerprint []byte
	info        Info
}

// NewSession binds backend to t. The session shares t and never closes it.
func NewSession(backend Backend, t transport.Transport, opts ...Option) (*Session, error) {
	if backend == nil || t == nil {
		return nil, status.New("device.open", status.InvalidArgs)
	}

	s := &Session{
		backend:  backend,
		id:       uuid.New().String(),
		logger:   slog.Default(),
		capture:  log.NoopLogger{},
		observer: noopObserver{},
		retry:    DefaultRetryConfig(),
		now:      time.Now,
		sleep:    time.Sleep,
		state:    StateOpen,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.transport = &countingTransport{Transport: t, s: s}
	s.logger = s.logger.With("session_id", s.id, "device", backend.Type().String())

	s.logState(StateOpen, StateOpen, "bound")
	return s, nil
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Type returns the family of the bound backend.
func (s *Session) Type() Type { return s.backend.Type() }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Info returns what the backend learned about the device.
func (s *Session) Info() Info { return s.info }

// SetInfo records device information. Called by backends.
func (s *Session) SetInfo(info Info) { s.info = info }

// Logger returns the session's operational logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// Transport returns the bound transport. Backends must do all I/O through
// it so that transfers are instrumented.
func (s *Session) Transport() transport.Transport { return s.transport }

// SetFingerprint sets the fingerprint of the newest dive already
// downloaded. Foreach stops before the dive with this fingerprint. An empty
// fingerprint disables the check. The bytes are copied.
func (s *Session) SetFingerprint(fp []byte) {
	if len(fp) == 0 {
		s.fingerprint = nil
		return
	}
	s.fingerprint = bytes.Clone(fp)
}

// Fingerprint returns the configured fingerprint (nil when unset).
func (s *Session) Fingerprint() []byte { return s.fingerprint }

// FingerprintMatches reports whether fp equals the configured fingerprint.
func (s *Session) FingerprintMatches(fp []byte) bool {
	return len(s.fingerprint) > 0 && bytes.Equal(s.fingerprint, fp)
}

// Handshake identifies the device. It may be repeated on a ready session.
func (s *Session) Handshake(p []byte) (int, error) {
	if err := s.usable("device.handshake"); err != nil {
		return 0, err
	}
	start := s.now()
	n, err := s.backend.Handshake(s, p)
	s.done("handshake", start, err)
	if err != nil {
		return 0, err
	}
	if s.state == StateOpen {
		s.setState(StateReady, "handshake")
	}
	return n, nil
}

// Version reads the versioned identification. Allowed before Handshake.
func (s *Session) Version(p []byte) (int, error) {
	if err := s.usable("device.version"); err != nil {
		return 0, err
	}
	start := s.now()
	n, err := s.backend.Version(s, p)
	s.done("version", start, err)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Read reads len(p) bytes of device memory at address.
func (s *Session) Read(address uint32, p []byte) error {
	if err := s.ready("device.read"); err != nil {
		return err
	}
	if len(p) == 0 {
		return status.New("device.read", status.InvalidArgs)
	}
	return s.run("read", StateReading, func() error {
		return s.backend.Read(s, address, p)
	})
}

// Write writes p to device memory at address.
func (s *Session) Write(address uint32, p []byte) error {
	if err := s.ready("device.write"); err != nil {
		return err
	}
	if len(p) == 0 {
		return status.New("device.write", status.InvalidArgs)
	}
	return s.run("write", StateWriting, func() error {
		return s.backend.Write(s, address, p)
	})
}

// Dump copies the complete device memory into p and returns its size.
func (s *Session) Dump(p []byte) (int, error) {
	if err := s.ready("device.dump"); err != nil {
		return 0, err
	}
	var n int
	err := s.run("dump", StateDumping, func() error {
		var err error
		n, err = s.backend.Dump(s, p)
		return err
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Foreach calls fn once per stored dive, newest first, stopping early when
// fn returns false or the configured fingerprint is reached.
func (s *Session) Foreach(fn DiveFunc) error {
	if err := s.ready("device.foreach"); err != nil {
		return err
	}
	if fn == nil {
		return status.New("device.foreach", status.InvalidArgs)
	}
	return s.run("foreach", StateReading, func() error {
		return s.backend.Foreach(s, fn)
	})
}

// Close unbinds the transport. The transport itself stays open. Further
// operations fail with status.InvalidArgs; Close itself is idempotent.
func (s *Session) Close() error {
	if s.state == StateClosed {
		return nil
	}
	s.setState(StateClosed, "close")
	return nil
}

// Emit delivers a progress event to the callback and the capture log.
func (s *Session) Emit(ev Event) {
	e := s.event(log.CategoryProgress)
	e.Progress = &log.ProgressEvent{
		Waiting: ev.Kind == EventWaiting,
		Current: ev.Current,
		Maximum: ev.Maximum,
	}
	s.capture.Log(e)

	if s.progress != nil {
		s.progress(ev)
	}
}

// LogCommand records a protocol command in the capture log.
func (s *Session) LogCommand(cmd log.CommandEvent) {
	e := s.event(log.CategoryCommand)
	e.Command = &cmd
	s.capture.Log(e)
}

// Retry runs fn until it succeeds or fails with a non-IO error, at most
// RetryConfig.MaxAttempts times. Input is purged between attempts.
// Timeouts are never retried.
func (s *Session) Retry(op string, fn func(attempt int) error) error {
	b := newBackoff(s.retry)
	var err error
	for attempt := 1; attempt <= s.retry.MaxAttempts; attempt++ {
		err = fn(attempt)
		if err == nil || !status.Retryable(err) {
			return err
		}
		if attempt == s.retry.MaxAttempts {
			break
		}

		s.observer.ObserveRetry(s.Type(), op)
		s.logger.Warn("retrying transfer", "op", op, "attempt", attempt, "error", err)
		s.logRetry(op, attempt, err)

		if d := b.next(); d > 0 {
			s.sleep(d)
		}
		if perr := transport.Purge(s.transport.Transport, transport.DirectionInput); perr != nil {
			s.logger.Debug("purge before retry failed", "op", op, "error", perr)
		}
	}
	return err
}

func (s *Session) logRetry(op string, attempt int, err error) {
	s.LogCommand(log.CommandEvent{
		Name:    op,
		Status:  status.Of(err).String(),
		Attempt: attempt,
	})
}

func (s *Session) usable(op string) error {
	if s == nil || s.state == StateClosed {
		return status.New(op, status.InvalidArgs)
	}
	return nil
}

func (s *Session) ready(op string) error {
	if err := s.usable(op); err != nil {
		return err
	}
	if s.state != StateReady {
		return status.Errorf(op, status.Protocol, "session is %s, handshake required", s.state)
	}
	return nil
}

func (s *Session) run(op string, transient State, fn func() error) error {
	start := s.now()
	s.setState(transient, op)
	err := fn()
	s.setState(StateReady, op)
	s.done(op, start, err)
	return err
}

func (s *Session) done(op string, start time.Time, err error) {
	st := status.Of(err)
	elapsed := s.now().Sub(start)
	s.observer.ObserveOperation(s.Type(), op, st, elapsed)

	if err != nil {
		s.logger.Debug("operation failed", "op", op, "status", st.String(), "error", err)
		code := int(st)
		e := s.event(log.CategoryError)
		e.Error = &log.ErrorEventData{
			Layer:   log.LayerDevice,
			Message: err.Error(),
			Code:    &code,
			Context: op,
		}
		s.capture.Log(e)
		return
	}
	s.logger.Debug("operation done", "op", op, "elapsed", elapsed)
}

func (s *Session) setState(next State, reason string) {
	prev := s.state
	s.state = next
	s.logState(prev, next, reason)
}

func (s *Session) logState(prev, next State, reason string) {
	e := s.event(log.CategoryState)
	e.StateChange = &log.StateChangeEvent{
		Entity:   log.StateEntityDevice,
		OldState: prev.String(),
		NewState: next.String(),
		Reason:   reason,
	}
	s.capture.Log(e)
}

func (s *Session) event(cat log.Category) log.Event {
	e := log.Event{
		Timestamp:  s.now(),
		SessionID:  s.id,
		Layer:      log.LayerDevice,
		Category:   cat,
		DeviceType: s.backend.Type().String(),
		Serial:     s.info.Serial,
	}
	if s.transport != nil {
		e.Port = transport.Name(s.transport.Transport)
	}
	return e
}

// countingTransport reports transfer sizes to the session observer.
type countingTransport struct {
	transport.Transport
	s *Session
}

func (c *countingTransport) Read(p []byte) (int, error) {
	n, err := c.Transport.Read(p)
	if n > 0 {
		c.s.observer.ObserveTransfer(c.s.Type(), log.DirectionIn, n)
	}
	return n, err
}

func (c *countingTransport) Write(p []byte) (int, error) {
	n, err := c.Transport.Write(p)
	if n > 0 {
		c.s.observer.ObserveTransfer(c.s.Type(), log.DirectionOut, n)
	}
	return n, err
}

func (c *countingTransport) Purge(dir transport.Direction) error {
	return transport.Purge(c.Transport, dir)
}

func (c *countingTransport) Ioctl(request uint32, data []byte) (int, error) {
	return transport.Ioctl(c.Transport, request, data)
}

func (c *countingTransport) Name() string {
	return transport.Name(c.Transport)
}

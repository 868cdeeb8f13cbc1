package transport

import (
	"time"

	"github.com/divelink/divelink-go/pkg/log"
	"github.com/divelink/divelink-go/pkg/status"
)

// Capture wraps a Transport and records every transfer as a log.FrameEvent.
// Purge and Ioctl are forwarded to the wrapped transport.
type Capture struct {
	t         Transport
	logger    log.Logger
	sessionID string
	name      string
}

// NewCapture wraps t so that reads and writes are logged under sessionID.
func NewCapture(t Transport, logger log.Logger, sessionID string) *Capture {
	return &Capture{
		t:         t,
		logger:    log.OrNoop(logger),
		sessionID: sessionID,
		name:      Name(t),
	}
}

// Unwrap returns the wrapped transport.
func (c *Capture) Unwrap() Transport {
	return c.t
}

// Name returns the wrapped transport's name.
func (c *Capture) Name() string {
	return c.name
}

func (c *Capture) event(dir log.Direction, cat log.Category) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		SessionID: c.sessionID,
		Direction: dir,
		Layer:     log.LayerTransport,
		Category:  cat,
		Port:      c.name,
	}
}

func (c *Capture) logError(dir log.Direction, context string, err error) {
	code := int(status.Of(err))
	e := c.event(dir, log.CategoryError)
	e.Error = &log.ErrorEventData{
		Layer:   log.LayerTransport,
		Message: err.Error(),
		Code:    &code,
		Context: context,
	}
	c.logger.Log(e)
}

// Read reads from the wrapped transport and logs the received bytes.
func (c *Capture) Read(p []byte) (int, error) {
	n, err := c.t.Read(p)
	if n > 0 {
		e := c.event(log.DirectionIn, log.CategoryFrame)
		e.Frame = log.NewFrameEvent(p[:n])
		c.logger.Log(e)
	}
	if err != nil {
		c.logError(log.DirectionIn, "read", err)
	}
	return n, err
}

// Write logs p and writes it to the wrapped transport.
func (c *Capture) Write(p []byte) (int, error) {
	e := c.event(log.DirectionOut, log.CategoryFrame)
	e.Frame = log.NewFrameEvent(p)
	c.logger.Log(e)

	n, err := c.t.Write(p)
	if err != nil {
		c.logError(log.DirectionOut, "write", err)
	}
	return n, err
}

// SetTimeout sets the wrapped transport's read timeout.
func (c *Capture) SetTimeout(d time.Duration) error {
	return c.t.SetTimeout(d)
}

// Purge forwards to the wrapped transport.
func (c *Capture) Purge(dir Direction) error {
	return Purge(c.t, dir)
}

// Ioctl forwards to the wrapped transport.
func (c *Capture) Ioctl(request uint32, data []byte) (int, error) {
	return Ioctl(c.t, request, data)
}

// Close closes the wrapped transport and logs the state change.
func (c *Capture) Close() error {
	err := c.t.Close()
	e := c.event(log.DirectionOut, log.CategoryState)
	e.StateChange = &log.StateChangeEvent{
		Entity:   log.StateEntityTransport,
		OldState: "OPEN",
		NewState: "CLOSED",
	}
	if err != nil {
		e.StateChange.Reason = err.Error()
	}
	c.logger.Log(e)
	return err
}

// Compile-time interface satisfaction checks.
var (
	_ Transport  = (*Capture)(nil)
	_ Purger     = (*Capture)(nil)
	_ Controller = (*Capture)(nil)
	_ Named      = (*Capture)(nil)
)

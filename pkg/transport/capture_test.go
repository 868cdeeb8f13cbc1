package transport_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/divelink/divelink-go/pkg/log"
	"github.com/divelink/divelink-go/pkg/status"
	"github.com/divelink/divelink-go/pkg/transport"
	"github.com/divelink/divelink-go/pkg/transport/mocks"
)

type recorder struct {
	events []log.Event
}

func (r *recorder) Log(e log.Event) { r.events = append(r.events, e) }

func TestCaptureLogsFrames(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	rec := &recorder{}
	c := transport.NewCapture(inner, rec, "session-1")

	inner.EXPECT().Write([]byte{0xC0, 0x01}).Return(2, nil).Once()
	inner.EXPECT().Read(mock.Anything).Run(func(p []byte) {
		copy(p, []byte{0xAA, 0xBB, 0xCC})
	}).Return(3, nil).Once()

	n, err := c.Write([]byte{0xC0, 0x01})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	buf := make([]byte, 8)
	n, err = c.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.Len(t, rec.events, 2)
	out, in := rec.events[0], rec.events[1]
	assert.Equal(t, log.DirectionOut, out.Direction)
	assert.Equal(t, log.CategoryFrame, out.Category)
	assert.Equal(t, "session-1", out.SessionID)
	assert.Equal(t, []byte{0xC0, 0x01}, out.Frame.Data)
	assert.Equal(t, log.DirectionIn, in.Direction)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, in.Frame.Data)
}

func TestCaptureLogsErrors(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	rec := &recorder{}
	c := transport.NewCapture(inner, rec, "s")

	inner.EXPECT().Read(mock.Anything).Return(0, status.New("serial.read", status.Timeout)).Once()

	_, err := c.Read(make([]byte, 4))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.Timeout))

	require.Len(t, rec.events, 1)
	e := rec.events[0]
	assert.Equal(t, log.CategoryError, e.Category)
	require.NotNil(t, e.Error)
	assert.Equal(t, int(status.Timeout), *e.Error.Code)
	assert.Equal(t, "read", e.Error.Context)
}

func TestCaptureForwardsControl(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	c := transport.NewCapture(inner, nil, "s")

	inner.EXPECT().SetTimeout(time.Second).Return(nil).Once()
	inner.EXPECT().Close().Return(nil).Once()

	require.NoError(t, c.SetTimeout(time.Second))
	require.NoError(t, c.Purge(transport.DirectionAll))

	_, err := c.Ioctl(transport.IoctlSetRTS, []byte{1})
	assert.Equal(t, status.Unsupported, status.Of(err))

	require.NoError(t, c.Close())
	assert.Equal(t, transport.Transport(inner), c.Unwrap())
}

func TestCaptureLogsClose(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	rec := &recorder{}
	c := transport.NewCapture(inner, rec, "s")

	inner.EXPECT().Close().Return(nil).Once()
	require.NoError(t, c.Close())

	require.Len(t, rec.events, 1)
	require.NotNil(t, rec.events[0].StateChange)
	assert.Equal(t, log.StateEntityTransport, rec.events[0].StateChange.Entity)
	assert.Equal(t, "CLOSED", rec.events[0].StateChange.NewState)
}

package shearwater_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/divelink/divelink-go/pkg/device"
	"github.com/divelink/divelink-go/pkg/shearwater"
	"github.com/divelink/divelink-go/pkg/status"
	"github.com/divelink/divelink-go/pkg/transport"
	"github.com/divelink/divelink-go/pkg/transport/mocks"
)

var noWait = device.WithRetry(device.RetryConfig{MaxAttempts: 3})

func openSession(t *testing.T, tr transport.Transport, opts ...device.Option) *device.Session {
	t.Helper()
	s, err := device.NewSession(shearwater.Device, tr, append([]device.Option{noWait}, opts...)...)
	require.NoError(t, err)
	return s
}

func readySession(t *testing.T, sim *shearwater.Simulator, opts ...device.Option) *device.Session {
	t.Helper()
	s := openSession(t, sim, opts...)
	_, err := s.Handshake(make([]byte, 16))
	require.NoError(t, err)
	return s
}

func patternMemory() []byte {
	mem := make([]byte, shearwater.MemorySize)
	for i := range mem {
		mem[i] = byte(i * 7)
	}
	return mem
}

func TestHandshakeIdentifiesDevice(t *testing.T) {
	sim := shearwater.NewSimulator(shearwater.SimulatorConfig{Serial: "0F00BA12"})
	var events []device.Event
	s := openSession(t, sim, device.WithProgress(func(ev device.Event) { events = append(events, ev) }))

	buf := make([]byte, 16)
	n, err := s.Handshake(buf)
	require.NoError(t, err)
	assert.Equal(t, "0F00BA12", string(buf[:n]))
	assert.Equal(t, device.StateReady, s.State())
	assert.Equal(t, "Predator", s.Info().Model)
	assert.Equal(t, "0F00BA12", s.Info().Serial)
	assert.Equal(t, shearwater.Timeout, sim.Timeout())

	require.NotEmpty(t, events)
	assert.Equal(t, device.EventWaiting, events[0].Kind)
}

func TestHandshakeBufferTooSmall(t *testing.T) {
	s := openSession(t, shearwater.NewSimulator(shearwater.SimulatorConfig{}))

	_, err := s.Handshake(make([]byte, 4))
	assert.Equal(t, status.Memory, status.Of(err))
	assert.Equal(t, device.StateOpen, s.State())
}

func TestVersionReadsFirmware(t *testing.T) {
	s := openSession(t, shearwater.NewSimulator(shearwater.SimulatorConfig{Firmware: "V92"}))

	buf := make([]byte, 8)
	n, err := s.Version(buf)
	require.NoError(t, err)
	assert.Equal(t, "V92", string(buf[:n]))
	assert.Equal(t, "V92", s.Info().Firmware)

	_, err = s.Version(make([]byte, 2))
	assert.Equal(t, status.Memory, status.Of(err))
}

func TestReadAcrossBlocks(t *testing.T) {
	mem := patternMemory()
	sim := shearwater.NewSimulator(shearwater.SimulatorConfig{Memory: mem, BlockData: 0x40})
	s := readySession(t, sim)

	p := make([]byte, 0x123)
	require.NoError(t, s.Read(0x1234, p))
	assert.Equal(t, mem[0x1234:0x1234+0x123], p)
}

func TestReadOutOfRange(t *testing.T) {
	s := readySession(t, shearwater.NewSimulator(shearwater.SimulatorConfig{}))

	err := s.Read(shearwater.MemorySize-4, make([]byte, 8))
	assert.Equal(t, status.InvalidArgs, status.Of(err))
	assert.Equal(t, device.StateReady, s.State())
}

func TestReadRetriesIOFailures(t *testing.T) {
	mem := patternMemory()
	sim := shearwater.NewSimulator(shearwater.SimulatorConfig{Memory: mem})
	s := readySession(t, sim)

	sim.FailReads(2)
	p := make([]byte, 0x80)
	require.NoError(t, s.Read(0, p))
	assert.Equal(t, mem[:0x80], p)

	sim.FailReads(3)
	q := make([]byte, 0x80)
	err := s.Read(0, q)
	assert.Equal(t, status.IO, status.Of(err))
	assert.Equal(t, make([]byte, 0x80), q, "output must stay untouched on failure")
}

func TestTimeoutIsNotRetried(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().SetTimeout(shearwater.Timeout).Return(nil).Once()
	tr.EXPECT().Write(mock.Anything).RunAndReturn(func(p []byte) (int, error) {
		return len(p), nil
	}).Once()
	tr.EXPECT().Read(mock.Anything).Return(0, status.New("test.read", status.Timeout)).Once()

	s := openSession(t, tr)
	_, err := s.Handshake(make([]byte, 16))
	assert.Equal(t, status.Timeout, status.Of(err))
}

func TestNegativeResponseIsProtocolError(t *testing.T) {
	resp := transport.EncodeSLIP(nil, []byte{0x01, 0xFF, 0x04, 0x00, 0x7F, 0x22, 0x31})
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().SetTimeout(mock.Anything).Return(nil).Maybe()
	tr.EXPECT().Write(mock.Anything).RunAndReturn(func(p []byte) (int, error) {
		return len(p), nil
	}).Once()
	tr.EXPECT().Read(mock.Anything).RunAndReturn(func(p []byte) (int, error) {
		return copy(p, resp), nil
	}).Once()

	s := openSession(t, tr)
	_, err := s.Handshake(make([]byte, 16))
	assert.Equal(t, status.Protocol, status.Of(err))

	var nre *shearwater.NegativeResponseError
	require.True(t, errors.As(err, &nre))
	assert.Equal(t, uint8(0x22), nre.Service)
	assert.Equal(t, uint8(0x31), nre.Code)
}

func TestWriteIdentifier(t *testing.T) {
	sim := shearwater.NewSimulator(shearwater.SimulatorConfig{})
	s := readySession(t, sim)

	require.NoError(t, s.Write(0x9020, []byte{0x01, 0x02}))
	got, ok := sim.Identifier(0x9020)
	require.True(t, ok)
	assert.Equal(t, []byte{0x01, 0x02}, got)

	err := s.Write(0x10000, []byte{0x01})
	assert.Equal(t, status.InvalidArgs, status.Of(err))
}

func TestReadWriteBeforeHandshake(t *testing.T) {
	sim := shearwater.NewSimulator(shearwater.SimulatorConfig{})
	s := openSession(t, sim)

	assert.Equal(t, status.Protocol, status.Of(s.Read(0, make([]byte, 16))))
	assert.Equal(t, status.Protocol, status.Of(s.Write(0x9020, []byte{0x01})))
	assert.Zero(t, sim.Requests(), "nothing may reach the device before the handshake")
	_, ok := sim.Identifier(0x9020)
	assert.False(t, ok)
}

func TestDumpProgress(t *testing.T) {
	mem := patternMemory()
	sim := shearwater.NewSimulator(shearwater.SimulatorConfig{Memory: mem})
	var events []device.Event
	s := readySession(t, sim, device.WithProgress(func(ev device.Event) {
		if ev.Kind == device.EventProgress {
			events = append(events, ev)
		}
	}))

	p := make([]byte, shearwater.MemorySize)
	n, err := s.Dump(p)
	require.NoError(t, err)
	assert.Equal(t, shearwater.MemorySize, n)
	assert.True(t, bytes.Equal(mem, p))

	// one event before the first chunk, then one per 8 KiB chunk
	require.Len(t, events, 1+17)
	assert.Equal(t, uint32(0), events[0].Current)
	for i := 1; i < len(events); i++ {
		assert.Greater(t, events[i].Current, events[i-1].Current)
		assert.Equal(t, uint32(shearwater.MemorySize), events[i].Maximum)
	}
	assert.Equal(t, uint32(shearwater.MemorySize), events[len(events)-1].Current)
}

func TestDumpBufferTooSmall(t *testing.T) {
	s := readySession(t, shearwater.NewSimulator(shearwater.SimulatorConfig{}))

	_, err := s.Dump(make([]byte, shearwater.MemorySize-1))
	assert.Equal(t, status.Memory, status.Of(err))
}

func threeDives(t *testing.T) [][]byte {
	t.Helper()
	var dives [][]byte
	for i := range 3 {
		d := metricDive()
		d.Start = start.Add(time.Duration(i) * 24 * time.Hour)
		d.Records = append(d.Records, make([]shearwater.Record, 8*(i+1))...)
		data, err := shearwater.EncodeDive(d)
		require.NoError(t, err)
		dives = append(dives, data)
	}
	return dives
}

func TestForeachNewestFirst(t *testing.T) {
	dives := threeDives(t)
	sim, err := shearwater.NewSimulatorWithDives(shearwater.SimulatorConfig{}, dives...)
	require.NoError(t, err)
	s := readySession(t, sim)

	var got [][]byte
	var fps [][]byte
	require.NoError(t, s.Foreach(func(data, fp []byte) bool {
		got = append(got, data)
		fps = append(fps, fp)
		return true
	}))

	require.Len(t, got, 3)
	for i := range got {
		want := dives[len(dives)-1-i]
		assert.Equal(t, want, got[i])
		assert.Equal(t, want[12:16], fps[i])
	}
}

func TestForeachStopsAtFingerprint(t *testing.T) {
	dives := threeDives(t)
	sim, err := shearwater.NewSimulatorWithDives(shearwater.SimulatorConfig{}, dives...)
	require.NoError(t, err)
	s := readySession(t, sim, device.WithFingerprint(shearwater.Fingerprint(dives[1])))

	var got int
	require.NoError(t, s.Foreach(func([]byte, []byte) bool { got++; return true }))
	assert.Equal(t, 1, got)
}

func TestForeachEarlyStop(t *testing.T) {
	sim, err := shearwater.NewSimulatorWithDives(shearwater.SimulatorConfig{}, threeDives(t)...)
	require.NoError(t, err)
	s := readySession(t, sim)

	var got int
	require.NoError(t, s.Foreach(func([]byte, []byte) bool { got++; return false }))
	assert.Equal(t, 1, got)
}

type otherBackend struct{ device.Unimplemented }

func (otherBackend) Type() device.Type { return device.TypeSuuntoVyper }

func TestDeviceRejectsForeignSession(t *testing.T) {
	s, err := device.NewSession(otherBackend{}, shearwater.NewSimulator(shearwater.SimulatorConfig{}))
	require.NoError(t, err)

	_, err = shearwater.Device.Handshake(s, make([]byte, 16))
	assert.Equal(t, status.TypeMismatch, status.Of(err))
	assert.Equal(t, status.TypeMismatch, status.Of(shearwater.Device.Read(s, 0, make([]byte, 1))))
}

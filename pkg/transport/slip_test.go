package transport

import (
	"bytes"
	"errors"
	"testing"

	"github.com/divelink/divelink-go/pkg/status"
)

func TestEncodeSLIP(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"plain", []byte{0x01, 0x02}, []byte{0x01, 0x02, SLIPEnd}},
		{"end", []byte{SLIPEnd}, []byte{SLIPEsc, SLIPEscEnd, SLIPEnd}},
		{"esc", []byte{SLIPEsc}, []byte{SLIPEsc, SLIPEscEsc, SLIPEnd}},
		{"mixed", []byte{0xFF, SLIPEnd, 0x00, SLIPEsc}, []byte{0xFF, SLIPEsc, SLIPEscEnd, 0x00, SLIPEsc, SLIPEscEsc, SLIPEnd}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeSLIP(nil, tt.in); !bytes.Equal(got, tt.want) {
				t.Errorf("got % x, want % x", got, tt.want)
			}
		})
	}
}

func TestSLIPFramerRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{0xFF, 0x01, 0x04, 0x00, 0x22, 0x80, 0x10},
		{SLIPEnd, SLIPEsc, SLIPEnd},
		bytes.Repeat([]byte{SLIPEsc}, 300),
		{0x42},
	}

	bt := &bufTransport{chunk: 7}
	w := NewSLIPWriter(bt)
	for _, p := range payloads {
		if err := w.WriteFrame(p); err != nil {
			t.Fatalf("WriteFrame failed: %v", err)
		}
	}

	bt.in.Write(bt.out.Bytes())
	r := NewSLIPReader(bt)
	for i, want := range payloads {
		got, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: ReadFrame failed: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("frame %d: got %d bytes, want %d bytes", i, len(got), len(want))
		}
	}

	if _, err := r.ReadFrame(); status.Of(err) != status.Timeout {
		t.Errorf("read past end: got %v, want TIMEOUT", err)
	}
}

func TestSLIPReaderSkipsEmptyFrames(t *testing.T) {
	bt := &bufTransport{}
	bt.in.Write([]byte{SLIPEnd, SLIPEnd, 0x01, 0x02, SLIPEnd})

	got, err := NewSLIPReader(bt).ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02}) {
		t.Errorf("got % x, want 01 02", got)
	}
}

func TestSLIPReaderUnknownEscapeKeepsByte(t *testing.T) {
	bt := &bufTransport{}
	bt.in.Write([]byte{SLIPEsc, 0x41, SLIPEnd})

	got, err := NewSLIPReader(bt).ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if !bytes.Equal(got, []byte{0x41}) {
		t.Errorf("got % x, want 41", got)
	}
}

func TestSLIPFrameLimits(t *testing.T) {
	bt := &bufTransport{}
	f := NewSLIPFramerWithMaxSize(bt, 4)

	if err := f.WriteFrame(nil); !errors.Is(err, ErrFrameEmpty) {
		t.Errorf("empty frame: got %v, want ErrFrameEmpty", err)
	}
	err := f.WriteFrame(make([]byte, 5))
	if !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("large frame: got %v, want ErrFrameTooLarge", err)
	}

	bt.in.Write([]byte{1, 2, 3, 4, 5, SLIPEnd})
	_, err = f.ReadFrame()
	if !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("large inbound frame: got %v, want ErrFrameTooLarge", err)
	}
	if status.Of(err) != status.Protocol {
		t.Errorf("large inbound frame status: got %v, want PROTOCOL", status.Of(err))
	}
}

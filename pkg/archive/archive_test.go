package archive

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/divelink/divelink-go/pkg/device"
)

var info = device.Info{Model: "Predator", Firmware: "V71", Serial: "1A2B3C4D"}

func TestArchiveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dives.dca")
	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dives := [][]byte{{0xFF, 0xFF, 1}, {0xFF, 0xFF, 2}}
	for i, d := range dives {
		rec := NewRecord(device.TypeShearwaterPredator, info, d, []byte{0, 0, 0, byte(i)})
		if err := w.Append(rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	if w.Count() != 2 {
		t.Errorf("Count: got %d, want 2", w.Count())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	if r.Header().Version != Version {
		t.Errorf("Version: got %d, want %d", r.Header().Version, Version)
	}

	recs, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records: got %d, want 2", len(recs))
	}
	for i, rec := range recs {
		if !bytes.Equal(rec.Data, dives[i]) {
			t.Errorf("record %d Data: got % X, want % X", i, rec.Data, dives[i])
		}
		if rec.Fingerprint[3] != byte(i) {
			t.Errorf("record %d Fingerprint: got % X", i, rec.Fingerprint)
		}
		if rec.ID == "" {
			t.Errorf("record %d: empty ID", i)
		}
		if rec.DownloadedAt.IsZero() {
			t.Errorf("record %d: zero DownloadedAt", i)
		}
		if rec.Serial != info.Serial || rec.Model != info.Model || rec.Firmware != info.Firmware {
			t.Errorf("record %d: got %+v", i, rec)
		}
		typ, err := rec.Type()
		if err != nil || typ != device.TypeShearwaterPredator {
			t.Errorf("record %d Type: got %v, %v", i, typ, err)
		}
	}
	if recs[0].ID == recs[1].ID {
		t.Error("records share an ID")
	}
}

func TestAppendKeepsGivenFields(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := w.Append(Record{ID: "fixed", Device: "predator", DownloadedAt: at, Data: []byte{1}}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	rec, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if rec.ID != "fixed" || !rec.DownloadedAt.Equal(at) {
		t.Errorf("record: got %+v", rec)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("Next at end: got %v, want io.EOF", err)
	}
}

func TestAppendAfterClose(t *testing.T) {
	w, err := NewWriter(io.Discard)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Append(Record{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Append: got %v, want ErrClosed", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestReaderRejectsForeignStream(t *testing.T) {
	var buf bytes.Buffer
	if err := encMode.NewEncoder(&buf).Encode(Header{Magic: "something-else", Version: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := NewReader(&buf); !errors.Is(err, ErrNotArchive) {
		t.Errorf("NewReader: got %v, want ErrNotArchive", err)
	}

	if _, err := NewReader(bytes.NewReader(nil)); !errors.Is(err, ErrNotArchive) {
		t.Errorf("NewReader(empty): got %v, want ErrNotArchive", err)
	}
}

func TestOpenAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dives.dca")

	for i := 0; i < 2; i++ {
		w, err := OpenAppend(path)
		if err != nil {
			t.Fatalf("OpenAppend %d failed: %v", i, err)
		}
		if err := w.Append(NewRecord(device.TypeShearwaterPredator, info, []byte{byte(i)}, nil)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()
	recs, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(recs) != 2 || recs[0].Data[0] != 0 || recs[1].Data[0] != 1 {
		t.Errorf("records: got %+v", recs)
	}
}

func TestOpenAppendRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not an archive"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenAppend(path); !errors.Is(err, ErrNotArchive) {
		t.Errorf("OpenAppend: got %v, want ErrNotArchive", err)
	}
}

package persistence

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/divelink/divelink-go/pkg/device"
)

var predator = device.Info{Model: "Predator", Firmware: "V71", Serial: "1A2B3C4D"}

func TestFingerprintStore(t *testing.T) {
	t.Run("LoadNonExistent", func(t *testing.T) {
		store := NewFingerprintStore(filepath.Join(t.TempDir(), "nonexistent.json"))

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got == nil || len(got.Devices) != 0 {
			t.Errorf("Load() = %v, want empty state", got)
		}
	})

	t.Run("NoFingerprint", func(t *testing.T) {
		store := NewFingerprintStore(filepath.Join(t.TempDir(), "state.json"))

		fp, err := store.Fingerprint(device.TypeShearwaterPredator, predator.Serial)
		if err != nil {
			t.Fatalf("Fingerprint() error = %v", err)
		}
		if fp != nil {
			t.Errorf("Fingerprint() = %x, want nil", fp)
		}
	})

	t.Run("RecordAndRead", func(t *testing.T) {
		store := NewFingerprintStore(filepath.Join(t.TempDir(), "sub", "state.json"))
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return now }

		if err := store.Record(device.TypeShearwaterPredator, predator, []byte{0x65, 0xEC, 0x1A, 0x00}, 3); err != nil {
			t.Fatalf("Record() error = %v", err)
		}

		fp, err := store.Fingerprint(device.TypeShearwaterPredator, predator.Serial)
		if err != nil {
			t.Fatalf("Fingerprint() error = %v", err)
		}
		if !bytes.Equal(fp, []byte{0x65, 0xEC, 0x1A, 0x00}) {
			t.Errorf("Fingerprint() = %x", fp)
		}

		state, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		rec := state.Devices["shearwater-predator/1A2B3C4D"]
		if rec.Model != "Predator" || rec.Firmware != "V71" {
			t.Errorf("record = %+v", rec)
		}
		if rec.DiveCount != 3 {
			t.Errorf("DiveCount = %d, want 3", rec.DiveCount)
		}
		if !rec.LastDownload.Equal(now) {
			t.Errorf("LastDownload = %v, want %v", rec.LastDownload, now)
		}
		if state.Version != StateVersion {
			t.Errorf("Version = %d, want %d", state.Version, StateVersion)
		}
	})

	t.Run("EmptyFingerprintKeepsStored", func(t *testing.T) {
		store := NewFingerprintStore(filepath.Join(t.TempDir(), "state.json"))

		if err := store.Record(device.TypeShearwaterPredator, predator, []byte{1, 2, 3, 4}, 2); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if err := store.Record(device.TypeShearwaterPredator, predator, nil, 0); err != nil {
			t.Fatalf("Record() error = %v", err)
		}

		fp, _ := store.Fingerprint(device.TypeShearwaterPredator, predator.Serial)
		if !bytes.Equal(fp, []byte{1, 2, 3, 4}) {
			t.Errorf("Fingerprint() = %x, want 01020304", fp)
		}
		state, _ := store.Load()
		if got := state.Devices[DeviceKey(device.TypeShearwaterPredator, predator.Serial)].DiveCount; got != 2 {
			t.Errorf("DiveCount = %d, want 2", got)
		}
	})

	t.Run("DevicesAreSeparate", func(t *testing.T) {
		store := NewFingerprintStore(filepath.Join(t.TempDir(), "state.json"))
		other := predator
		other.Serial = "99999999"

		_ = store.Record(device.TypeShearwaterPredator, predator, []byte{1}, 1)
		_ = store.Record(device.TypeShearwaterPredator, other, []byte{2}, 1)

		fp, _ := store.Fingerprint(device.TypeShearwaterPredator, other.Serial)
		if !bytes.Equal(fp, []byte{2}) {
			t.Errorf("Fingerprint(other) = %x, want 02", fp)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		store := NewFingerprintStore(path)
		_ = store.Record(device.TypeShearwaterPredator, predator, []byte{1}, 1)

		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("state file still exists: %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Errorf("second Clear() error = %v", err)
		}
	})

	t.Run("CorruptFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFingerprintStore(path).Load(); err == nil {
			t.Error("Load() expected error for corrupt file")
		}
	})

	t.Run("FutureVersion", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		if err := os.WriteFile(path, []byte(`{"version": 9}`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFingerprintStore(path).Load(); err == nil {
			t.Error("Load() expected error for future version")
		}
	})
}

func TestSaveReplacesFileAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	store := NewFingerprintStore(path)

	for i := 1; i <= 2; i++ {
		if err := store.Record(device.TypeShearwaterPredator, predator, []byte{byte(i)}, 1); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "state.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory: got %v, want only state.json", names)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("mode: got %v, want 0644", info.Mode().Perm())
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rec := got.Devices[DeviceKey(device.TypeShearwaterPredator, predator.Serial)]; rec.DiveCount != 2 || rec.Fingerprint != "02" {
		t.Errorf("record: got %+v", rec)
	}
}

func TestSaveFailureKeepsPreviousState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	store := NewFingerprintStore(path)
	if err := store.Record(device.TypeShearwaterPredator, predator, []byte{0x01}, 1); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// A directory in the way of the rename target.
	blocked := NewFingerprintStore(filepath.Join(dir, "blocked"))
	if err := os.Mkdir(filepath.Join(dir, "blocked"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "blocked", "x"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := blocked.Save(&State{Devices: map[string]DeviceRecord{}}); err == nil {
		t.Error("Save() over a non-empty directory succeeded")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("state file changed after a failed save")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("directory: got %d entries, want state.json and blocked", len(entries))
	}
}

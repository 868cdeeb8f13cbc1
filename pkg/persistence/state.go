package persistence

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/divelink/divelink-go/pkg/device"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// State is the content of the state file.
type State struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Devices is keyed by DeviceKey.
	Devices map[string]DeviceRecord `json:"devices,omitempty"`
}

// DeviceRecord is the download state of one dive computer.
type DeviceRecord struct {
	// Type is the family name.
	Type string `json:"type"`

	Serial   string `json:"serial"`
	Model    string `json:"model,omitempty"`
	Firmware string `json:"firmware,omitempty"`

	// Fingerprint of the newest downloaded dive, hex encoded.
	Fingerprint string `json:"fingerprint,omitempty"`

	// LastDownload is when dives were last downloaded.
	LastDownload time.Time `json:"last_download,omitempty"`

	// DiveCount is the number of dives downloaded in total.
	DiveCount int `json:"dive_count,omitempty"`
}

// DeviceKey identifies a dive computer in the state file.
func DeviceKey(t device.Type, serial string) string {
	return t.String() + "/" + serial
}

// FingerprintStore manages the state file.
type FingerprintStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFingerprintStore creates a store backed by the file at path.
func NewFingerprintStore(path string) *FingerprintStore {
	return &FingerprintStore{path: path, now: time.Now}
}

// Path returns the state file path.
func (s *FingerprintStore) Path() string { return s.path }

// Save persists the state to disk.
func (s *FingerprintStore) Save(state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(state)
}

func (s *FingerprintStore) save(state *State) error {
	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	state.SavedAt = s.now()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return writeFileAtomic(s.path, data, 0644)
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer os.Remove(name) // no-op after rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(name, perm); err != nil {
		return err
	}
	return os.Rename(name, path)
}

// Load reads the state from disk.
// Returns an empty state if the file doesn't exist.
func (s *FingerprintStore) Load() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FingerprintStore) load() (*State, error) {
	state := &State{Devices: make(map[string]DeviceRecord)}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return state, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if state.Version > StateVersion {
		return nil, fmt.Errorf("%s: unsupported state version %d", s.path, state.Version)
	}
	if state.Devices == nil {
		state.Devices = make(map[string]DeviceRecord)
	}
	return state, nil
}

// Clear removes the state file.
func (s *FingerprintStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Fingerprint returns the stored fingerprint for a dive computer, or nil
// if none is stored.
func (s *FingerprintStore) Fingerprint(t device.Type, serial string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	rec, ok := state.Devices[DeviceKey(t, serial)]
	if !ok || rec.Fingerprint == "" {
		return nil, nil
	}
	fp, err := hex.DecodeString(rec.Fingerprint)
	if err != nil {
		return nil, fmt.Errorf("fingerprint for %s: %w", DeviceKey(t, serial), err)
	}
	return fp, nil
}

// Record stores the result of a download: the fingerprint of the newest
// dive and the number of new dives. An empty fingerprint keeps the stored
// one, so a download without new dives does not reset the state.
func (s *FingerprintStore) Record(t device.Type, info device.Info, fingerprint []byte, dives int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}

	key := DeviceKey(t, info.Serial)
	rec := state.Devices[key]
	rec.Type = t.String()
	rec.Serial = info.Serial
	if info.Model != "" {
		rec.Model = info.Model
	}
	if info.Firmware != "" {
		rec.Firmware = info.Firmware
	}
	if len(fingerprint) > 0 {
		rec.Fingerprint = hex.EncodeToString(fingerprint)
	}
	rec.LastDownload = s.now()
	rec.DiveCount += dives
	state.Devices[key] = rec

	return s.save(state)
}

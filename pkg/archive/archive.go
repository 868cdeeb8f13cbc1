package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/divelink/divelink-go/pkg/device"
)

// Magic identifies archive files.
const Magic = "divelink-archive"

// Version is the current archive format version.
const Version = 1

// Archive errors.
var (
	// ErrClosed indicates the writer has been closed.
	ErrClosed = errors.New("archive closed")

	// ErrNotArchive indicates the stream does not start with an archive header.
	ErrNotArchive = errors.New("not a divelink archive")
)

// Header is the first item of an archive.
type Header struct {
	Magic     string    `cbor:"1,keyasint"`
	Version   int       `cbor:"2,keyasint"`
	CreatedAt time.Time `cbor:"3,keyasint"`
}

// Record is one downloaded dive.
type Record struct {
	// ID is assigned by Writer.Append when empty.
	ID string `cbor:"1,keyasint"`

	// Device is the family name, see device.ParseType.
	Device   string `cbor:"2,keyasint"`
	Model    string `cbor:"3,keyasint,omitempty"`
	Serial   string `cbor:"4,keyasint,omitempty"`
	Firmware string `cbor:"5,keyasint,omitempty"`

	Fingerprint []byte `cbor:"6,keyasint,omitempty"`

	// DownloadedAt is set by Writer.Append when zero.
	DownloadedAt time.Time `cbor:"7,keyasint"`

	// Data is the raw dive.
	Data []byte `cbor:"8,keyasint"`
}

// NewRecord creates a record for a dive downloaded from a session.
func NewRecord(t device.Type, info device.Info, data, fingerprint []byte) Record {
	return Record{
		Device:      t.String(),
		Model:       info.Model,
		Serial:      info.Serial,
		Firmware:    info.Firmware,
		Fingerprint: append([]byte(nil), fingerprint...),
		Data:        append([]byte(nil), data...),
	}
}

// Type returns the record's device family.
func (r Record) Type() (device.Type, error) {
	return device.ParseType(r.Device)
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("archive: encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("archive: decoder mode: %v", err))
	}
}

// Writer appends records to an archive.
// It is safe for concurrent use from multiple goroutines.
type Writer struct {
	mu      sync.Mutex
	encoder *cbor.Encoder
	closer  io.Closer
	closed  bool
	count   int
	now     func() time.Time
}

// Create creates or truncates the archive at path.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// OpenAppend opens the archive at path for appending, creating it when it
// does not exist or is empty. An existing file must start with a valid
// archive header.
func OpenAppend(path string) (*Writer, error) {
	fi, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && fi.Size() == 0) {
		return Create(path)
	}
	if err != nil {
		return nil, err
	}

	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	r.Close()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return nil, err
	}
	return &Writer{encoder: encMode.NewEncoder(f), closer: f, now: time.Now}, nil
}

// NewWriter writes the archive header to w. Close does not close w.
func NewWriter(w io.Writer) (*Writer, error) {
	aw := &Writer{encoder: encMode.NewEncoder(w), now: time.Now}
	hdr := Header{Magic: Magic, Version: Version, CreatedAt: aw.now().UTC()}
	if err := aw.encoder.Encode(hdr); err != nil {
		return nil, fmt.Errorf("write archive header: %w", err)
	}
	return aw, nil
}

// Append writes one record.
func (w *Writer) Append(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.DownloadedAt.IsZero() {
		rec.DownloadedAt = w.now().UTC()
	}
	if err := w.encoder.Encode(rec); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	w.count++
	return nil
}

// Count returns the number of records appended.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close closes the underlying file. It is safe to call Close multiple times.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// Reader streams the records of an archive.
type Reader struct {
	decoder *cbor.Decoder
	closer  io.Closer
	header  Header
}

// Open opens the archive at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader reads and validates the archive header from r.
func NewReader(r io.Reader) (*Reader, error) {
	ar := &Reader{decoder: decMode.NewDecoder(r)}
	if err := ar.decoder.Decode(&ar.header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArchive, err)
	}
	if ar.header.Magic != Magic {
		return nil, ErrNotArchive
	}
	if ar.header.Version > Version {
		return nil, fmt.Errorf("unsupported archive version %d", ar.header.Version)
	}
	return ar, nil
}

// Header returns the archive header.
func (r *Reader) Header() Header { return r.header }

// Next returns the next record, or io.EOF at the end of the archive.
func (r *Reader) Next() (Record, error) {
	var rec Record
	if err := r.decoder.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("read record: %w", err)
	}
	return rec, nil
}

// ReadAll returns the remaining records.
func (r *Reader) ReadAll() ([]Record, error) {
	var out []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

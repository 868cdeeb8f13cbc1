package parser

import (
	"time"

	"github.com/divelink/divelink-go/pkg/device"
	"github.com/divelink/divelink-go/pkg/status"
)

// Backend decodes the dive format of one family.
//
// The Session has already checked that it is live and that its buffer is at
// least MinSize bytes long before any decoding method runs.
type Backend interface {
	// Family returns the device family whose dives the backend decodes.
	Family() device.Type

	// MinSize is the smallest buffer the format can describe.
	MinSize() int

	// SetData is called before a new buffer is bound. An error keeps the
	// previous buffer; backends may validate or ignore data.
	SetData(s *Session, data []byte) error

	// DateTime returns the dive start in s.Location().
	DateTime(s *Session) (time.Time, error)

	// Field returns the value of ft. index selects the slot for indexed
	// fields (GasMix, Tank). Unknown fields fail with status.Unsupported.
	Field(s *Session, ft FieldType, index int) (Value, error)

	// Supports reports whether Field can decode ft.
	Supports(ft FieldType) bool

	// Samples makes one forward pass over the profile.
	Samples(s *Session, fn SampleFunc) error
}

// Check is the dispatch guard run by every backend operation.
func Check(s *Session, family device.Type) error {
	if s == nil || s.backend == nil {
		return status.New("parser.check", status.InvalidArgs)
	}
	if s.backend.Family() != family {
		return status.Errorf("parser.check", status.InvalidArgs, "session is %s, backend is %s", s.backend.Family(), family)
	}
	return nil
}

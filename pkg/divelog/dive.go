package divelog

import (
	"errors"
	"fmt"
	"time"

	"github.com/divelink/divelink-go/pkg/parser"
	"github.com/divelink/divelink-go/pkg/status"
)

// Dive is one decoded dive.
type Dive struct {
	Device      string        `json:"device"`
	Start       time.Time     `json:"start"`
	Duration    time.Duration `json:"duration_ns,omitempty"`
	MaxDepth    float64       `json:"max_depth_m,omitempty"`
	GasMixes    []GasMix      `json:"gas_mixes,omitempty"`
	Salinity    *Salinity     `json:"salinity,omitempty"`
	Atmospheric float64       `json:"atmospheric_bar,omitempty"`
	Fingerprint string        `json:"fingerprint,omitempty"`
	Profile     []Point       `json:"profile"`
}

// GasMix holds fractions in [0, 1].
type GasMix struct {
	Oxygen   float64 `json:"o2"`
	Helium   float64 `json:"he"`
	Nitrogen float64 `json:"n2"`
}

// Salinity is the water type and density in kg/m³.
type Salinity struct {
	Water   string  `json:"water"`
	Density float64 `json:"density"`
}

// Point is one profile record.
type Point struct {
	Time        time.Duration `json:"time_ns"`
	Depth       float64       `json:"depth_m"`
	Temperature *float64      `json:"temperature_c,omitempty"`
	Events      []Event       `json:"events,omitempty"`
}

// Event is a profile event with its packed value.
type Event struct {
	Type  string `json:"type"`
	Value uint32 `json:"value"`
}

// Build decodes the buffer bound to s. Fields the backend does not support
// are left at their zero value.
func Build(s *parser.Session) (*Dive, error) {
	start, err := s.DateTime()
	if err != nil {
		return nil, fmt.Errorf("divelog: datetime: %w", err)
	}
	d := &Dive{
		Device: s.Backend().Family().String(),
		Start:  start,
	}
	if err := d.fields(s); err != nil {
		return nil, err
	}
	if err := d.samples(s); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dive) fields(s *parser.Session) error {
	for _, ft := range []parser.FieldType{parser.FieldDiveTime, parser.FieldMaxDepth, parser.FieldSalinity, parser.FieldAtmospheric, parser.FieldGasMixCount} {
		if !s.Supports(ft) {
			continue
		}
		v, err := field(s, ft, 0)
		if err != nil {
			return err
		}
		switch v := v.(type) {
		case nil:
		case parser.DiveTime:
			d.Duration = v.Duration
		case parser.MaxDepth:
			d.MaxDepth = v.Meters
		case parser.Salinity:
			d.Salinity = &Salinity{Water: v.Water.String(), Density: v.Density}
		case parser.Atmospheric:
			d.Atmospheric = v.Bar
		case parser.GasMixCount:
			if err := d.gasMixes(s, v.Count); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Dive) gasMixes(s *parser.Session, n int) error {
	if !s.Supports(parser.FieldGasMix) {
		return nil
	}
	for i := 0; i < n; i++ {
		v, err := field(s, parser.FieldGasMix, i)
		if err != nil {
			return err
		}
		if mix, ok := v.(parser.GasMix); ok {
			d.GasMixes = append(d.GasMixes, GasMix{Oxygen: mix.Oxygen, Helium: mix.Helium, Nitrogen: mix.Nitrogen})
		}
	}
	return nil
}

// field treats UNSUPPORTED as an absent value.
func field(s *parser.Session, ft parser.FieldType, index int) (parser.Value, error) {
	v, err := s.Field(ft, index)
	if errors.Is(err, status.Unsupported) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("divelog: field %s: %w", ft, err)
	}
	return v, nil
}

func (d *Dive) samples(s *parser.Session) error {
	d.Profile = []Point{}
	var cur *Point
	err := s.Samples(func(sample parser.Sample) bool {
		if ts, ok := sample.(parser.TimeSample); ok {
			d.Profile = append(d.Profile, Point{Time: ts.Offset})
			cur = &d.Profile[len(d.Profile)-1]
			return true
		}
		if cur == nil {
			// Samples before the first time sample have no point.
			return true
		}
		switch v := sample.(type) {
		case parser.DepthSample:
			cur.Depth = v.Meters
		case parser.TemperatureSample:
			c := v.Celsius
			cur.Temperature = &c
		case parser.EventSample:
			cur.Events = append(cur.Events, Event{Type: v.Event.EventType().String(), Value: v.Event.Value()})
		}
		return true
	})
	if err != nil {
		return fmt.Errorf("divelog: samples: %w", err)
	}
	return nil
}

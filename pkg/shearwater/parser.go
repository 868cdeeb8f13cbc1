package shearwater

import (
	"time"

	"github.com/divelink/divelink-go/pkg/device"
	"github.com/divelink/divelink-go/pkg/parser"
	"github.com/divelink/divelink-go/pkg/status"
)

// Parser decodes Predator dives.
var Parser parser.Backend = predatorParser{}

type predatorParser struct{}

// units is read once per query and passed to every conversion.
type units uint8

func unitsOf(data []byte) units {
	return units(data[offUnits])
}

func (u units) depth(raw float64) float64 {
	if u == unitsImperial {
		return raw * feet
	}
	return raw
}

func (u units) temperature(raw uint8) float64 {
	if u == unitsImperial {
		return (float64(raw) - 32.0) * (5.0 / 9.0)
	}
	return float64(raw)
}

func (u units) stopDepth(raw uint16) uint16 {
	if u == unitsImperial {
		return uint16(float64(raw)*feet + 0.5)
	}
	return raw
}

func (predatorParser) Family() device.Type { return device.TypeShearwaterPredator }

func (predatorParser) MinSize() int { return MinDiveSize }

func (predatorParser) SetData(s *parser.Session, _ []byte) error {
	return parser.Check(s, device.TypeShearwaterPredator)
}

// checkData is the guard shared by every query.
func checkData(s *parser.Session, op string) ([]byte, error) {
	if err := parser.Check(s, device.TypeShearwaterPredator); err != nil {
		return nil, err
	}
	data := s.Data()
	if len(data) < MinDiveSize {
		return nil, status.Errorf(op, status.DataFormat, "dive is %d bytes, need %d", len(data), MinDiveSize)
	}
	return data, nil
}

func (predatorParser) DateTime(s *parser.Session) (time.Time, error) {
	data, err := checkData(s, "shearwater.datetime")
	if err != nil {
		return time.Time{}, err
	}
	ticks := be32(data, offTicks)
	return time.Unix(int64(ticks), 0).In(s.Location()), nil
}

func (predatorParser) Supports(ft parser.FieldType) bool {
	switch ft {
	case parser.FieldDiveTime, parser.FieldMaxDepth, parser.FieldGasMixCount,
		parser.FieldGasMix, parser.FieldSalinity, parser.FieldAtmospheric:
		return true
	default:
		return false
	}
}

func (predatorParser) Field(s *parser.Session, ft parser.FieldType, index int) (parser.Value, error) {
	const op = "shearwater.field"
	data, err := checkData(s, op)
	if err != nil {
		return nil, err
	}
	u := unitsOf(data)
	foot := footer(data)

	switch ft {
	case parser.FieldDiveTime:
		minutes := be16(foot, offDiveTime)
		return parser.DiveTime{Duration: time.Duration(minutes) * time.Minute}, nil
	case parser.FieldMaxDepth:
		return parser.MaxDepth{Meters: u.depth(float64(be16(foot, offMaxDepth)))}, nil
	case parser.FieldGasMixCount:
		return parser.GasMixCount{Count: GasMixCount}, nil
	case parser.FieldGasMix:
		if index < 0 || index >= GasMixCount {
			return nil, status.Errorf(op, status.InvalidArgs, "gas mix %d out of range", index)
		}
		o2 := float64(data[offOxygen+index]) / 100.0
		he := float64(data[offHelium+index]) / 100.0
		return parser.GasMix{Oxygen: o2, Helium: he, Nitrogen: 1.0 - o2 - he}, nil
	case parser.FieldSalinity:
		density := be16(data, offDensity)
		water := parser.WaterSalt
		if density == 1000 {
			water = parser.WaterFresh
		}
		return parser.Salinity{Water: water, Density: float64(density)}, nil
	case parser.FieldAtmospheric:
		return parser.Atmospheric{Bar: float64(be16(data, offAtmospheric)) / 1000.0}, nil
	default:
		return nil, status.Errorf(op, status.Unsupported, "field %s", ft)
	}
}

func (predatorParser) Samples(s *parser.Session, fn parser.SampleFunc) error {
	data, err := checkData(s, "shearwater.samples")
	if err != nil {
		return err
	}
	u := unitsOf(data)

	var elapsed time.Duration
	for offset := BlockSize; offset+BlockSize < len(data); offset += SampleSize {
		rec := data[offset : offset+SampleSize]
		if isZero(rec) {
			continue
		}

		elapsed += 10 * time.Second
		if !fn(parser.TimeSample{Offset: elapsed}) {
			return nil
		}
		if !fn(parser.DepthSample{Meters: u.depth(float64(be16(rec, offDepth))) / 10.0}) {
			return nil
		}
		if !fn(parser.TemperatureSample{Celsius: u.temperature(rec[offTemperature])}) {
			return nil
		}

		gas := parser.GasChange{Oxygen: rec[offGasOxygen], Helium: rec[offGasHelium]}
		if !fn(parser.EventSample{Event: gas}) {
			return nil
		}

		stopTime := time.Duration(rec[offStopTime]) * time.Minute
		var ev parser.Event
		if deco := be16(rec, offDecoStop); deco != 0 {
			ev = parser.DecoStop{Depth: u.stopDepth(deco), Time: stopTime}
		} else {
			ev = parser.NDL{Time: stopTime}
		}
		if !fn(parser.EventSample{Event: ev}) {
			return nil
		}
	}
	return nil
}

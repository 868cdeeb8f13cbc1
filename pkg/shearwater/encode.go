package shearwater

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/divelink/divelink-go/pkg/status"
)

// Mix is a gas mix in percent.
type Mix struct {
	Oxygen uint8
	Helium uint8
}

// Record is one raw profile record. Lengths are in the dive's units:
// meters or feet, depth in tenths.
type Record struct {
	Depth       uint16
	DecoDepth   uint16
	StopTime    uint8 // minutes; NDL when DecoDepth is zero
	Oxygen      uint8
	Helium      uint8
	Temperature uint8 // °C or °F
}

// Dive describes a dive for EncodeDive.
type Dive struct {
	Start    time.Time
	Imperial bool
	Mixes    [GasMixCount]Mix

	// SurfacePressure in mbar.
	SurfacePressure uint16

	// Density of the water in kg/m³; 1000 is fresh water.
	Density uint16

	MaxDepth uint16 // meters or feet
	DiveTime uint16 // minutes

	// Records in order. A zero Record is stored as padding.
	Records []Record
}

// EncodeDive serializes d in the Predator dive layout. The profile is
// padded with zero records to a whole block.
func EncodeDive(d Dive) ([]byte, error) {
	const op = "shearwater.encode"
	ticks := d.Start.Unix()
	if ticks < 0 || ticks > math.MaxUint32 {
		return nil, status.Errorf(op, status.InvalidArgs, "start time %v out of range", d.Start)
	}

	profile := len(d.Records) * SampleSize
	if rem := profile % BlockSize; rem != 0 {
		profile += BlockSize - rem
	}
	if 2*BlockSize+profile > ProfileSize {
		return nil, status.Errorf(op, status.InvalidArgs, "%d records do not fit the profile area", len(d.Records))
	}
	buf := make([]byte, 2*BlockSize+profile)

	hdr := buf[:BlockSize]
	binary.BigEndian.PutUint16(hdr, headerMarker)
	if d.Imperial {
		hdr[offUnits] = unitsImperial
	} else {
		hdr[offUnits] = unitsMetric
	}
	binary.BigEndian.PutUint32(hdr[offTicks:], uint32(ticks))
	for i, m := range d.Mixes {
		hdr[offOxygen+i] = m.Oxygen
		hdr[offHelium+i] = m.Helium
	}
	binary.BigEndian.PutUint16(hdr[offAtmospheric:], d.SurfacePressure)
	binary.BigEndian.PutUint16(hdr[offDensity:], d.Density)

	for i, r := range d.Records {
		rec := buf[BlockSize+i*SampleSize:][:SampleSize]
		binary.BigEndian.PutUint16(rec[offDepth:], r.Depth)
		binary.BigEndian.PutUint16(rec[offDecoStop:], r.DecoDepth)
		rec[offGasOxygen] = r.Oxygen
		rec[offGasHelium] = r.Helium
		rec[offStopTime] = r.StopTime
		rec[offTemperature] = r.Temperature
	}

	foot := footer(buf)
	binary.BigEndian.PutUint16(foot, footerMarker)
	binary.BigEndian.PutUint16(foot[offMaxDepth:], d.MaxDepth)
	binary.BigEndian.PutUint16(foot[offDiveTime:], d.DiveTime)
	return buf, nil
}

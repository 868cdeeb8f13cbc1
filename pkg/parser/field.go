package parser

import (
	"fmt"
	"time"
)

// FieldType selects a dive summary field.
type FieldType uint8

const (
	FieldDiveTime FieldType = iota
	FieldMaxDepth
	FieldGasMixCount
	FieldGasMix
	FieldSalinity
	FieldAtmospheric
	FieldAvgDepth
	FieldTankCount
	FieldTank
	FieldTemperatureSurface
	FieldTemperatureMinimum
	FieldTemperatureMaximum
	FieldDiveMode
)

var fieldNames = [...]string{
	FieldDiveTime:           "divetime",
	FieldMaxDepth:           "maxdepth",
	FieldGasMixCount:        "gasmix_count",
	FieldGasMix:             "gasmix",
	FieldSalinity:           "salinity",
	FieldAtmospheric:        "atmospheric",
	FieldAvgDepth:           "avgdepth",
	FieldTankCount:          "tank_count",
	FieldTank:               "tank",
	FieldTemperatureSurface: "temperature_surface",
	FieldTemperatureMinimum: "temperature_minimum",
	FieldTemperatureMaximum: "temperature_maximum",
	FieldDiveMode:           "divemode",
}

// String returns the field name.
func (f FieldType) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("FieldType(%d)", uint8(f))
}

// FieldTypes returns every field type in declaration order.
func FieldTypes() []FieldType {
	out := make([]FieldType, len(fieldNames))
	for i := range out {
		out[i] = FieldType(i)
	}
	return out
}

// Value is a decoded field. The concrete type is determined by the
// FieldType: DiveTime, MaxDepth, GasMixCount, GasMix, Salinity or
// Atmospheric.
type Value interface {
	Field() FieldType
	isValue()
}

// DiveTime is the total dive duration.
type DiveTime struct {
	Duration time.Duration
}

// MaxDepth is the maximum depth in meters.
type MaxDepth struct {
	Meters float64
}

// GasMixCount is the number of gas mix slots.
type GasMixCount struct {
	Count int
}

// GasMix is one gas mix as fractions in [0, 1].
type GasMix struct {
	Oxygen   float64
	Helium   float64
	Nitrogen float64
}

// Water is the water type of a Salinity field.
type Water uint8

const (
	WaterFresh Water = iota
	WaterSalt
)

// String returns the water type name.
func (w Water) String() string {
	switch w {
	case WaterFresh:
		return "fresh"
	case WaterSalt:
		return "salt"
	default:
		return "unknown"
	}
}

// Salinity is the configured water type and density in kg/m³.
type Salinity struct {
	Water   Water
	Density float64
}

// Atmospheric is the surface pressure in bar.
type Atmospheric struct {
	Bar float64
}

func (DiveTime) Field() FieldType    { return FieldDiveTime }
func (MaxDepth) Field() FieldType    { return FieldMaxDepth }
func (GasMixCount) Field() FieldType { return FieldGasMixCount }
func (GasMix) Field() FieldType      { return FieldGasMix }
func (Salinity) Field() FieldType    { return FieldSalinity }
func (Atmospheric) Field() FieldType { return FieldAtmospheric }

func (DiveTime) isValue()    {}
func (MaxDepth) isValue()    {}
func (GasMixCount) isValue() {}
func (GasMix) isValue()      {}
func (Salinity) isValue()    {}
func (Atmospheric) isValue() {}

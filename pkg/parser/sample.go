package parser

import (
	"fmt"
	"time"
)

// SampleType classifies samples.
type SampleType uint8

const (
	SampleTime SampleType = iota
	SampleDepth
	SampleTemperature
	SampleEvent
)

// String returns the sample type name.
func (t SampleType) String() string {
	switch t {
	case SampleTime:
		return "time"
	case SampleDepth:
		return "depth"
	case SampleTemperature:
		return "temperature"
	case SampleEvent:
		return "event"
	default:
		return fmt.Sprintf("SampleType(%d)", uint8(t))
	}
}

// Sample is one profile sample: TimeSample, DepthSample,
// TemperatureSample or EventSample.
type Sample interface {
	Type() SampleType
	isSample()
}

// SampleFunc receives samples in profile order. Returning false ends the
// pass without error.
type SampleFunc func(Sample) bool

// TimeSample starts a record; Offset is the time since the dive start.
type TimeSample struct {
	Offset time.Duration
}

// DepthSample is a depth in meters.
type DepthSample struct {
	Meters float64
}

// TemperatureSample is a water temperature in °C.
type TemperatureSample struct {
	Celsius float64
}

// EventSample carries a profile event.
type EventSample struct {
	Event Event
}

func (TimeSample) Type() SampleType        { return SampleTime }
func (DepthSample) Type() SampleType       { return SampleDepth }
func (TemperatureSample) Type() SampleType { return SampleTemperature }
func (EventSample) Type() SampleType       { return SampleEvent }

func (TimeSample) isSample()        {}
func (DepthSample) isSample()       {}
func (TemperatureSample) isSample() {}
func (EventSample) isSample()       {}

// EventType classifies profile events.
type EventType uint8

const (
	EventGasChange EventType = iota + 1
	EventDecoStop
	EventNDL
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventGasChange:
		return "gaschange"
	case EventDecoStop:
		return "decostop"
	case EventNDL:
		return "ndl"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
}

// Event is a profile event: GasChange, DecoStop or NDL.
type Event interface {
	EventType() EventType

	// Value packs the event in the dive log's integer layout.
	Value() uint32
	isEvent()
}

// GasChange reports the breathing gas in percent.
type GasChange struct {
	Oxygen uint8
	Helium uint8
}

// DecoStop reports the ceiling depth in meters and the stop time.
type DecoStop struct {
	Depth uint16
	Time  time.Duration
}

// NDL reports the remaining no-decompression time.
type NDL struct {
	Time time.Duration
}

func (GasChange) EventType() EventType { return EventGasChange }
func (DecoStop) EventType() EventType  { return EventDecoStop }
func (NDL) EventType() EventType       { return EventNDL }

// Value returns O2 | He<<16.
func (e GasChange) Value() uint32 {
	return uint32(e.Oxygen) | uint32(e.Helium)<<16
}

// Value returns depth | seconds<<16.
func (e DecoStop) Value() uint32 {
	return uint32(e.Depth) | uint32(e.Time/time.Second)<<16
}

// Value returns seconds.
func (e NDL) Value() uint32 {
	return uint32(e.Time / time.Second)
}

func (GasChange) isEvent() {}
func (DecoStop) isEvent()  {}
func (NDL) isEvent()       {}

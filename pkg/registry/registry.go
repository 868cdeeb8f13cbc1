package registry

import (
	"sort"

	"github.com/divelink/divelink-go/pkg/device"
	"github.com/divelink/divelink-go/pkg/parser"
	"github.com/divelink/divelink-go/pkg/shearwater"
	"github.com/divelink/divelink-go/pkg/status"
	"github.com/divelink/divelink-go/pkg/transport"
)

var devices = map[device.Type]device.Backend{
	device.TypeShearwaterPredator: shearwater.Device,
}

var parsers = map[device.Type]parser.Backend{
	device.TypeShearwaterPredator: shearwater.Parser,
}

// DeviceBackend returns the device backend for t.
func DeviceBackend(t device.Type) (device.Backend, error) {
	b, ok := devices[t]
	if !ok {
		return nil, status.Errorf("registry.device", status.Unsupported, "no device backend for %s", t)
	}
	return b, nil
}

// ParserBackend returns the parser backend for t.
func ParserBackend(t device.Type) (parser.Backend, error) {
	b, ok := parsers[t]
	if !ok {
		return nil, status.Errorf("registry.parser", status.Unsupported, "no parser backend for %s", t)
	}
	return b, nil
}

// NewDevice opens a device session for family t over tr.
func NewDevice(t device.Type, tr transport.Transport, opts ...device.Option) (*device.Session, error) {
	b, err := DeviceBackend(t)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, status.New("registry.device", status.InvalidArgs)
	}
	return device.NewSession(b, tr, opts...)
}

// NewParser creates a parser session for family t.
func NewParser(t device.Type, opts ...parser.Option) (*parser.Session, error) {
	b, err := ParserBackend(t)
	if err != nil {
		return nil, err
	}
	return parser.NewSession(b, opts...)
}

// DeviceTypes returns the families with a device backend, sorted.
func DeviceTypes() []device.Type {
	return sortedKeys(devices)
}

// ParserTypes returns the families with a parser backend, sorted.
func ParserTypes() []device.Type {
	return sortedKeys(parsers)
}

func sortedKeys[V any](m map[device.Type]V) []device.Type {
	types := make([]device.Type, 0, len(m))
	for t := range m {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

package descriptor

import (
	"fmt"
	"io"
	"strings"

	"github.com/divelink/divelink-go/pkg/device"
)

// TransportKind is a set of link types a dive computer can use.
type TransportKind uint8

const (
	TransportSerial TransportKind = 1 << iota
	TransportUSB
	TransportUSBHID
	TransportIrDA
	TransportBluetooth
)

var transportNames = []struct {
	kind TransportKind
	name string
}{
	{TransportSerial, "serial"},
	{TransportUSB, "usb"},
	{TransportUSBHID, "usbhid"},
	{TransportIrDA, "irda"},
	{TransportBluetooth, "bluetooth"},
}

// String returns the kinds joined by "|".
func (k TransportKind) String() string {
	var names []string
	for _, tn := range transportNames {
		if k&tn.kind != 0 {
			names = append(names, tn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Has reports whether k includes every kind in other.
func (k TransportKind) Has(other TransportKind) bool {
	return k&other == other
}

// USBID is a USB vendor and product ID pair.
type USBID struct {
	VID uint16
	PID uint16
}

func (id USBID) String() string {
	return fmt.Sprintf("%04x:%04x", id.VID, id.PID)
}

// Descriptor identifies one dive computer model.
type Descriptor struct {
	Vendor     string
	Product    string
	Type       device.Type
	Model      uint32
	Transports TransportKind

	// USB lists the IDs of the interface cables the model is sold with.
	USB []USBID
}

// String returns "Vendor Product".
func (d Descriptor) String() string {
	return d.Vendor + " " + d.Product
}

// Iterator yields descriptors. Next returns io.EOF after the last one.
type Iterator interface {
	Next() (Descriptor, error)
}

// sliceIterator iterates a slice, applying an optional filter.
type sliceIterator struct {
	items  []Descriptor
	filter func(Descriptor) bool
	pos    int
}

func (it *sliceIterator) Next() (Descriptor, error) {
	for it.pos < len(it.items) {
		d := it.items[it.pos]
		it.pos++
		if it.filter == nil || it.filter(d) {
			return d, nil
		}
	}
	return Descriptor{}, io.EOF
}

// NewIterator iterates every known descriptor in table order.
func NewIterator() Iterator {
	return &sliceIterator{items: table}
}

// Filter iterates the descriptors accepted by fn.
func Filter(fn func(Descriptor) bool) Iterator {
	return &sliceIterator{items: table, filter: fn}
}

// ByType accepts descriptors of family t.
func ByType(t device.Type) func(Descriptor) bool {
	return func(d Descriptor) bool { return d.Type == t }
}

// ByUSB accepts descriptors sold with the cable id.
func ByUSB(id USBID) func(Descriptor) bool {
	return func(d Descriptor) bool {
		for _, u := range d.USB {
			if u == id {
				return true
			}
		}
		return false
	}
}

// ByTransport accepts descriptors supporting kind.
func ByTransport(kind TransportKind) func(Descriptor) bool {
	return func(d Descriptor) bool { return d.Transports.Has(kind) }
}

// All drains it into a slice.
func All(it Iterator) ([]Descriptor, error) {
	var out []Descriptor
	for {
		d, err := it.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
}

// Lookup finds a descriptor by product name, case-insensitively, e.g.
// "Predator" or "Shearwater Predator".
func Lookup(name string) (Descriptor, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, d := range table {
		if strings.ToLower(d.Product) == key || strings.ToLower(d.String()) == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

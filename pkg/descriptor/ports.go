package descriptor

import (
	"fmt"
	"strconv"

	"go.bug.st/serial/enumerator"
)

// Port is a serial port on this host with the descriptors whose interface
// cable matches its USB IDs.
type Port struct {
	Name    string
	USB     *USBID
	Serial  string
	Product string

	// Candidates is empty for ports without a known cable.
	Candidates []Descriptor
}

// portLister is enumerator.GetDetailedPortsList.
var portLister = enumerator.GetDetailedPortsList

// ScanSerialPorts lists the serial ports of this host and matches USB
// adapters against the descriptor table.
func ScanSerialPorts() ([]Port, error) {
	details, err := portLister()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return matchPorts(details)
}

func matchPorts(details []*enumerator.PortDetails) ([]Port, error) {
	ports := make([]Port, 0, len(details))
	for _, d := range details {
		p := Port{Name: d.Name, Serial: d.SerialNumber, Product: d.Product}
		if d.IsUSB {
			id, err := parseUSBID(d.VID, d.PID)
			if err != nil {
				return nil, fmt.Errorf("port %s: %w", d.Name, err)
			}
			p.USB = &id
			p.Candidates, _ = All(Filter(ByUSB(id)))
		}
		ports = append(ports, p)
	}
	return ports, nil
}

// parseUSBID parses the hex IDs reported by the enumerator.
func parseUSBID(vid, pid string) (USBID, error) {
	v, err := strconv.ParseUint(vid, 16, 16)
	if err != nil {
		return USBID{}, fmt.Errorf("invalid vendor id %q", vid)
	}
	p, err := strconv.ParseUint(pid, 16, 16)
	if err != nil {
		return USBID{}, fmt.Errorf("invalid product id %q", pid)
	}
	return USBID{VID: uint16(v), PID: uint16(p)}, nil
}

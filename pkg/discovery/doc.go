// Package discovery finds dive computer bridges on the local network with
// mDNS/DNS-SD.
//
// A bridge exposes a dive computer's serial link over TCP. It advertises
// one _divelink._tcp instance per attached device. The instance name is
// user visible; the TXT records describe the attached device:
//
//	DT  device family ("shearwater-predator")
//	SP  serial port on the bridge host (optional)
//	BR  baud rate (optional)
//	MO  model (optional)
//	SN  serial number (optional)
//
// Browsing aggregates the addresses an instance is announced with on
// several interfaces into one BridgeService.
package discovery

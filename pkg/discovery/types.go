package discovery

import (
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/divelink/divelink-go/pkg/device"
)

const (
	// ServiceTypeBridge is the DNS-SD service type of serial bridges.
	ServiceTypeBridge = "_divelink._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the default bridge TCP port.
	DefaultPort = 4001
)

// TXT record keys.
const (
	TXTKeyDevice     = "DT"
	TXTKeySerialPort = "SP"
	TXTKeyBaud       = "BR"
	TXTKeyModel      = "MO"
	TXTKeySerial     = "SN"
)

// BrowseTimeout is the default timeout for mDNS browsing.
const BrowseTimeout = 5 * time.Second

// MaxInstanceNameLen is the DNS label limit.
const MaxInstanceNameLen = 63

// Discovery errors.
var (
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrMissingRequired     = errors.New("missing required field")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
	ErrNotFound            = errors.New("service not found")
)

// BridgeInfo is what a bridge advertises.
type BridgeInfo struct {
	// Name is the instance name.
	Name string

	// Device is the family of the attached dive computer.
	Device device.Type

	SerialPort string
	Baud       int
	Model      string
	Serial     string

	// Port is the TCP port. Zero means DefaultPort.
	Port uint16
}

// BridgeService is a bridge found by browsing.
type BridgeService struct {
	InstanceName string
	Host         string
	Port         uint16
	Addresses    []string

	Device     device.Type
	SerialPort string
	Baud       int
	Model      string
	Serial     string
}

// Address returns a dialable host:port, preferring the first resolved
// address over the host name.
func (s *BridgeService) Address() string {
	host := s.Host
	if len(s.Addresses) > 0 {
		host = s.Addresses[0]
	}
	return net.JoinHostPort(host, strconv.Itoa(int(s.Port)))
}

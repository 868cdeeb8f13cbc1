package discovery

import (
	"context"
	"time"

	"github.com/divelink/divelink-go/pkg/device"
)

// Browser finds bridges.
type Browser interface {
	// BrowseBridges searches for bridges. The channel is closed when ctx
	// is done.
	BrowseBridges(ctx context.Context) (<-chan *BridgeService, error)

	// FindBridge returns the first bridge with the given instance name.
	FindBridge(ctx context.Context, name string) (*BridgeService, error)

	// Stop stops all active browsing operations.
	Stop()
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// BrowseTimeout bounds browse operations whose context has no deadline.
	// Default: 5 seconds.
	BrowseTimeout time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		BrowseTimeout: BrowseTimeout,
		Interface:     "",
	}
}

// FilterFunc is a function that filters browse results.
type FilterFunc func(*BridgeService) bool

// FilterByDevice returns a filter that matches bridges for any of the given
// families.
func FilterByDevice(types ...device.Type) FilterFunc {
	set := make(map[device.Type]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(svc *BridgeService) bool {
		_, ok := set[svc.Device]
		return ok
	}
}

// FilterBrowseResults filters a channel of bridges.
func FilterBrowseResults(in <-chan *BridgeService, filter FilterFunc) <-chan *BridgeService {
	out := make(chan *BridgeService)
	go func() {
		defer close(out)
		for svc := range in {
			if filter(svc) {
				out <- svc
			}
		}
	}()
	return out
}

// Collect drains a browse channel into a slice.
func Collect(in <-chan *BridgeService) []*BridgeService {
	var out []*BridgeService
	for svc := range in {
		out = append(out, svc)
	}
	return out
}

// ServiceEntry is a resolved DNS-SD instance, independent of the mDNS
// library.
type ServiceEntry struct {
	Instance string
	Service  string
	Domain   string
	Host     string
	Port     uint16
	Text     []string
	Addrs    []string
}

// ToBridgeService converts a ServiceEntry to a BridgeService.
func (e *ServiceEntry) ToBridgeService() (*BridgeService, error) {
	info, err := DecodeBridgeTXT(StringsToTXTRecords(e.Text))
	if err != nil {
		return nil, err
	}

	return &BridgeService{
		InstanceName: e.Instance,
		Host:         e.Host,
		Port:         e.Port,
		Addresses:    append([]string(nil), e.Addrs...),
		Device:       info.Device,
		SerialPort:   info.SerialPort,
		Baud:         info.Baud,
		Model:        info.Model,
		Serial:       info.Serial,
	}, nil
}

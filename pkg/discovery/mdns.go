package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"
)

// MDNSAdvertiser implements the Advertiser interface using zeroconf.
type MDNSAdvertiser struct {
	config AdvertiserConfig

	mu      sync.Mutex
	servers map[string]*zeroconf.Server // keyed by instance name
}

// NewMDNSAdvertiser creates a new mDNS advertiser.
func NewMDNSAdvertiser(config AdvertiserConfig) (*MDNSAdvertiser, error) {
	return &MDNSAdvertiser{
		config:  config,
		servers: make(map[string]*zeroconf.Server),
	}, nil
}

// getInterfaces returns the network interfaces to use for advertising.
// Returns nil to use all interfaces.
func (a *MDNSAdvertiser) getInterfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}

	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// AdvertiseBridge starts advertising a bridge.
func (a *MDNSAdvertiser) AdvertiseBridge(ctx context.Context, info *BridgeInfo) error {
	if err := ValidateInstanceName(info.Name); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if server, ok := a.servers[info.Name]; ok {
		server.Shutdown()
		delete(a.servers, info.Name)
	}

	port := int(info.Port)
	if port == 0 {
		port = DefaultPort
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		info.Name,
		ServiceTypeBridge,
		Domain,
		port,
		TXTRecordsToStrings(EncodeBridgeTXT(info)),
		a.getInterfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register bridge service: %w", err)
	}

	a.servers[info.Name] = server
	return nil
}

// UpdateBridge replaces the TXT records of an advertised bridge.
func (a *MDNSAdvertiser) UpdateBridge(info *BridgeInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	server, exists := a.servers[info.Name]
	if !exists {
		return ErrNotFound
	}
	server.SetText(TXTRecordsToStrings(EncodeBridgeTXT(info)))
	return nil
}

// StopBridge stops advertising a bridge.
func (a *MDNSAdvertiser) StopBridge(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	server, exists := a.servers[name]
	if !exists {
		return ErrNotFound
	}
	server.Shutdown()
	delete(a.servers, name)
	return nil
}

// StopAll stops all advertisements.
func (a *MDNSAdvertiser) StopAll() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for name, server := range a.servers {
		server.Shutdown()
		delete(a.servers, name)
	}
}

// MDNSBrowser implements the Browser interface using zeroconf.
type MDNSBrowser struct {
	config BrowserConfig

	mu      sync.Mutex
	stopped bool
	cancels []context.CancelFunc
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) (*MDNSBrowser, error) {
	return &MDNSBrowser{
		config: config,
	}, nil
}

// BrowseBridges searches for bridges. Services are aggregated by instance
// name: addresses from multiple interfaces are combined into a single
// entry, and an instance is forgotten once all its addresses are removed.
func (b *MDNSBrowser) BrowseBridges(ctx context.Context) (<-chan *BridgeService, error) {
	ctx, err := b.browseContext(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan *BridgeService)
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go aggregate(ctx, entries, removed, out)

	go func() {
		_ = zeroconf.Browse(ctx, ServiceTypeBridge, Domain, entries, removed, b.browserOptions()...)
	}()

	return out, nil
}

// aggregate folds browse results into services and sends each newly seen
// bridge to out. It closes out when entries closes or ctx is done.
func aggregate(ctx context.Context, entries, removed <-chan *zeroconf.ServiceEntry, out chan<- *BridgeService) {
	defer close(out)
	agg := newAggregator()
	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return
			}
			svc, isNew := agg.add(fromZeroconf(entry))
			if !isNew {
				continue
			}
			select {
			case out <- svc:
			case <-ctx.Done():
				return
			}

		case entry, ok := <-removed:
			if !ok {
				// closed ahead of entries; stop selecting on it
				removed = nil
				continue
			}
			agg.remove(fromZeroconf(entry))

		case <-ctx.Done():
			return
		}
	}
}

// FindBridge returns the first bridge with the given instance name.
func (b *MDNSBrowser) FindBridge(ctx context.Context, name string) (*BridgeService, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results, err := b.BrowseBridges(ctx)
	if err != nil {
		return nil, err
	}

	for {
		select {
		case svc, ok := <-results:
			if !ok {
				return nil, ErrNotFound
			}
			if svc.InstanceName == name {
				return svc, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Stop stops all active browsing operations.
func (b *MDNSBrowser) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopped = true
	for _, cancel := range b.cancels {
		cancel()
	}
	b.cancels = nil
}

// browseContext derives a cancellable browse context, applying the
// configured timeout when ctx has no deadline.
func (b *MDNSBrowser) browseContext(ctx context.Context) (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return nil, fmt.Errorf("browser stopped")
	}

	var cancel context.CancelFunc
	if _, ok := ctx.Deadline(); !ok && b.config.BrowseTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, b.config.BrowseTimeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	b.cancels = append(b.cancels, cancel)
	return ctx, nil
}

// browserOptions returns zeroconf client options based on config.
func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption

	// Select specific interface if configured
	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}

	return opts
}

// aggregator tracks bridges by instance name.
type aggregator struct {
	services map[string]*BridgeService
}

func newAggregator() *aggregator {
	return &aggregator{services: make(map[string]*BridgeService)}
}

// add records an entry. It returns the service and whether the instance
// is new; entries with invalid TXT records are ignored.
func (a *aggregator) add(entry *ServiceEntry) (*BridgeService, bool) {
	svc, err := entry.ToBridgeService()
	if err != nil {
		return nil, false
	}
	if existing, found := a.services[svc.InstanceName]; found {
		existing.Addresses = mergeAddresses(existing.Addresses, svc.Addresses)
		return existing, false
	}
	a.services[svc.InstanceName] = svc
	return svc, true
}

func (a *aggregator) remove(entry *ServiceEntry) {
	existing, found := a.services[entry.Instance]
	if !found {
		return
	}
	existing.Addresses = removeAddresses(existing.Addresses, entry.Addrs)
	if len(existing.Addresses) == 0 {
		delete(a.services, entry.Instance)
	}
}

// fromZeroconf converts a zeroconf entry.
func fromZeroconf(e *zeroconf.ServiceEntry) *ServiceEntry {
	addrs := make([]string, 0, len(e.AddrIPv4)+len(e.AddrIPv6))
	for _, ip := range e.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range e.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}
	return &ServiceEntry{
		Instance: e.Instance,
		Service:  e.Service,
		Domain:   e.Domain,
		Host:     e.HostName,
		Port:     uint16(e.Port),
		Text:     e.Text,
		Addrs:    addrs,
	}
}

// mergeAddresses adds new addresses to existing list, avoiding duplicates.
func mergeAddresses(existing, added []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}

	for _, addr := range added {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}

// removeAddresses returns addresses without the ones in gone.
func removeAddresses(addresses, gone []string) []string {
	toRemove := make(map[string]bool, len(gone))
	for _, addr := range gone {
		toRemove[addr] = true
	}

	result := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if !toRemove[addr] {
			result = append(result, addr)
		}
	}
	return result
}

// Compile-time interface satisfaction checks.
var (
	_ Advertiser = (*MDNSAdvertiser)(nil)
	_ Browser    = (*MDNSBrowser)(nil)
)

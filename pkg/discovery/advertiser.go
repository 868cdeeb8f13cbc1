package discovery

import (
	"context"
	"time"
)

// Advertiser announces bridges.
type Advertiser interface {
	// AdvertiseBridge starts advertising a bridge. Advertising an existing
	// name replaces it.
	AdvertiseBridge(ctx context.Context, info *BridgeInfo) error

	// UpdateBridge replaces the TXT records of an advertised bridge.
	UpdateBridge(info *BridgeInfo) error

	// StopBridge stops advertising a bridge.
	StopBridge(name string) error

	// StopAll stops all advertisements.
	StopAll()
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		Interface: "",
		TTL:       120 * time.Second,
	}
}

package descriptor

import (
	"context"

	"github.com/divelink/divelink-go/pkg/discovery"
)

// Bridge is a network bridge with the descriptors of its attached family.
type Bridge struct {
	Service    *discovery.BridgeService
	Candidates []Descriptor
}

// BrowseBridges collects the bridges b finds until ctx is done or the
// browser's timeout expires.
func BrowseBridges(ctx context.Context, b discovery.Browser) ([]Bridge, error) {
	results, err := b.BrowseBridges(ctx)
	if err != nil {
		return nil, err
	}

	var bridges []Bridge
	for svc := range results {
		candidates, _ := All(Filter(ByType(svc.Device)))
		bridges = append(bridges, Bridge{Service: svc, Candidates: candidates})
	}
	return bridges, nil
}

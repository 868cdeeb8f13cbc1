// Package descriptor enumerates the dive computers divelink knows about and
// matches them to what is attached: USB serial adapters on this host and
// serial bridges on the network.
//
// Enumeration is lazy and finite: an Iterator yields descriptors until it
// returns io.EOF.
//
//	it := descriptor.Filter(descriptor.ByType(device.TypeShearwaterPredator))
//	for {
//		d, err := it.Next()
//		if err == io.EOF {
//			break
//		}
//		...
//	}
package descriptor

// Package registry maps device families to their backends.
//
// The registry is closed: the set of backends is fixed at build time and
// lookups never allocate backend state. Every family without a backend is
// reported as status.Unsupported.
//
//	s, err := registry.NewDevice(device.TypeShearwaterPredator, tr)
//	...
//	p, err := registry.NewParser(s.Type())
package registry

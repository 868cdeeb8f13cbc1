// Package persistence stores download state between runs.
//
// The state is a JSON file holding, per dive computer, the fingerprint of
// the newest dive already downloaded. Passing it to a device session with
// device.WithFingerprint makes the next download stop at that dive.
package persistence

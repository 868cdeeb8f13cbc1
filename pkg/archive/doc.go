// Package archive stores downloaded dives as a CBOR record stream.
//
// An archive starts with a Header followed by one Record per dive. Records
// keep the raw dive bytes so they can be decoded again later with any
// parser version.
package archive

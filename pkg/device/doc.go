// Package device defines the contract between the client API and the
// per-family dive computer backends.
//
// A Session binds one Backend to one transport.Transport. Every operation on
// the session is dispatched to the backend, which drives the vendor protocol
// over the transport. Backends are stateless package-level values; all
// per-contact state (handshake status, fingerprint, device info) lives on the
// Session.
//
// # Lifecycle
//
//	StateOpen ──Handshake──▶ StateReady ──Read/Write/Dump/Foreach──▶ StateReady
//	    │                        │
//	    └────────── Close ───────┴──▶ StateClosed
//
// Version may be called before the handshake. Read, Write, Dump and Foreach
// fail with status.Protocol until the handshake succeeded; every operation
// fails with status.InvalidArgs after Close.
//
// # Dispatch Guard
//
// Backends start each operation with Check(s, Type) so that a session
// created for another family is rejected with status.TypeMismatch.
package device

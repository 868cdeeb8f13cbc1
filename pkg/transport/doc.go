// Package transport provides the byte links used to talk to dive computers.
//
// A Transport is a half-duplex byte stream with a read timeout: a USB serial
// cable, an IrDA or Bluetooth serial emulation, or a TCP connection to a
// serial-over-network bridge. Device backends own the protocol; the
// transport only moves bytes.
//
// # Layers
//
//	┌────────────────────────────────┐
//	│   Device backend protocol      │
//	├────────────────────────────────┤
//	│   Framing (SLIP, optional)     │
//	├────────────────────────────────┤
//	│   Capture (optional)           │
//	├────────────────────────────────┤
//	│   Serial port / TCP bridge     │
//	└────────────────────────────────┘
//
// # Timeouts
//
// SetTimeout controls how long Read blocks:
//   - d < 0: block until data arrives
//   - d == 0: return immediately with whatever is buffered
//   - d > 0: wait at most d
//
// A Read that returns no data within the timeout fails with a status.Timeout
// error, so callers can tell an idle device from a broken link (status.IO).
package transport

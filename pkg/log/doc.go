// Package log provides structured protocol capture for dive computer sessions.
//
// This package defines the Logger interface and Event types for capturing
// events at multiple layers (transport, device, parser). It is separate from
// operational logging (slog): a capture is a complete machine-readable trace
// of what was exchanged with a dive computer, replayable with divelink-log.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	capture := log.NewSlogAdapter(slog.Default())
//
//	// For field downloads: write to binary file
//	capture, _ := log.NewFileLogger("/tmp/predator.dlog")
//
//	// Both: use MultiLogger
//	capture := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Transport: Raw bytes read from or written to the link (FrameEvent)
//   - Device: Protocol commands (CommandEvent), state changes
//     (StateChangeEvent) and download progress (ProgressEvent)
//   - Parser: Decoding failures (ErrorEventData)
//
// # File Format
//
// Capture files use CBOR encoding with the .dlog extension.
package log

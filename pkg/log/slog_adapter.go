package log

import (
	"context"
	"encoding/hex"
	"log/slog"
)

// SlogAdapter writes capture events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.DeviceType != "" {
		attrs = append(attrs, slog.String("device", event.DeviceType))
	}
	if event.Port != "" {
		attrs = append(attrs, slog.String("port", event.Port))
	}
	if event.Serial != "" {
		attrs = append(attrs, slog.String("serial", event.Serial))
	}

	switch {
	case event.Frame != nil:
		attrs = append(attrs,
			slog.Int("frame_size", event.Frame.Size),
			slog.Bool("truncated", event.Frame.Truncated),
		)
		if len(event.Frame.Data) <= 32 {
			attrs = append(attrs, slog.String("hex", hex.EncodeToString(event.Frame.Data)))
		}
	case event.Command != nil:
		attrs = append(attrs, slog.String("command", event.Command.Name))
		if event.Command.Opcode != nil {
			attrs = append(attrs, slog.Uint64("opcode", uint64(*event.Command.Opcode)))
		}
		if event.Command.Address != nil {
			attrs = append(attrs, slog.Uint64("address", uint64(*event.Command.Address)))
		}
		if event.Command.Length != 0 {
			attrs = append(attrs, slog.Int("length", event.Command.Length))
		}
		if event.Command.Status != "" {
			attrs = append(attrs, slog.String("status", event.Command.Status))
		}
		if event.Command.Attempt > 1 {
			attrs = append(attrs, slog.Int("attempt", event.Command.Attempt))
		}
		if event.Command.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Command.Duration))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Progress != nil:
		attrs = append(attrs,
			slog.Bool("waiting", event.Progress.Waiting),
			slog.Uint64("current", uint64(event.Progress.Current)),
			slog.Uint64("maximum", uint64(event.Progress.Maximum)),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("error_code", *event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "capture", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)

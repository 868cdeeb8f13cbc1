// Package commands implements the divelink-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/divelink/divelink-go/pkg/log"
)

// eventLabel names the payload carried by the event.
func eventLabel(event log.Event) string {
	switch {
	case event.Frame != nil:
		return "Frame"
	case event.Command != nil:
		return "Command"
	case event.StateChange != nil:
		return "State"
	case event.Progress != nil:
		return "Progress"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// timestamp [session:id] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [session:%s] %-3s %s %s", ts, shortenID(event.SessionID),
		event.Direction.String(), event.Layer.String(), eventLabel(event))
	if event.DeviceType != "" {
		fmt.Fprintf(w, " (%s)", event.DeviceType)
	}
	fmt.Fprintln(w)

	switch {
	case event.Frame != nil:
		formatFrameDetails(w, event.Frame)
	case event.Command != nil:
		formatCommandDetails(w, event.Command)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Progress != nil:
		formatProgressDetails(w, event.Progress)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatFrameDetails(w io.Writer, frame *log.FrameEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", frame.Size)
	if len(frame.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(frame.Data))
		if frame.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

func formatCommandDetails(w io.Writer, cmd *log.CommandEvent) {
	fmt.Fprintf(w, "  Command: %s", cmd.Name)
	if cmd.Opcode != nil {
		fmt.Fprintf(w, " [0x%02X]", *cmd.Opcode)
	}
	fmt.Fprintln(w)
	if cmd.Address != nil {
		fmt.Fprintf(w, "  Address: 0x%08X", *cmd.Address)
		if cmd.Length > 0 {
			fmt.Fprintf(w, "  Length: %d", cmd.Length)
		}
		fmt.Fprintln(w)
	} else if cmd.Length > 0 {
		fmt.Fprintf(w, "  Length: %d\n", cmd.Length)
	}
	if cmd.Status != "" {
		fmt.Fprintf(w, "  Status: %s", cmd.Status)
		if cmd.Attempt > 1 {
			fmt.Fprintf(w, " (attempt %d)", cmd.Attempt)
		}
		fmt.Fprintln(w)
	}
	if cmd.Duration != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*cmd.Duration))
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatProgressDetails(w io.Writer, p *log.ProgressEvent) {
	if p.Waiting {
		fmt.Fprintln(w, "  Waiting for user action")
		return
	}
	if p.Maximum > 0 {
		fmt.Fprintf(w, "  %d / %d (%.1f%%)\n", p.Current, p.Maximum, 100*float64(p.Current)/float64(p.Maximum))
		return
	}
	fmt.Fprintf(w, "  %d\n", p.Current)
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// RunView writes every event of path matching filter to output.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
	return nil
}

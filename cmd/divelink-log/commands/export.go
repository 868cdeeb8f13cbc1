package commands

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/divelink/divelink-go/pkg/log"
)

// RunExport writes the events of a capture file as JSON lines or CSV to
// output, or stdout when output is empty.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl", "json":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	}
	return fmt.Errorf("unknown format %q (jsonl, csv)", format)
}

// eachEvent calls fn for every event left in r.
func eachEvent(r *log.Reader, fn func(log.Event) error) error {
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read event: %w", err)
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
}

func exportJSONL(r *log.Reader, w io.Writer) error {
	enc := json.NewEncoder(w)
	return eachEvent(r, func(ev log.Event) error {
		return enc.Encode(ev)
	})
}

var csvHeader = []string{"timestamp", "session_id", "direction", "layer", "category", "device", "serial", "type", "command", "size"}

// csvRow flattens an event. Frames report their size, commands their name
// and requested length.
func csvRow(ev log.Event) []string {
	var command, size string
	switch {
	case ev.Frame != nil:
		size = strconv.Itoa(ev.Frame.Size)
	case ev.Command != nil:
		command = ev.Command.Name
		if ev.Command.Length > 0 {
			size = strconv.Itoa(ev.Command.Length)
		}
	}
	return []string{
		ev.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		ev.SessionID,
		ev.Direction.String(),
		ev.Layer.String(),
		ev.Category.String(),
		ev.DeviceType,
		ev.Serial,
		eventLabel(ev),
		command,
		size,
	}
}

func exportCSV(r *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	if err := eachEvent(r, func(ev log.Event) error { return cw.Write(csvRow(ev)) }); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

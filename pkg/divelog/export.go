package divelog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format is an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format: %s (supported: json, csv)", name)
	}
}

// Write exports dives to w in format f.
func Write(w io.Writer, f Format, dives ...*Dive) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, dives...)
	case FormatCSV:
		return WriteCSV(w, dives...)
	default:
		return fmt.Errorf("unknown format: %s", f)
	}
}

// WriteJSON writes one indented JSON object per dive. A single dive is
// written as an object, several as an array.
func WriteJSON(w io.Writer, dives ...*Dive) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	var v any = dives
	if len(dives) == 1 {
		v = dives[0]
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode dive: %w", err)
	}
	return nil
}

// CSVHeader is the first row written by WriteCSV.
var CSVHeader = []string{"dive", "start", "time_s", "depth_m", "temperature_c", "events"}

// WriteCSV writes the profile of every dive, one row per point.
func WriteCSV(w io.Writer, dives ...*Dive) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, d := range dives {
		start := d.Start.Format("2006-01-02T15:04:05Z07:00")
		for _, p := range d.Profile {
			row := []string{
				strconv.Itoa(i + 1),
				start,
				strconv.FormatFloat(p.Time.Seconds(), 'f', -1, 64),
				strconv.FormatFloat(p.Depth, 'f', 2, 64),
				"",
				events(p.Events),
			}
			if p.Temperature != nil {
				row[4] = strconv.FormatFloat(*p.Temperature, 'f', 1, 64)
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func events(evs []Event) string {
	parts := make([]string, len(evs))
	for i, e := range evs {
		parts[i] = e.Type + "=" + strconv.FormatUint(uint64(e.Value), 10)
	}
	return strings.Join(parts, ";")
}

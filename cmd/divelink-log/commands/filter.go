package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/divelink/divelink-go/pkg/log"
)

// FilterOptions holds the textual filter flags shared by view and filter.
type FilterOptions struct {
	Output     string
	SessionID  string
	DeviceType string
	Serial     string
	TimeStart  string
	TimeEnd    string
	Layer      string
	Direction  string
	Category   string
}

// BuildFilter parses opts into a log.Filter.
func BuildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{
		SessionID:  opts.SessionID,
		DeviceType: opts.DeviceType,
		Serial:     opts.Serial,
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}
	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}
	if opts.Layer != "" {
		l, err := ParseLayer(opts.Layer)
		if err != nil {
			return filter, err
		}
		filter.Layer = &l
	}
	if opts.Direction != "" {
		d, err := ParseDirection(opts.Direction)
		if err != nil {
			return filter, err
		}
		filter.Direction = &d
	}
	if opts.Category != "" {
		c, err := ParseCategory(opts.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	return filter, nil
}

// ParseLayer parses a layer name (case-insensitive).
func ParseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "device":
		return log.LayerDevice, nil
	case "parser":
		return log.LayerParser, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be transport, device, or parser)", s)
	}
}

// ParseDirection parses a direction name (case-insensitive).
func ParseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategory parses a category name (case-insensitive).
func ParseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "frame":
		return log.CategoryFrame, nil
	case "command":
		return log.CategoryCommand, nil
	case "state":
		return log.CategoryState, nil
	case "progress":
		return log.CategoryProgress, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be frame, command, state, progress, or error)", s)
	}
}

// RunFilter copies the events of path that match opts to opts.Output and
// returns how many were written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter, err := BuildFilter(opts)
	if err != nil {
		return 0, err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Close()
			return count, fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
		count++
	}
	if err := logger.Close(); err != nil {
		return count, fmt.Errorf("failed to close output: %w", err)
	}
	return count, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/divelink/divelink-go/pkg/device"
	"github.com/divelink/divelink-go/pkg/log"
	"github.com/divelink/divelink-go/pkg/metrics"
	"github.com/divelink/divelink-go/pkg/registry"
	"github.com/divelink/divelink-go/pkg/shearwater"
	"github.com/divelink/divelink-go/pkg/transport"
)

// link is an open device session and everything attached to it.
type link struct {
	Session   *device.Session
	Transport transport.Transport

	logger    *slog.Logger
	capture   *log.FileLogger
	collector *metrics.Collector
	metrics   string
}

// openTransport opens the transport selected by cfg: the simulator, a
// network bridge or a local serial port.
func openTransport(ctx context.Context, cfg *Config) (transport.Transport, error) {
	switch {
	case cfg.Simulate:
		sim, err := newSimulator()
		if err != nil {
			return nil, err
		}
		return sim, nil
	case cfg.Bridge != "":
		return transport.DialTCP(ctx, cfg.Bridge)
	case cfg.Port != "":
		sc := transport.DefaultSerialConfig()
		sc.BaudRate = cfg.Baud
		sc.Timeout = cfg.Timeout
		return transport.OpenSerial(cfg.Port, sc)
	default:
		return nil, errors.New("no transport: set -port, -bridge or -simulate")
	}
}

// simulatorStart is the start of the first simulated dive. Fixed dates keep
// fingerprints stable across runs.
var simulatorStart = time.Date(2024, time.March, 9, 8, 15, 0, 0, time.UTC)

// newSimulator returns a Predator simulator holding two sample dives.
func newSimulator() (*shearwater.Simulator, error) {
	start := simulatorStart
	var dives [][]byte
	for i, depth := range []uint16{180, 305} {
		d := shearwater.Dive{
			Start:           start.Add(time.Duration(i) * 24 * time.Hour),
			SurfacePressure: 1013,
			Density:         1025,
			MaxDepth:        depth / 10,
			DiveTime:        6,
		}
		d.Mixes[0] = shearwater.Mix{Oxygen: 21}
		d.Mixes[1] = shearwater.Mix{Oxygen: 50}
		for step := 0; step < 36; step++ {
			rec := shearwater.Record{Oxygen: 21, Temperature: 18, StopTime: 30}
			switch {
			case step < 12:
				rec.Depth = depth * uint16(step+1) / 12
			case step < 28:
				rec.Depth = depth
			default:
				rec.Depth = depth * uint16(36-step) / 8
				rec.Oxygen = 50
			}
			d.Records = append(d.Records, rec)
		}
		data, err := shearwater.EncodeDive(d)
		if err != nil {
			return nil, err
		}
		dives = append(dives, data)
	}
	return shearwater.NewSimulatorWithDives(shearwater.SimulatorConfig{}, dives...)
}

// openLink opens the transport and binds a device session to it with the
// capture, metrics and retry settings of cfg.
func openLink(ctx context.Context, cfg *Config, logger *slog.Logger, opts ...device.Option) (*link, error) {
	tr, err := openTransport(ctx, cfg)
	if err != nil {
		return nil, err
	}
	l := &link{logger: logger, metrics: cfg.MetricsFile}

	id := uuid.New().String()
	if cfg.CaptureLog != "" {
		l.capture, err = log.NewFileLogger(cfg.CaptureLog)
		if err != nil {
			tr.Close()
			return nil, fmt.Errorf("open capture: %w", err)
		}
		tr = transport.NewCapture(tr, l.capture, id)
		opts = append(opts, device.WithCapture(l.capture))
	}
	if cfg.MetricsFile != "" {
		l.collector, err = metrics.NewCollector()
		if err != nil {
			l.closeCapture()
			tr.Close()
			return nil, err
		}
		opts = append(opts, device.WithObserver(l.collector))
	}
	l.Transport = tr

	base := []device.Option{
		device.WithLogger(logger),
		device.WithSessionID(id),
		device.WithRetry(cfg.RetryConfig()),
	}
	l.Session, err = registry.NewDevice(cfg.DeviceType(), tr, append(base, opts...)...)
	if err != nil {
		l.Close()
		return nil, err
	}
	return l, nil
}

// Handshake runs the handshake and version commands and logs the device
// identity.
func (l *link) Handshake() error {
	buf := make([]byte, 64)
	if _, err := l.Session.Handshake(buf); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	if _, err := l.Session.Version(buf); err != nil {
		return fmt.Errorf("version: %w", err)
	}
	info := l.Session.Info()
	l.logger.Info("connected", "model", info.Model, "serial", info.Serial, "firmware", info.Firmware)
	return nil
}

// Close releases the session and transport and writes the metrics file.
func (l *link) Close() error {
	var errs []error
	if l.Session != nil {
		errs = append(errs, l.Session.Close())
	}
	if l.Transport != nil {
		errs = append(errs, l.Transport.Close())
	}
	errs = append(errs, l.closeCapture())
	if l.collector != nil {
		if err := l.collector.WriteTextfile(l.metrics); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (l *link) closeCapture() error {
	if l.capture == nil {
		return nil
	}
	err := l.capture.Close()
	l.capture = nil
	return err
}

// progressPrinter draws a single updating progress line on stderr.
func progressPrinter(label string) device.ProgressFunc {
	return func(ev device.Event) {
		switch ev.Kind {
		case device.EventWaiting:
			fmt.Fprintf(os.Stderr, "%s: waiting for the dive computer...\n", label)
		case device.EventProgress:
			if ev.Maximum == 0 {
				return
			}
			fmt.Fprintf(os.Stderr, "\r%s: %3d%% (%d/%d)", label, 100*uint64(ev.Current)/uint64(ev.Maximum), ev.Current, ev.Maximum)
			if ev.Current >= ev.Maximum {
				fmt.Fprintln(os.Stderr)
			}
		}
	}
}

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/divelink/divelink-go/cmd/divelink/interactive"
	"github.com/divelink/divelink-go/pkg/device"
	"github.com/divelink/divelink-go/pkg/divelog"
)

func runShell(args []string) error {
	cfg := DefaultConfig()
	fs := newFlagSet("shell", "Interactive session with a dive computer", &cfg)
	if err := cfg.parseFlags(fs, args); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	conn := &linkConnector{cfg: &cfg}
	sh, err := interactive.New(conn)
	if err != nil {
		return err
	}
	// Route log output through readline so it does not break the prompt.
	conn.logger = slog.New(slog.NewTextHandler(sh.Stdout(), &slog.HandlerOptions{Level: levelOf(cfg.LogLevel)}))
	sh.Run(ctx)
	return nil
}

// linkConnector opens shell sessions with openLink.
type linkConnector struct {
	cfg    *Config
	logger *slog.Logger
	link   *link
}

func (c *linkConnector) Connect(ctx context.Context) (*device.Session, error) {
	l, err := openLink(ctx, c.cfg, c.logger)
	if err != nil {
		return nil, err
	}
	c.link = l
	return l.Session, nil
}

func (c *linkConnector) Disconnect() error {
	if c.link == nil {
		return nil
	}
	err := c.link.Close()
	c.link = nil
	return err
}

func (c *linkConnector) Decode(t device.Type, data, fingerprint []byte) (*divelog.Dive, error) {
	return decode(t, data, fingerprint, time.Local)
}

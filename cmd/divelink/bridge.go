package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/divelink/divelink-go/pkg/discovery"
	"github.com/divelink/divelink-go/pkg/status"
	"github.com/divelink/divelink-go/pkg/transport"
)

// bridgePollTimeout bounds each device read so a closed client is noticed.
const bridgePollTimeout = 100 * time.Millisecond

func runBridge(args []string) error {
	cfg := DefaultConfig()
	fs := newFlagSet("bridge", "Serve a local serial port over TCP and advertise it via mDNS", &cfg)
	listen := fs.String("listen", ":"+strconv.Itoa(discovery.DefaultPort), "TCP listen address")
	name := fs.String("name", "", "mDNS instance name (default: divelink-<hostname>)")
	noMDNS := fs.Bool("no-mdns", false, "Do not advertise the bridge")
	if err := cfg.parseFlags(fs, args); err != nil {
		return err
	}
	if cfg.Bridge != "" {
		return errors.New("bridge cannot forward to another bridge")
	}

	ctx, cancel := signalContext()
	defer cancel()
	logger := newLogger(cfg.LogLevel)

	tr, err := openTransport(ctx, &cfg)
	if err != nil {
		return err
	}
	defer tr.Close()

	ln, err := net.Listen("tcp", *listen)
	if err != nil {
		return err
	}
	defer ln.Close()
	logger.Info("bridge listening", "addr", ln.Addr().String(), "port", transport.Name(tr))

	if !*noMDNS {
		info := &discovery.BridgeInfo{
			Name:       *name,
			Device:     cfg.DeviceType(),
			SerialPort: transport.Name(tr),
			Baud:       cfg.Baud,
			Port:       uint16(ln.Addr().(*net.TCPAddr).Port),
		}
		if info.Name == "" {
			host, _ := os.Hostname()
			info.Name = "divelink-" + host
		}
		adv, err := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
		if err != nil {
			return err
		}
		if err := adv.AdvertiseBridge(ctx, info); err != nil {
			return err
		}
		defer adv.StopAll()
		logger.Info("bridge advertised", "name", info.Name, "service", discovery.ServiceTypeBridge)
	}

	return serveBridge(ctx, ln, tr, logger)
}

// serveBridge forwards bytes between one TCP client at a time and tr until
// ctx is done.
func serveBridge(ctx context.Context, ln net.Listener, tr transport.Transport, logger *slog.Logger) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	if err := tr.SetTimeout(bridgePollTimeout); err != nil {
		return err
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		logger.Info("client connected", "remote", conn.RemoteAddr().String())
		if err := transport.Purge(tr, transport.DirectionAll); err != nil {
			logger.Warn("purge failed", "error", err)
		}
		err = pump(ctx, conn, tr)
		conn.Close()
		if err != nil {
			logger.Warn("client session ended", "remote", conn.RemoteAddr().String(), "error", err)
			continue
		}
		logger.Info("client disconnected", "remote", conn.RemoteAddr().String())
	}
}

// pump copies conn to tr and tr to conn until either side fails. A client
// hang-up is a clean end.
func pump(ctx context.Context, conn net.Conn, tr transport.Transport) error {
	done := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }

	var wg sync.WaitGroup
	var upErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer stop()
		buf := make([]byte, 4096)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				if werr := transport.WriteAll(tr, buf[:n]); werr != nil {
					upErr = werr
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	var downErr error
	buf := make([]byte, 4096)
	for {
		select {
		case <-done:
			wg.Wait()
			return errors.Join(upErr, downErr)
		case <-ctx.Done():
			conn.Close()
			wg.Wait()
			return nil
		default:
		}

		n, err := tr.Read(buf)
		if n > 0 {
			if _, werr := conn.Write(buf[:n]); werr != nil {
				stop()
				continue
			}
		}
		if err != nil {
			if status.Of(err) == status.Timeout {
				if n == 0 {
					// Some transports return at once when idle.
					time.Sleep(time.Millisecond)
				}
				continue
			}
			downErr = err
			conn.Close()
			stop()
		}
	}
}

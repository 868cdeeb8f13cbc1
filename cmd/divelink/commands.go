package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/divelink/divelink-go/pkg/archive"
	"github.com/divelink/divelink-go/pkg/descriptor"
	"github.com/divelink/divelink-go/pkg/device"
	"github.com/divelink/divelink-go/pkg/discovery"
	"github.com/divelink/divelink-go/pkg/divelog"
	"github.com/divelink/divelink-go/pkg/parser"
	"github.com/divelink/divelink-go/pkg/persistence"
	"github.com/divelink/divelink-go/pkg/registry"
)

// newFlagSet creates a subcommand flag set with the global flags bound to
// cfg and a usage text built from synopsis.
func newFlagSet(name, synopsis string, cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "divelink %s - %s\n\nFlags:\n", name, synopsis)
		fs.PrintDefaults()
	}
	cfg.RegisterFlags(fs)
	return fs
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// --- list ---

func runList(args []string) error {
	cfg := DefaultConfig()
	fs := newFlagSet("list", "List supported families, serial ports and network bridges", &cfg)
	serial := fs.Bool("serial", false, "Scan local serial ports for known interface cables")
	mdns := fs.Bool("mdns", false, "Browse the local network for serial bridges")
	if err := cfg.parseFlags(fs, args); err != nil {
		return err
	}

	if err := listFamilies(os.Stdout); err != nil {
		return err
	}
	if *serial {
		ports, err := descriptor.ScanSerialPorts()
		if err != nil {
			return err
		}
		listPorts(os.Stdout, ports)
	}
	if *mdns {
		ctx, cancel := signalContext()
		defer cancel()
		browser, err := discovery.NewMDNSBrowser(discovery.DefaultBrowserConfig())
		if err != nil {
			return err
		}
		defer browser.Stop()
		bridges, err := descriptor.BrowseBridges(ctx, browser)
		if err != nil {
			return err
		}
		listBridges(os.Stdout, bridges)
	}
	return nil
}

// listFamilies prints the descriptor table, marking families with a
// registered backend.
func listFamilies(w io.Writer) error {
	all, err := descriptor.All(descriptor.NewIterator())
	if err != nil {
		return err
	}
	supported := make(map[device.Type]bool)
	for _, t := range registry.DeviceTypes() {
		supported[t] = true
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VENDOR\tPRODUCT\tFAMILY\tTRANSPORTS\tSUPPORTED")
	for _, d := range all {
		mark := ""
		if supported[d.Type] {
			mark = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Vendor, d.Product, d.Type, d.Transports, mark)
	}
	return tw.Flush()
}

func listPorts(w io.Writer, ports []descriptor.Port) {
	fmt.Fprintf(w, "\nSerial ports (%d):\n", len(ports))
	for _, p := range ports {
		fmt.Fprintf(w, "  %s", p.Name)
		if p.USB != nil {
			fmt.Fprintf(w, " [%s]", p.USB)
		}
		if p.Product != "" {
			fmt.Fprintf(w, " %s", p.Product)
		}
		fmt.Fprintln(w)
		for _, d := range p.Candidates {
			fmt.Fprintf(w, "      %s (%s)\n", d, d.Type)
		}
	}
}

func listBridges(w io.Writer, bridges []descriptor.Bridge) {
	fmt.Fprintf(w, "\nNetwork bridges (%d):\n", len(bridges))
	for _, b := range bridges {
		svc := b.Service
		fmt.Fprintf(w, "  %s at %s (%s", svc.InstanceName, svc.Address(), svc.Device)
		if svc.Serial != "" {
			fmt.Fprintf(w, ", serial %s", svc.Serial)
		}
		fmt.Fprintln(w, ")")
	}
}

// --- dump ---

func runDump(args []string) error {
	cfg := DefaultConfig()
	fs := newFlagSet("dump", "Download the full device memory to a file", &cfg)
	output := fs.String("o", "", "Output file (required)")
	if err := cfg.parseFlags(fs, args); err != nil {
		return err
	}
	if *output == "" {
		fs.Usage()
		return errors.New("output file (-o) required")
	}

	ctx, cancel := signalContext()
	defer cancel()
	n, err := dump(ctx, &cfg, *output)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d bytes to %s\n", n, *output)
	return nil
}

// dump writes the full memory image of the device to path.
func dump(ctx context.Context, cfg *Config, path string) (int, error) {
	logger := newLogger(cfg.LogLevel)
	l, err := openLink(ctx, cfg, logger, device.WithProgress(progressPrinter("dump")))
	if err != nil {
		return 0, err
	}
	defer l.Close()

	if err := l.Handshake(); err != nil {
		return 0, err
	}

	// Sized for the largest memory of any supported family.
	buf := make([]byte, 16<<20)
	n, err := l.Session.Dump(buf)
	if err != nil {
		return 0, fmt.Errorf("dump: %w", err)
	}
	if err := os.WriteFile(path, buf[:n], 0o644); err != nil {
		return 0, err
	}
	return n, nil
}

// --- download ---

func runDownload(args []string) error {
	cfg := DefaultConfig()
	fs := newFlagSet("download", "Download new dives into an archive", &cfg)
	fs.StringVar(&cfg.Archive, "archive", cfg.Archive, "Archive file to append dives to (required)")
	fs.StringVar(&cfg.StateFile, "state", cfg.StateFile, "Fingerprint state file for incremental downloads")
	full := fs.Bool("full", false, "Ignore the stored fingerprint and download every dive")
	if err := cfg.parseFlags(fs, args); err != nil {
		return err
	}
	if cfg.Archive == "" {
		fs.Usage()
		return errors.New("archive file (-archive) required")
	}

	ctx, cancel := signalContext()
	defer cancel()
	n, err := download(ctx, &cfg, *full)
	if err != nil {
		return err
	}
	fmt.Printf("Downloaded %d new dive(s) to %s\n", n, cfg.Archive)
	return nil
}

// download appends every dive newer than the stored fingerprint to the
// archive and records the newest fingerprint. Dives arrive newest first.
func download(ctx context.Context, cfg *Config, full bool) (int, error) {
	logger := newLogger(cfg.LogLevel)
	l, err := openLink(ctx, cfg, logger, device.WithProgress(progressPrinter("download")))
	if err != nil {
		return 0, err
	}
	defer l.Close()

	if err := l.Handshake(); err != nil {
		return 0, err
	}
	t, info := l.Session.Type(), l.Session.Info()

	var store *persistence.FingerprintStore
	if cfg.StateFile != "" {
		store = persistence.NewFingerprintStore(cfg.StateFile)
		if !full {
			fp, err := store.Fingerprint(t, info.Serial)
			if err != nil {
				return 0, err
			}
			l.Session.SetFingerprint(fp)
		}
	}

	w, err := archive.OpenAppend(cfg.Archive)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer w.Close()

	var newest []byte
	var appendErr error
	err = l.Session.Foreach(func(data, fingerprint []byte) bool {
		if newest == nil {
			newest = append([]byte(nil), fingerprint...)
		}
		if appendErr = w.Append(archive.NewRecord(t, info, data, fingerprint)); appendErr != nil {
			return false
		}
		return ctx.Err() == nil
	})
	if err != nil {
		return w.Count(), fmt.Errorf("download: %w", err)
	}
	if appendErr != nil {
		return w.Count(), appendErr
	}
	// Older new dives are still on the device; keep the stored fingerprint
	// so the next run fetches them.
	if err := ctx.Err(); err != nil {
		return w.Count(), fmt.Errorf("download interrupted: %w", err)
	}
	if err := w.Close(); err != nil {
		return w.Count(), err
	}

	if store != nil {
		if err := store.Record(t, info, newest, w.Count()); err != nil {
			return w.Count(), fmt.Errorf("save state: %w", err)
		}
	}
	return w.Count(), nil
}

// --- parse ---

func runParse(args []string) error {
	cfg := DefaultConfig()
	fs := newFlagSet("parse", "Decode dives from a raw dive file or an archive", &cfg)
	format := fs.String("format", "json", "Output format (json, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	tz := fs.String("tz", "Local", "Time zone for dive start times")
	if err := cfg.parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("input file required")
	}
	f, err := divelog.ParseFormat(*format)
	if err != nil {
		return err
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		return err
	}

	dives, err := parseFile(fs.Arg(0), cfg.DeviceType(), loc)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		out, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
		w = out
	}
	return divelog.Write(w, f, dives...)
}

// parseFile decodes an archive, or a single raw dive of family t.
func parseFile(path string, t device.Type, loc *time.Location) ([]*divelog.Dive, error) {
	if r, err := archive.Open(path); err == nil {
		defer r.Close()
		return parseArchive(r, loc)
	} else if !errors.Is(err, archive.ErrNotArchive) {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := decode(t, data, nil, loc)
	if err != nil {
		return nil, err
	}
	return []*divelog.Dive{d}, nil
}

func parseArchive(r *archive.Reader, loc *time.Location) ([]*divelog.Dive, error) {
	var dives []*divelog.Dive
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return dives, nil
		}
		if err != nil {
			return dives, err
		}
		t, err := rec.Type()
		if err != nil {
			return dives, fmt.Errorf("record %s: %w", rec.ID, err)
		}
		d, err := decode(t, rec.Data, rec.Fingerprint, loc)
		if err != nil {
			return dives, fmt.Errorf("record %s: %w", rec.ID, err)
		}
		dives = append(dives, d)
	}
}

func decode(t device.Type, data, fingerprint []byte, loc *time.Location) (*divelog.Dive, error) {
	s, err := registry.NewParser(t, parser.WithLocation(loc))
	if err != nil {
		return nil, err
	}
	defer s.Destroy()
	if err := s.SetData(data); err != nil {
		return nil, err
	}
	d, err := divelog.Build(s)
	if err != nil {
		return nil, err
	}
	if len(fingerprint) > 0 {
		d.Fingerprint = hex.EncodeToString(fingerprint)
	}
	return d, nil
}

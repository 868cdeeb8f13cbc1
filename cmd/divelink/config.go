package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/divelink/divelink-go/pkg/device"
)

// Config holds the settings shared by every subcommand. Values come from
// the optional YAML file and are overridden by flags set on the command
// line.
type Config struct {
	ConfigFile string `yaml:"-"`

	Device      string        `yaml:"device"`
	Port        string        `yaml:"port"`
	Baud        int           `yaml:"baud"`
	Timeout     time.Duration `yaml:"timeout"`
	Retries     int           `yaml:"retries"`
	CaptureLog  string        `yaml:"capture_log"`
	Archive     string        `yaml:"archive"`
	StateFile   string        `yaml:"state_file"`
	MetricsFile string        `yaml:"metrics_file"`
	LogLevel    string        `yaml:"log_level"`
	Bridge      string        `yaml:"bridge"`
	Simulate    bool          `yaml:"simulate"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Device:   "predator",
		Baud:     115200,
		Timeout:  3 * time.Second,
		Retries:  device.DefaultMaxAttempts,
		LogLevel: "info",
	}
}

// RegisterFlags binds the global flags to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&c.Device, "device", c.Device, "Device family (e.g. predator)")
	fs.StringVar(&c.Port, "port", c.Port, "Serial port path")
	fs.IntVar(&c.Baud, "baud", c.Baud, "Serial baud rate")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Transport read timeout")
	fs.IntVar(&c.Retries, "retries", c.Retries, "Attempts per transfer, including the first")
	fs.StringVar(&c.CaptureLog, "capture", c.CaptureLog, "Write a protocol capture to this .dlog file")
	fs.StringVar(&c.MetricsFile, "metrics-file", c.MetricsFile, "Write Prometheus metrics to this textfile on exit")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&c.Bridge, "bridge", c.Bridge, "Connect to a serial bridge at host:port instead of a local port")
	fs.BoolVar(&c.Simulate, "simulate", c.Simulate, "Use the built-in Predator simulator")
}

// parseFlags parses args into c, then fills every flag that was not given
// explicitly from the config file named by -config.
func (c *Config) parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.ConfigFile == "" {
		return c.Validate()
	}

	file := *c
	if err := file.Load(c.ConfigFile); err != nil {
		return err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	c.merge(file, set)
	return c.Validate()
}

// Load reads YAML from path into c. Keys missing from the file keep their
// current values.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// merge copies values from file for every flag not in set.
func (c *Config) merge(file Config, set map[string]bool) {
	pick := func(name string, apply func()) {
		if !set[name] {
			apply()
		}
	}
	pick("device", func() { c.Device = file.Device })
	pick("port", func() { c.Port = file.Port })
	pick("baud", func() { c.Baud = file.Baud })
	pick("timeout", func() { c.Timeout = file.Timeout })
	pick("retries", func() { c.Retries = file.Retries })
	pick("capture", func() { c.CaptureLog = file.CaptureLog })
	pick("metrics-file", func() { c.MetricsFile = file.MetricsFile })
	pick("log-level", func() { c.LogLevel = file.LogLevel })
	pick("bridge", func() { c.Bridge = file.Bridge })
	pick("simulate", func() { c.Simulate = file.Simulate })
	pick("archive", func() { c.Archive = file.Archive })
	pick("state", func() { c.StateFile = file.StateFile })
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error
	if _, err := device.ParseType(c.Device); err != nil {
		errs = append(errs, fmt.Errorf("device: %w", err))
	}
	if c.Baud <= 0 {
		errs = append(errs, fmt.Errorf("baud must be positive, got %d", c.Baud))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.Retries < 1 {
		errs = append(errs, fmt.Errorf("retries must be at least 1, got %d", c.Retries))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Simulate && c.Bridge != "" {
		errs = append(errs, errors.New("simulate and bridge are mutually exclusive"))
	}
	return errors.Join(errs...)
}

// DeviceType returns the parsed device family.
func (c *Config) DeviceType() device.Type {
	t, _ := device.ParseType(c.Device)
	return t
}

// RetryConfig returns the retry policy for device sessions.
func (c *Config) RetryConfig() device.RetryConfig {
	rc := device.DefaultRetryConfig()
	rc.MaxAttempts = c.Retries
	return rc
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s (use: debug, info, warn, error)", s)
	}
}

func levelOf(s string) slog.Level {
	lvl, err := parseLevel(s)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// newLogger builds the operational logger writing to stderr.
func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelOf(level)}))
}

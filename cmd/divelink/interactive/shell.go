// Package interactive provides the interactive command-line interface
// for divelink.
package interactive

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/divelink/divelink-go/pkg/device"
	"github.com/divelink/divelink-go/pkg/divelog"
	"github.com/divelink/divelink-go/pkg/transport"
)

// Connector opens and releases the device session used by the shell.
// This interface keeps the shell independent of how the main package
// selects and configures transports.
type Connector interface {
	// Connect opens a new session. Handshake is left to the shell.
	Connect(ctx context.Context) (*device.Session, error)

	// Disconnect releases the session opened by Connect.
	Disconnect() error

	// Decode parses one downloaded dive of the session's family.
	Decode(t device.Type, data, fingerprint []byte) (*divelog.Dive, error)
}

// dive is one entry of the last "dives" listing.
type dive struct {
	data        []byte
	fingerprint []byte
}

// Shell handles interactive mode for divelink.
type Shell struct {
	conn Connector
	out  io.Writer
	rl   *readline.Instance

	session *device.Session
	dives   []dive
}

// New creates a new interactive shell reading from the terminal.
func New(conn Connector) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "divelink> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{conn: conn, out: rl.Stdout(), rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (sh *Shell) Stdout() io.Writer {
	if sh.rl == nil {
		return os.Stdout
	}
	return sh.rl.Stdout()
}

// Run starts the interactive command loop.
func (sh *Shell) Run(ctx context.Context) {
	defer sh.rl.Close()
	defer sh.disconnect()

	sh.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := sh.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(sh.out, "Exiting...")
			return
		}
		if !sh.Execute(ctx, line) {
			return
		}
	}
}

// Execute runs one command line. It returns false when the shell should
// exit.
func (sh *Shell) Execute(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		sh.printHelp()

	case "open", "o":
		sh.cmdOpen(ctx)

	case "handshake", "hs":
		sh.cmdHandshake()

	case "version", "v":
		sh.cmdVersion()

	case "read", "r":
		sh.cmdRead(args)

	case "dump":
		sh.cmdDump(args)

	case "dives", "d":
		sh.cmdDives()

	case "parse", "p":
		sh.cmdParse(args)

	case "status", "s":
		sh.cmdStatus()

	case "close", "c":
		sh.disconnect()
		fmt.Fprintln(sh.out, "Session closed")

	case "quit", "exit", "q":
		fmt.Fprintln(sh.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(sh.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (sh *Shell) printHelp() {
	fmt.Fprintln(sh.out, `
divelink Commands:
  Session:
    open                 - Open a session on the configured transport
    handshake            - Identify the dive computer
    version              - Read the firmware version
    status               - Show session state and device info
    close                - Close the session

  Memory:
    read <addr> <len>    - Hex dump len bytes at addr (hex or decimal)
    dump <file>          - Write the full memory image to file

  Dives:
    dives                - List stored dives, newest first
    parse <n>            - Decode dive n of the last listing

  General:
    help                 - Show this help
    quit                 - Exit`)
}

// requireSession prints a hint and returns nil when no session is open.
func (sh *Shell) requireSession() *device.Session {
	if sh.session == nil {
		fmt.Fprintln(sh.out, "No session (use 'open' first)")
	}
	return sh.session
}

func (sh *Shell) disconnect() {
	if sh.session == nil {
		return
	}
	sh.session = nil
	sh.dives = nil
	if err := sh.conn.Disconnect(); err != nil {
		fmt.Fprintf(sh.out, "Close error: %v\n", err)
	}
}

func (sh *Shell) cmdOpen(ctx context.Context) {
	sh.disconnect()
	s, err := sh.conn.Connect(ctx)
	if err != nil {
		fmt.Fprintf(sh.out, "Open failed: %v\n", err)
		return
	}
	sh.session = s
	fmt.Fprintf(sh.out, "Session %s open (%s on %s)\n", s.ID(), s.Type(), transport.Name(s.Transport()))
}

func (sh *Shell) cmdHandshake() {
	s := sh.requireSession()
	if s == nil {
		return
	}
	buf := make([]byte, 64)
	n, err := s.Handshake(buf)
	if err != nil {
		fmt.Fprintf(sh.out, "Handshake failed: %v\n", err)
		return
	}
	info := s.Info()
	fmt.Fprintf(sh.out, "%s serial %s (%d bytes: %s)\n", info.Model, info.Serial, n, hex.EncodeToString(buf[:n]))
}

func (sh *Shell) cmdVersion() {
	s := sh.requireSession()
	if s == nil {
		return
	}
	buf := make([]byte, 64)
	if _, err := s.Version(buf); err != nil {
		fmt.Fprintf(sh.out, "Version failed: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "Firmware: %s\n", s.Info().Firmware)
}

func (sh *Shell) cmdRead(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(sh.out, "Usage: read <addr> <len>")
		return
	}
	s := sh.requireSession()
	if s == nil {
		return
	}
	addr, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		fmt.Fprintf(sh.out, "Invalid address: %v\n", err)
		return
	}
	n, err := strconv.ParseUint(args[1], 0, 16)
	if err != nil || n == 0 {
		fmt.Fprintf(sh.out, "Invalid length: %s\n", args[1])
		return
	}
	buf := make([]byte, n)
	if err := s.Read(uint32(addr), buf); err != nil {
		fmt.Fprintf(sh.out, "Read failed: %v\n", err)
		return
	}
	fmt.Fprint(sh.out, hex.Dump(buf))
}

func (sh *Shell) cmdDump(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(sh.out, "Usage: dump <file>")
		return
	}
	s := sh.requireSession()
	if s == nil {
		return
	}
	buf := make([]byte, 16<<20)
	n, err := s.Dump(buf)
	if err != nil {
		fmt.Fprintf(sh.out, "Dump failed: %v\n", err)
		return
	}
	if err := os.WriteFile(args[0], buf[:n], 0o644); err != nil {
		fmt.Fprintf(sh.out, "Write failed: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "Wrote %d bytes to %s\n", n, args[0])
}

func (sh *Shell) cmdDives() {
	s := sh.requireSession()
	if s == nil {
		return
	}
	sh.dives = nil
	err := s.Foreach(func(data, fingerprint []byte) bool {
		sh.dives = append(sh.dives, dive{
			data:        append([]byte(nil), data...),
			fingerprint: append([]byte(nil), fingerprint...),
		})
		return true
	})
	if err != nil {
		fmt.Fprintf(sh.out, "Download failed: %v\n", err)
		return
	}
	if len(sh.dives) == 0 {
		fmt.Fprintln(sh.out, "No dives stored")
		return
	}
	fmt.Fprintf(sh.out, "\nDives (%d):\n", len(sh.dives))
	for i, d := range sh.dives {
		fmt.Fprintf(sh.out, "  %d. %d bytes, fingerprint %s\n", i+1, len(d.data), hex.EncodeToString(d.fingerprint))
	}
}

func (sh *Shell) cmdParse(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(sh.out, "Usage: parse <n>")
		return
	}
	s := sh.requireSession()
	if s == nil {
		return
	}
	i, err := strconv.Atoi(args[0])
	if err != nil || i < 1 || i > len(sh.dives) {
		fmt.Fprintf(sh.out, "No dive %s (use 'dives' to list)\n", args[0])
		return
	}
	d := sh.dives[i-1]
	parsed, err := sh.conn.Decode(s.Type(), d.data, d.fingerprint)
	if err != nil {
		fmt.Fprintf(sh.out, "Parse failed: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "Start:     %s\n", parsed.Start.Format("2006-01-02 15:04"))
	fmt.Fprintf(sh.out, "Duration:  %s\n", parsed.Duration)
	fmt.Fprintf(sh.out, "Max depth: %.1f m\n", parsed.MaxDepth)
	for j, mix := range parsed.GasMixes {
		if mix.Oxygen == 0 {
			continue
		}
		fmt.Fprintf(sh.out, "Gas %d:     O2 %.0f%% He %.0f%%\n", j+1, mix.Oxygen*100, mix.Helium*100)
	}
	fmt.Fprintf(sh.out, "Samples:   %d\n", len(parsed.Profile))
}

func (sh *Shell) cmdStatus() {
	s := sh.requireSession()
	if s == nil {
		return
	}
	info := s.Info()
	fmt.Fprintf(sh.out, "Session:  %s\n", s.ID())
	fmt.Fprintf(sh.out, "Device:   %s\n", s.Type())
	fmt.Fprintf(sh.out, "State:    %s\n", s.State())
	if info.Model != "" {
		fmt.Fprintf(sh.out, "Model:    %s\n", info.Model)
		fmt.Fprintf(sh.out, "Serial:   %s\n", info.Serial)
	}
	if info.Firmware != "" {
		fmt.Fprintf(sh.out, "Firmware: %s\n", info.Firmware)
	}
}

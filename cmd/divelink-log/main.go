// Command divelink-log views and analyzes divelink capture files.
//
// Capture files are written by divelink when run with the -capture flag.
// They hold every transport frame, device command, state change and
// progress notification of a download session.
//
// Usage:
//
//	divelink-log <command> [flags] <file.dlog>
//
// Commands:
//
//	view     View capture file in human-readable format
//	export   Export capture file to JSONL or CSV format
//	filter   Filter capture file and write to new file
//	stats    Show statistics about the capture file
//
// Examples:
//
//	# View all events
//	divelink-log view predator.dlog
//
//	# View only device commands
//	divelink-log view --category command predator.dlog
//
//	# View only bytes sent to the dive computer
//	divelink-log view --layer transport --direction out predator.dlog
//
//	# Export to CSV
//	divelink-log export --format csv -o predator.csv predator.dlog
//
//	# Keep one session and save to new file
//	divelink-log filter --session 3f2a9c1e-5b7d-4c2a-9e61-0d4f8a2b6c13 -o session.dlog predator.dlog
//
//	# Show statistics
//	divelink-log stats predator.dlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/divelink/divelink-go/cmd/divelink-log/commands"
)

const usage = `divelink-log - Dive Computer Capture Analyzer

Usage:
  divelink-log <command> [flags] <file.dlog>

Commands:
  view     View capture file in human-readable format
  export   Export capture file to JSONL or CSV format
  filter   Filter capture file and write to new file
  stats    Show statistics about the capture file

Use "divelink-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// pathArg returns the single positional capture file argument.
func pathArg(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `divelink-log view - View capture file in human-readable format

Usage:
  divelink-log view [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	layer := fs.String("layer", "", "Filter by layer (transport, device, parser)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (frame, command, state, progress, error)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	filter, err := commands.BuildFilter(commands.FilterOptions{
		Layer:     *layer,
		Direction: *direction,
		Category:  *category,
	})
	if err != nil {
		fail(err)
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `divelink-log export - Export capture file to JSONL or CSV format

Usage:
  divelink-log export [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `divelink-log filter - Filter capture file and write to new file

Usage:
  divelink-log filter [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	var opts commands.FilterOptions
	fs.StringVar(&opts.Output, "o", "", "Output file (required)")
	fs.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
	fs.StringVar(&opts.DeviceType, "device", "", "Filter by device family")
	fs.StringVar(&opts.Serial, "serial", "", "Filter by dive computer serial number")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (transport, device, parser)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (frame, command, state, progress, error)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if opts.Output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, opts)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, opts.Output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `divelink-log stats - Show statistics about the capture file

Usage:
  divelink-log stats <file.dlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}

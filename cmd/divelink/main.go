// Command divelink downloads and decodes dives from dive computers.
//
// Usage:
//
//	divelink <command> [flags] [args]
//
// Commands:
//
//	list      List supported families, matching serial ports and network bridges
//	dump      Download the full device memory to a file
//	download  Download new dives into an archive
//	parse     Decode dives from a raw file or an archive
//	bridge    Serve a local serial port over TCP and advertise it via mDNS
//	shell     Interactive session with a dive computer
//
// Every command that talks to a device accepts:
//
//	-config string        Configuration file path (YAML)
//	-device string        Device family (default "predator")
//	-port string          Serial port path
//	-bridge string        Serial bridge host:port
//	-simulate             Use the built-in Predator simulator
//	-capture string       Protocol capture file (.dlog)
//	-metrics-file string  Prometheus textfile written on exit
//	-log-level string     Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Full memory dump from a Predator on a USB serial cable
//	divelink dump -port /dev/ttyUSB0 -o predator.bin
//
//	# Incremental download into an archive, remembering the newest dive
//	divelink download -port /dev/ttyUSB0 -archive dives.dca -state state.json
//
//	# Decode an archive to CSV
//	divelink parse -format csv dives.dca
//
//	# Try everything against the simulator with a protocol capture
//	divelink download -simulate -archive sim.dca -capture sim.dlog
package main

import (
	"fmt"
	"os"
)

const usage = `divelink - Dive Computer Download Tool

Usage:
  divelink <command> [flags] [args]

Commands:
  list      List supported families, matching serial ports and network bridges
  dump      Download the full device memory to a file
  download  Download new dives into an archive
  parse     Decode dives from a raw file or an archive
  bridge    Serve a local serial port over TCP and advertise it via mDNS
  shell     Interactive session with a dive computer

Use "divelink <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "list":
		err = runList(args)
	case "dump":
		err = runDump(args)
	case "download":
		err = runDownload(args)
	case "parse":
		err = runParse(args)
	case "bridge":
		err = runBridge(args)
	case "shell":
		err = runShell(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

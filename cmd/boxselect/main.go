// Package main is the entry point for the boxselect demo: a terminal grid
// of cells selected by dragging a marquee with the mouse.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/boxselect/internal/app"
	"github.com/dshills/boxselect/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, exit, code := parseFlags(os.Args[1:])
	if exit {
		return code
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		if _, ok := <-signals; ok {
			application.Shutdown()
		}
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags parses args into application options. exit reports that the
// program should stop with code, e.g. after -help or a bad flag.
func parseFlags(args []string) (opts app.Options, exit bool, code int) {
	fs := flag.NewFlagSet("boxselect", flag.ContinueOnError)

	var showVersion bool
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to a TOML or YAML configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error, off)")
	fs.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	fs.StringVar(&opts.ScriptPath, "script", "", "Lua script defining on_change(selected, previous)")
	fs.BoolVar(&opts.Watch, "watch", true, "Reload the configuration file when it changes")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "boxselect - drag a marquee to select cells\n\n")
		fmt.Fprintf(out, "Usage: boxselect [options]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nKeys:\n")
		fmt.Fprintf(out, "  q, Ctrl-C   quit\n")
		fmt.Fprintf(out, "  r           re-measure cells\n")
		fmt.Fprintf(out, "  Esc         cancel the current drag\n")
		fmt.Fprintf(out, "\nEnvironment:\n")
		fmt.Fprintf(out, "  BOXSELECT_<SECTION>_<KEY> overrides a setting, e.g. BOXSELECT_GRID_CELLS=40\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, true, 0
		}
		return opts, true, 2
	}

	if showVersion {
		fmt.Printf("boxselect %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, true, 0
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error", "off":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, error or off)\n", opts.LogLevel)
		return opts, true, 1
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n", fs.Args())
		return opts, true, 2
	}

	return opts, false, 0
}

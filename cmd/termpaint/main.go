// Package main is the termpaint demo driver. It renders a sample
// terminal grid through the frame scheduler and either writes the
// final frame as a PNG (2d backend) or reports encoded command counts
// (gpu backend).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/dshills/termpaint/internal/config"
	"github.com/dshills/termpaint/internal/render/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	backend    string
	output     string
	cols       int
	rows       int
	frames     int
	logLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "termpaint",
	})
	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", opts.logLevel)
		return 1
	}
	logger.SetLevel(level)

	profile, err := config.Load(opts.configPath)
	if err != nil {
		logger.Error("loading profile", "path", opts.configPath, "err", err)
		return 1
	}
	if opts.backend != "" {
		profile.Backend = opts.backend
	}
	if err := profile.Validate(); err != nil {
		logger.Error("invalid profile", "err", err)
		return 1
	}

	bopts, err := profile.BackendOptions()
	if err != nil {
		logger.Error("resolving backend", "err", err)
		return 1
	}
	logger.Info("starting demo",
		"backend", bopts.Kind,
		"cols", opts.cols, "rows", opts.rows, "frames", opts.frames)

	r, err := backend.New(bopts)
	if err != nil {
		logger.Error("creating backend", "err", err)
		return 1
	}
	defer r.Dispose()

	d := &demo{
		renderer: r,
		profile:  profile,
		cols:     opts.cols,
		rows:     opts.rows,
		frames:   opts.frames,
		output:   opts.output,
		logger:   logger,
	}
	if err := d.run(bopts.Kind); err != nil {
		logger.Error("demo failed", "err", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "termpaint.toml", "Path to profile file")
	flag.StringVar(&opts.configPath, "c", "termpaint.toml", "Path to profile file (shorthand)")
	flag.StringVar(&opts.backend, "backend", "", "Backend override (2d or gpu)")
	flag.StringVar(&opts.output, "o", "termpaint.png", "Output PNG path (2d backend)")
	flag.IntVar(&opts.cols, "cols", 80, "Grid columns")
	flag.IntVar(&opts.rows, "rows", 24, "Grid rows")
	flag.IntVar(&opts.frames, "frames", 6, "Number of frames to render")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Termpaint - terminal grid frame renderer demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: termpaint [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  termpaint                   Render with defaults, write termpaint.png\n")
		fmt.Fprintf(os.Stderr, "  termpaint -backend gpu      Encode commands instead of pixels\n")
		fmt.Fprintf(os.Stderr, "  termpaint -c my.toml -o out.png\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Termpaint %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.cols < 1 || opts.rows < 1 {
		fmt.Fprintln(os.Stderr, "Error: cols and rows must be positive")
		os.Exit(1)
	}
	if opts.frames < 1 {
		opts.frames = 1
	}

	return opts
}

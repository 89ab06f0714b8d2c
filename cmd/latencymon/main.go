package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/shariq818/latencymon/internal/config"
	"github.com/shariq818/latencymon/internal/logging"
	"github.com/shariq818/latencymon/internal/report"
	"github.com/shariq818/latencymon/internal/runner"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (searched in . and ./configs when empty)")
	targetsFlag := flag.String("targets", "", "comma-separated URLs; prompts interactively when empty")
	samples := flag.Int("samples", 0, "samples per URL (0 uses the configured default)")
	timeout := flag.Duration("timeout", 0, "per-request timeout (0 uses the configured default)")
	concurrency := flag.Int("concurrency", 0, "worker pool size (0 uses the configured default)")
	spoof := flag.Bool("spoof-ua", false, "send a browser-like User-Agent")
	detailedOut := flag.String("detailed-out", "", "detailed CSV path (empty uses the configured default)")
	summaryOut := flag.String("summary-out", "", "summary CSV path (empty uses the configured default)")
	debug := flag.Bool("debug", false, "log per-batch debug events")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.LogDir, *debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := runner.Options{
		Targets:        cfg.Targets,
		Samples:        cfg.Samples,
		Timeout:        cfg.Timeout,
		Concurrency:    cfg.Concurrency,
		SpoofUserAgent: cfg.SpoofUserAgent,
	}
	if *targetsFlag != "" {
		opts.Targets = strings.Split(*targetsFlag, ",")
	}
	if *samples > 0 {
		opts.Samples = *samples
	}
	if *timeout > 0 {
		opts.Timeout = *timeout
	}
	if *concurrency > 0 {
		opts.Concurrency = *concurrency
	}
	if *spoof {
		opts.SpoofUserAgent = true
	}

	// No targets from flags or config: fall back to the interactive prompt.
	if len(opts.Targets) == 0 {
		var ok bool
		opts, ok = promptOptions(bufio.NewReader(os.Stdin), os.Stdout, opts)
		if !ok {
			fmt.Println("No URLs provided. Exiting.")
			return
		}
	}

	detailedPath := cfg.Output.Detailed
	if *detailedOut != "" {
		detailedPath = *detailedOut
	}
	summaryPath := cfg.Output.Summary
	if *summaryOut != "" {
		summaryPath = *summaryOut
	}

	run, err := runner.New(logger, os.Stdout).Run(context.Background(), opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "run:", err)
		os.Exit(1)
	}

	if err := report.WriteFiles(detailedPath, summaryPath, run); err != nil {
		fmt.Fprintln(os.Stderr, "write reports:", err)
		os.Exit(1)
	}
	fmt.Printf("\nSaved detailed results to %s and summary to %s\n", detailedPath, summaryPath)
}

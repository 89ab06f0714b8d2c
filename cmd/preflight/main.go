// cmd/preflight/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shariq818/latencymon/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (searched in . and ./configs when empty)")
	flag.Parse()

	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail("config: " + err.Error())
	}
	ok(fmt.Sprintf("config loaded (samples=%d timeout=%s concurrency=%d)", cfg.Samples, cfg.Timeout, cfg.Concurrency))

	if info, err := os.Stat(cfg.LogDir); err != nil {
		warn(fmt.Sprintf("log dir %s missing; it will be created on first run", cfg.LogDir))
	} else if !info.IsDir() {
		fail(fmt.Sprintf("log dir %s exists but is not a directory", cfg.LogDir))
	} else {
		ok("log dir " + cfg.LogDir)
	}

	for _, p := range []string{cfg.Output.Detailed, cfg.Output.Summary} {
		dir := filepath.Dir(p)
		if info, err := os.Stat(dir); err != nil {
			fail(fmt.Sprintf("output dir %s for %s does not exist", dir, p))
		} else if !info.IsDir() {
			fail(fmt.Sprintf("output dir %s for %s is not a directory", dir, p))
		}
		ok("output path " + p)
	}

	if len(cfg.Targets) == 0 {
		warn("no targets configured; runs will rely on -targets or the interactive prompt")
	} else {
		ok(fmt.Sprintf("%d configured target(s)", len(cfg.Targets)))
	}

	if cfg.DatabaseURL == "" {
		warn("database_url empty; the API keeps run history in memory only")
	} else {
		ok("database_url present")
	}

	if cfg.Interval == 0 {
		warn("interval is 0; the API will not run scheduled measurements")
	} else if len(cfg.Targets) == 0 {
		warn(fmt.Sprintf("interval %s set but no targets configured; the scheduler stays disabled", cfg.Interval))
	} else {
		ok(fmt.Sprintf("scheduled runs every %s", cfg.Interval))
	}

	if cfg.SpoofUserAgent {
		warn("spoof_user_agent is on; requests will carry a browser-like User-Agent")
	}

	ok("preflight passed")
}

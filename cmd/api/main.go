package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/shariq818/latencymon/internal/config"
	"github.com/shariq818/latencymon/internal/httpapi"
	"github.com/shariq818/latencymon/internal/logging"
	"github.com/shariq818/latencymon/internal/repo"
	"github.com/shariq818/latencymon/internal/repo/memory"
	"github.com/shariq818/latencymon/internal/repo/postgres"
	"github.com/shariq818/latencymon/internal/runner"
	"github.com/shariq818/latencymon/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (searched in . and ./configs when empty)")
	debug := flag.Bool("debug", false, "log per-batch debug events")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var store repo.RunStore = memory.New()
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		store = pg
		logger.Info("run_store", zap.String("backend", "postgres"))
	}

	defaults := runner.Options{
		Samples:        cfg.Samples,
		Timeout:        cfg.Timeout,
		Concurrency:    cfg.Concurrency,
		SpoofUserAgent: cfg.SpoofUserAgent,
	}

	// Progress lines go nowhere in API mode; callers get the JSON body.
	// The Serial gate is shared by the API and the scheduler, so at most
	// one run measures the network at a time.
	eng := runner.NewSerial(runner.New(logger, io.Discard))
	api := httpapi.NewServer(logger, eng, store, defaults)

	scheduled := defaults
	scheduled.Targets = cfg.Targets
	go scheduler.New(logger, eng, store, scheduled, cfg.Interval).Run(ctx)

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}

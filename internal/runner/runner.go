package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shariq818/latencymon/internal/domain"
	"github.com/shariq818/latencymon/internal/probe"
	"github.com/shariq818/latencymon/internal/sampler"
	"github.com/shariq818/latencymon/internal/stats"
)

// ErrNoTargets is returned when the target list is empty after normalization.
// The run terminates before any probing.
var ErrNoTargets = errors.New("no targets to check")

// Options carries one run's inputs. Values below their floor are clamped the
// same way the callers' defaults would set them.
type Options struct {
	Targets        []string
	Samples        int
	Timeout        time.Duration
	Concurrency    int
	SpoofUserAgent bool
}

// Runner drives one full run: normalize the targets, sample each one through
// a shared pool and a shared HTTP client, aggregate per target, and assemble
// the record set. Targets are processed strictly in their supplied order; the
// concurrency lives inside each target's batch.
type Runner struct {
	Logger *zap.Logger
	Out    io.Writer

	// NewProber overrides the probe executor. Nil means plain HTTP.
	NewProber func(client *http.Client, userAgent string) probe.Prober
}

// New builds a Runner writing progress to out. A nil logger is replaced with
// a no-op one, a nil out with os.Stdout.
func New(logger *zap.Logger, out io.Writer) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Runner{Logger: logger, Out: out}
}

// Run executes the whole run and returns its record set. The shared client
// and pool live exactly as long as the run; per-probe failures surface only
// as data inside the records, never as an error here.
func (r *Runner) Run(ctx context.Context, opts Options) (*domain.Run, error) {
	targets := domain.NormalizeTargets(opts.Targets)
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	if opts.Samples < 1 {
		opts.Samples = 1
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 6 * time.Second
	}

	client := &http.Client{Timeout: opts.Timeout}
	defer client.CloseIdleConnections()

	pool := sampler.NewPool(opts.Concurrency)
	defer pool.Close()

	userAgent := ""
	if opts.SpoofUserAgent {
		userAgent = probe.SpoofedUserAgent
	}
	newProber := r.NewProber
	if newProber == nil {
		newProber = func(c *http.Client, ua string) probe.Prober {
			return probe.NewHTTPProber(c, probe.WithUserAgent(ua))
		}
	}
	smp := sampler.New(newProber(client, userAgent), pool, r.Logger)

	run := &domain.Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC().Truncate(time.Second),
	}
	r.Logger.Info("run_started",
		zap.String("run_id", run.ID),
		zap.Int("targets", len(targets)),
		zap.Int("samples", opts.Samples),
		zap.Duration("timeout", opts.Timeout),
		zap.Int("concurrency", pool.Size()),
	)

	for _, target := range targets {
		fmt.Fprintf(r.Out, "Checking %s ...\n", target)

		batch := smp.Sample(ctx, target, opts.Samples)
		for i, o := range batch {
			run.Details = append(run.Details, domain.DetailRecord{
				Target:      target,
				SampleIndex: i + 1,
				Outcome:     o,
			})
		}

		summary := stats.Aggregate(target, batch)
		run.Summaries = append(run.Summaries, summary)

		if summary.AvgMS != nil {
			fmt.Fprintf(r.Out, "Result: avg %.2f ms, successes %d/%d\n",
				*summary.AvgMS, summary.SuccessCount, summary.Count)
		} else {
			fmt.Fprintln(r.Out, "Result: no successful requests")
		}
		r.Logger.Info("target_checked",
			zap.String("run_id", run.ID),
			zap.String("url", string(target)),
			zap.Int("success_count", summary.SuccessCount),
			zap.Int("failure_count", summary.FailureCount),
		)
	}

	r.Logger.Info("run_completed",
		zap.String("run_id", run.ID),
		zap.Int("detail_rows", len(run.Details)),
		zap.Int("summary_rows", len(run.Summaries)),
	)
	return run, nil
}

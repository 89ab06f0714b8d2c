package sampler

import (
	"context"

	"go.uber.org/zap"

	"github.com/shariq818/latencymon/internal/domain"
	"github.com/shariq818/latencymon/internal/probe"
)

// Sampler fans one target's probes out over the run's shared pool and gathers
// every outcome back. A probe's failure never cancels its siblings; the batch
// is complete no matter how many attempts died.
type Sampler struct {
	prober probe.Prober
	pool   *Pool
	log    *zap.Logger
}

// New builds a sampler over the run's shared prober and pool.
func New(prober probe.Prober, pool *Pool, log *zap.Logger) *Sampler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sampler{prober: prober, pool: pool, log: log}
}

// Sample submits samples independent probes for target and blocks until all
// of them have resolved. The returned batch holds exactly samples outcomes in
// completion order, which downstream consumers must not read anything into.
// Counts below 1 are clamped to 1.
func (s *Sampler) Sample(ctx context.Context, target domain.Target, samples int) domain.SampleBatch {
	if samples < 1 {
		samples = 1
	}

	results := make(chan domain.ProbeOutcome, samples)
	for i := 0; i < samples; i++ {
		s.pool.Submit(func() {
			results <- s.prober.Probe(ctx, target)
		})
	}

	batch := make(domain.SampleBatch, 0, samples)
	for len(batch) < samples {
		batch = append(batch, <-results)
	}

	s.log.Debug("batch_collected",
		zap.String("url", string(target)),
		zap.Int("samples", len(batch)),
	)
	return batch
}

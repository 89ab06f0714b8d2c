package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/shariq818/latencymon/internal/domain"
)

// Aggregate reduces one target's batch into its summary. It is pure and
// order-independent: permuting the batch yields an identical summary.
//
// Counting follows the probe classification: SuccessCount is responses in
// [200,400), FailureCount is transport failures only. A received error status
// adds to neither count but its latency still feeds the statistics.
func Aggregate(target domain.Target, batch domain.SampleBatch) domain.TargetSummary {
	s := domain.TargetSummary{Target: target, Count: len(batch)}
	for _, o := range batch {
		if o.Success() {
			s.SuccessCount++
		}
		if o.Failed() {
			s.FailureCount++
		}
	}

	lat := batch.Latencies()
	if len(lat) > 0 {
		s.MinMS = round2p(floats.Min(lat))
		s.AvgMS = round2p(stat.Mean(lat, nil))
		s.MaxMS = round2p(floats.Max(lat))
	}
	// sample standard deviation; by convention exactly 0.0 below two samples
	if len(lat) > 1 {
		s.StdevMS = round2(stat.StdDev(lat, nil))
	}
	return s
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round2p(v float64) *float64 {
	r := round2(v)
	return &r
}

package stats

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shariq818/latencymon/internal/domain"
)

func TestAggregate_AllSuccesses(t *testing.T) {
	batch := domain.SampleBatch{
		domain.CompletedOutcome(200, 100.0, 512),
		domain.CompletedOutcome(200, 120.0, 512),
		domain.CompletedOutcome(200, 110.0, 512),
	}
	s := Aggregate("https://example.com", batch)

	if s.Count != 3 || s.SuccessCount != 3 || s.FailureCount != 0 {
		t.Fatalf("counts wrong: %+v", s)
	}
	if s.MinMS == nil || s.AvgMS == nil || s.MaxMS == nil {
		t.Fatalf("latency stats must be present: %+v", s)
	}
	if *s.MinMS != 100.0 || *s.AvgMS != 110.0 || *s.MaxMS != 120.0 {
		t.Fatalf("min/avg/max wrong: %v/%v/%v", *s.MinMS, *s.AvgMS, *s.MaxMS)
	}
	if s.StdevMS != 10.0 {
		t.Fatalf("want sample stdev 10.0, got %v", s.StdevMS)
	}
}

func TestAggregate_AllFailures(t *testing.T) {
	batch := domain.SampleBatch{
		domain.FailedOutcome(errors.New("dial tcp: no such host")),
		domain.FailedOutcome(errors.New("dial tcp: no such host")),
	}
	s := Aggregate("https://bad.invalid", batch)

	if s.Count != 2 || s.SuccessCount != 0 || s.FailureCount != 2 {
		t.Fatalf("counts wrong: %+v", s)
	}
	if s.MinMS != nil || s.AvgMS != nil || s.MaxMS != nil {
		t.Fatalf("latency stats must be absent with no samples: %+v", s)
	}
	if s.StdevMS != 0.0 {
		t.Fatalf("stdev must be exactly 0.0 with no latency samples, got %v", s.StdevMS)
	}
}

func TestAggregate_SingleSampleStdevIsZero(t *testing.T) {
	batch := domain.SampleBatch{domain.CompletedOutcome(200, 443.21, 64)}
	s := Aggregate("https://example.com", batch)

	if s.StdevMS != 0.0 {
		t.Fatalf("one latency sample must give stdev 0.0, got %v", s.StdevMS)
	}
	if *s.MinMS != 443.21 || *s.AvgMS != 443.21 || *s.MaxMS != 443.21 {
		t.Fatalf("min/avg/max must all equal the single sample: %+v", s)
	}
}

func TestAggregate_ErrorStatusCountsNowhereButKeepsLatency(t *testing.T) {
	batch := domain.SampleBatch{
		domain.CompletedOutcome(200, 50.0, 10),
		domain.CompletedOutcome(500, 150.0, 10),
		domain.FailedOutcome(errors.New("context deadline exceeded")),
	}
	s := Aggregate("https://example.com", batch)

	if s.SuccessCount != 1 || s.FailureCount != 1 || s.Count != 3 {
		t.Fatalf("a 500 is neither success nor failure: %+v", s)
	}
	// success + received-non-success + transport failures covers the batch
	nonSuccess := 0
	for _, o := range batch {
		if o.Completed() && !o.Success() {
			nonSuccess++
		}
	}
	if s.SuccessCount+nonSuccess+s.FailureCount != s.Count {
		t.Fatalf("classification must partition the batch: %d+%d+%d != %d",
			s.SuccessCount, nonSuccess, s.FailureCount, s.Count)
	}
	if *s.MinMS != 50.0 || *s.MaxMS != 150.0 || *s.AvgMS != 100.0 {
		t.Fatalf("the 500's latency must feed the stats: %+v", s)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	outcomes := []domain.ProbeOutcome{
		domain.CompletedOutcome(200, 10.0, 1),
		domain.CompletedOutcome(404, 20.0, 2),
		domain.FailedOutcome(errors.New("timeout")),
		domain.CompletedOutcome(301, 30.0, 3),
	}
	perms := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
		{1, 3, 0, 2},
	}

	var first domain.TargetSummary
	for i, p := range perms {
		batch := make(domain.SampleBatch, len(p))
		for j, idx := range p {
			batch[j] = outcomes[idx]
		}
		s := Aggregate("https://example.com", batch)
		if i == 0 {
			first = s
			continue
		}
		if !reflect.DeepEqual(s, first) {
			t.Fatalf("permutation %v changed the summary:\nfirst=%+v\ngot  =%+v", p, first, s)
		}
	}
}

func TestAggregate_MinLEAvgLEMax(t *testing.T) {
	batch := domain.SampleBatch{
		domain.CompletedOutcome(200, 12.34, 1),
		domain.CompletedOutcome(200, 98.76, 1),
		domain.CompletedOutcome(200, 55.55, 1),
		domain.CompletedOutcome(200, 71.09, 1),
	}
	s := Aggregate("https://example.com", batch)
	if !(*s.MinMS <= *s.AvgMS && *s.AvgMS <= *s.MaxMS) {
		t.Fatalf("want min <= avg <= max, got %v/%v/%v", *s.MinMS, *s.AvgMS, *s.MaxMS)
	}
}

func TestAggregate_RoundsToTwoDecimals(t *testing.T) {
	batch := domain.SampleBatch{
		domain.CompletedOutcome(200, 1.111, 1),
		domain.CompletedOutcome(200, 2.222, 1),
	}
	s := Aggregate("https://example.com", batch)
	if *s.AvgMS != 1.67 {
		t.Fatalf("want avg rounded to 1.67, got %v", *s.AvgMS)
	}
	if *s.MinMS != 1.11 || *s.MaxMS != 2.22 {
		t.Fatalf("want min/max rounded, got %v/%v", *s.MinMS, *s.MaxMS)
	}
}

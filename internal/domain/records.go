package domain

import "time"

// TargetSummary is the aggregate view of one target's batch.
//
// MinMS/AvgMS/MaxMS are nil when the batch produced no latency samples.
// StdevMS is the sample standard deviation and is exactly 0.0 when fewer than
// two latency samples exist; it is never nil.
type TargetSummary struct {
	Target       Target   `json:"url"`
	Count        int      `json:"samples"`
	SuccessCount int      `json:"success_count"`
	FailureCount int      `json:"failure_count"`
	MinMS        *float64 `json:"min_ms"`
	AvgMS        *float64 `json:"avg_ms"`
	MaxMS        *float64 `json:"max_ms"`
	StdevMS      float64  `json:"stdev_ms"`
}

// DetailRecord is one probe outcome with its 1-based position in the batch.
type DetailRecord struct {
	Target      Target       `json:"url"`
	SampleIndex int          `json:"sample_index"`
	Outcome     ProbeOutcome `json:"outcome"`
}

// Run is the full record set of one invocation. Every row shares StartedAt,
// which is UTC and truncated to second precision. A Run is assembled once by
// the orchestrator and never mutated afterwards.
type Run struct {
	ID        string          `json:"run_id"`
	StartedAt time.Time       `json:"started_at"`
	Details   []DetailRecord  `json:"details"`
	Summaries []TargetSummary `json:"summaries"`
}

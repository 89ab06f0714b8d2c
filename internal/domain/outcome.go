package domain

// ProbeOutcome is the result of a single probe attempt against a target.
//
// Exactly one of two shapes holds: a completed attempt (a response arrived,
// whatever its status) carries Status, LatencyMS and ResponseBytes and an
// empty Error; a transport failure (timeout, connection, DNS, TLS) carries
// only Error. Build values through CompletedOutcome / FailedOutcome to keep
// that invariant.
type ProbeOutcome struct {
	Status        *int     `json:"status,omitempty"`
	LatencyMS     *float64 `json:"latency_ms,omitempty"`
	ResponseBytes *int64   `json:"response_bytes,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// CompletedOutcome records a received response, including non-2xx/3xx statuses.
func CompletedOutcome(status int, latencyMS float64, responseBytes int64) ProbeOutcome {
	return ProbeOutcome{
		Status:        &status,
		LatencyMS:     &latencyMS,
		ResponseBytes: &responseBytes,
	}
}

// FailedOutcome records an attempt that died before any response arrived.
func FailedOutcome(err error) ProbeOutcome {
	return ProbeOutcome{Error: err.Error()}
}

// Completed reports whether a response was received, whatever its status.
func (o ProbeOutcome) Completed() bool { return o.LatencyMS != nil }

// Failed reports whether the attempt ended in a transport-level error.
func (o ProbeOutcome) Failed() bool { return o.Error != "" }

// Success reports whether the response status falls in [200, 400).
func (o ProbeOutcome) Success() bool {
	return o.Status != nil && *o.Status >= 200 && *o.Status < 400
}

// SampleBatch holds all outcomes collected for one target. Order reflects
// completion, not submission; consumers must not rely on it.
type SampleBatch []ProbeOutcome

// Latencies returns the latency values of every completed outcome in the
// batch, successes and error statuses alike.
func (b SampleBatch) Latencies() []float64 {
	out := make([]float64, 0, len(b))
	for _, o := range b {
		if o.LatencyMS != nil {
			out = append(out, *o.LatencyMS)
		}
	}
	return out
}

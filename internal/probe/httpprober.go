package probe

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/shariq818/latencymon/internal/domain"
)

// SpoofedUserAgent is the fixed client identification sent with every probe
// when header spoofing is enabled.
const SpoofedUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) ParadoxBot/1.0"

const defaultTimeout = 6 * time.Second

// HTTPProber issues a single GET per probe through a shared *http.Client.
// The client's Timeout bounds each attempt; redirects, TLS and connection
// pooling stay the client's business. The prober holds no per-probe state,
// so one instance serves any number of concurrent probes.
type HTTPProber struct {
	client    *http.Client
	userAgent string
}

// Option configures an HTTPProber.
type Option func(*HTTPProber)

// WithUserAgent sets the User-Agent header on every probe. An empty value
// keeps the transport's default.
func WithUserAgent(ua string) Option {
	return func(p *HTTPProber) { p.userAgent = ua }
}

// NewHTTPProber wraps the run's shared client. A nil client gets a private
// one with the stock timeout so the prober stays usable on its own.
func NewHTTPProber(client *http.Client, opts ...Option) *HTTPProber {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	p := &HTTPProber{client: client}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe issues one GET against target and classifies the result. Latency
// spans from just before the request to just after the last body byte and is
// measured on the monotonic clock. A response with any status, error statuses
// included, is a completed outcome; everything else (timeout, refused
// connection, DNS or TLS failure, truncated body) is a failed one.
func (p *HTTPProber) Probe(ctx context.Context, target domain.Target) domain.ProbeOutcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, string(target), nil)
	if err != nil {
		return domain.FailedOutcome(err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return domain.FailedOutcome(err)
	}
	size, err := io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if err != nil {
		return domain.FailedOutcome(err)
	}
	latency := roundMS(time.Since(start).Seconds() * 1000)

	return domain.CompletedOutcome(resp.StatusCode, latency, size)
}

func roundMS(ms float64) float64 {
	return math.Round(ms*100) / 100
}

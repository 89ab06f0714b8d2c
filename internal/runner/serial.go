package runner

import (
	"context"
	"errors"
	"sync"

	"github.com/shariq818/latencymon/internal/domain"
)

// ErrBusy reports that another run is already executing.
var ErrBusy = errors.New("a run is already in progress")

// Engine is the run entry point Serial wraps. *Runner satisfies it.
type Engine interface {
	Run(ctx context.Context, opts Options) (*domain.Run, error)
}

// Serial admits one run at a time. Callers that lose the race get ErrBusy
// instead of queueing, since overlapping runs would skew each other's
// latencies. The HTTP API and the scheduler share a single Serial.
type Serial struct {
	inner Engine
	mu    sync.Mutex
}

func NewSerial(eng Engine) *Serial {
	return &Serial{inner: eng}
}

func (s *Serial) Run(ctx context.Context, opts Options) (*domain.Run, error) {
	if !s.mu.TryLock() {
		return nil, ErrBusy
	}
	defer s.mu.Unlock()
	return s.inner.Run(ctx, opts)
}

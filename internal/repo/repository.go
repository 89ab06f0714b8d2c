package repo

import (
	"context"
	"errors"
	"time"

	"github.com/shariq818/latencymon/internal/domain"
)

// ErrNotFound is returned when a run ID is unknown to the store.
var ErrNotFound = errors.New("run not found")

// RunRow is the listing shape: enough to render a history table without
// shipping every sample.
type RunRow struct {
	ID        string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Targets   int       `json:"targets"`
}

// RunStore keeps completed runs; swap in any DB adapter later.
type RunStore interface {
	Save(ctx context.Context, r *domain.Run) error
	// Get returns ErrNotFound for an unknown ID.
	Get(ctx context.Context, id string) (*domain.Run, error)
	// List returns rows newest first.
	List(ctx context.Context) ([]RunRow, error)
}

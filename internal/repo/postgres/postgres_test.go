package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/shariq818/latencymon/internal/domain"
	"github.com/shariq818/latencymon/internal/repo"
)

// Minimal schema so the test can run on a fresh DB/volume.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
  id         TEXT PRIMARY KEY,
  started_at TIMESTAMPTZ NOT NULL,
  targets    INTEGER NOT NULL,
  doc        JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at DESC);
`

func ensureSchema(t *testing.T, dsn string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("pgxpool.New: %v", err)
	}
	defer pool.Close()
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
}

func TestPostgresStore_Save_Get_List(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping Postgres integration test")
	}

	ensureSchema(t, dsn)

	ctx := context.Background()
	store, err := New(ctx, dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("New store: %v", err)
	}
	defer store.Close()

	// Unique ID per run to avoid collisions with previous test rows.
	id := fmt.Sprintf("it-%d", time.Now().UTC().UnixNano())
	status := 200
	latency := 42.5
	size := int64(1234)
	run := &domain.Run{
		ID:        id,
		StartedAt: time.Now().UTC().Truncate(time.Second),
		Details: []domain.DetailRecord{{
			Target:      domain.Target("https://example.com"),
			SampleIndex: 1,
			Outcome: domain.ProbeOutcome{
				Status:        &status,
				LatencyMS:     &latency,
				ResponseBytes: &size,
			},
		}},
		Summaries: []domain.TargetSummary{{
			Target:       domain.Target("https://example.com"),
			Count:        1,
			SuccessCount: 1,
			MinMS:        &latency,
			AvgMS:        &latency,
			MaxMS:        &latency,
		}},
	}

	if err := store.Save(ctx, run); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != run.ID {
		t.Fatalf("ID = %q, want %q", got.ID, run.ID)
	}
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Fatalf("StartedAt = %s, want %s", got.StartedAt, run.StartedAt)
	}
	if len(got.Details) != 1 || len(got.Summaries) != 1 {
		t.Fatalf("round trip lost rows: %+v", got)
	}
	if got.Details[0].Outcome.LatencyMS == nil || *got.Details[0].Outcome.LatencyMS != latency {
		t.Fatalf("latency did not round trip: %+v", got.Details[0].Outcome)
	}

	if _, err := store.Get(ctx, "missing-"+id); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("Get unknown err = %v, want ErrNotFound", err)
	}

	rows, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, row := range rows {
		if row.ID == id {
			found = true
			if row.Targets != 1 {
				t.Errorf("Targets = %d, want 1", row.Targets)
			}
		}
	}
	if !found {
		t.Fatalf("saved run not in listing; got %d rows", len(rows))
	}
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/shariq818/latencymon/internal/domain"
	"github.com/shariq818/latencymon/internal/repo"
)

var _ repo.RunStore = (*Store)(nil)

// Store keeps completed runs in Postgres. The full run document goes into a
// jsonb column; id, started_at and targets are real columns so listing never
// has to unmarshal payloads.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Save(ctx context.Context, r *domain.Run) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO runs (id, started_at, targets, doc)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`,
		r.ID, r.StartedAt, len(r.Summaries), doc,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Run, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM runs WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select run: %w", err)
	}
	var r domain.Run
	if err := json.Unmarshal(doc, &r); err != nil {
		return nil, fmt.Errorf("unmarshal run: %w", err)
	}
	return &r, nil
}

func (s *Store) List(ctx context.Context) ([]repo.RunRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, started_at, targets
		   FROM runs
		  ORDER BY started_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := make([]repo.RunRow, 0, 32)
	for rows.Next() {
		var row repo.RunRow
		if err := rows.Scan(&row.ID, &row.StartedAt, &row.Targets); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

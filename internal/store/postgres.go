package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/mobiflow/hubopt/internal/geo"
	"github.com/mobiflow/hubopt/internal/model"
)

// Pool is the subset of pgxpool.Pool used by PostgresStore. pgxmock
// satisfies it, which is how the store is tested without a database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using a pgx connection pool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres connects a pool to the given DSN.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool (or a mock in tests).
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	created_at       TIMESTAMPTZ NOT NULL,
	bounds           JSONB NOT NULL,
	resolution       INTEGER NOT NULL,
	top_k            INTEGER NOT NULL,
	snapshot_version TEXT NOT NULL,
	source           TEXT NOT NULL,
	candidates       JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, run *model.Run) error {
	boundsJSON, err := json.Marshal(run.Bounds)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal bounds")
	}
	candidatesJSON, err := json.Marshal(run.Candidates)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal candidates")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO runs (id, created_at, bounds, resolution, top_k, snapshot_version, source, candidates)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.CreatedAt.UTC(), string(boundsJSON), run.Resolution, run.TopK,
		run.SnapshotVersion, run.Source, string(candidatesJSON),
	)
	return eris.Wrap(err, "postgres: insert run")
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, created_at, bounds, resolution, top_k, snapshot_version, source, candidates
		 FROM runs WHERE id = $1`, id)
	return scanPgRun(row.Scan)
}

func (s *PostgresStore) LatestRun(ctx context.Context) (*model.Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, created_at, bounds, resolution, top_k, snapshot_version, source, candidates
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`)
	return scanPgRun(row.Scan)
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at, bounds, resolution, top_k, snapshot_version, source, candidates
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		run, err := scanPgRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}

func scanPgRun(scan func(dest ...any) error) (*model.Run, error) {
	var (
		run            model.Run
		boundsJSON     string
		candidatesJSON string
	)
	err := scan(&run.ID, &run.CreatedAt, &boundsJSON, &run.Resolution, &run.TopK,
		&run.SnapshotVersion, &run.Source, &candidatesJSON)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrap(err, "postgres: scan run")
	}

	var bounds geo.Bounds
	if err := json.Unmarshal([]byte(boundsJSON), &bounds); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal bounds")
	}
	run.Bounds = bounds

	if err := json.Unmarshal([]byte(candidatesJSON), &run.Candidates); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal candidates")
	}
	return &run, nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/mobiflow/hubopt/internal/geo"
	"github.com/mobiflow/hubopt/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	created_at       DATETIME NOT NULL,
	bounds           TEXT NOT NULL,
	resolution       INTEGER NOT NULL,
	top_k            INTEGER NOT NULL,
	snapshot_version TEXT NOT NULL,
	source           TEXT NOT NULL,
	candidates       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *model.Run) error {
	boundsJSON, err := json.Marshal(run.Bounds)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal bounds")
	}
	candidatesJSON, err := json.Marshal(run.Candidates)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal candidates")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, bounds, resolution, top_k, snapshot_version, source, candidates)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC(), string(boundsJSON), run.Resolution, run.TopK,
		run.SnapshotVersion, run.Source, string(candidatesJSON),
	)
	return eris.Wrap(err, "sqlite: insert run")
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, bounds, resolution, top_k, snapshot_version, source, candidates
		 FROM runs WHERE id = ?`, id)
	return scanRun(row.Scan)
}

func (s *SQLiteStore) LatestRun(ctx context.Context) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, bounds, resolution, top_k, snapshot_version, source, candidates
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`)
	return scanRun(row.Scan)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, bounds, resolution, top_k, snapshot_version, source, candidates
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

// scanRun decodes one runs row from either QueryRow or Rows scanners.
func scanRun(scan func(dest ...any) error) (*model.Run, error) {
	var (
		run            model.Run
		boundsJSON     string
		candidatesJSON string
	)
	err := scan(&run.ID, &run.CreatedAt, &boundsJSON, &run.Resolution, &run.TopK,
		&run.SnapshotVersion, &run.Source, &candidatesJSON)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrap(err, "sqlite: scan run")
	}

	var bounds geo.Bounds
	if err := json.Unmarshal([]byte(boundsJSON), &bounds); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal bounds")
	}
	run.Bounds = bounds

	if err := json.Unmarshal([]byte(candidatesJSON), &run.Candidates); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal candidates")
	}
	return &run, nil
}

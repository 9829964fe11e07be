// Package store persists analysis runs and their variable reports through
// sqlx so successive exploration runs over the same portfolio can be
// compared. The embedded sqlite driver is the default; lib/pq serves shared
// Postgres deployments with the same queries via Rebind.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"scorecard/domain/core"
	domainwoe "scorecard/domain/woe"

	"github.com/jmoiron/sqlx"

	// Database drivers selected by DSN configuration.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	dataset     TEXT NOT NULL,
	target      TEXT NOT NULL,
	iv_threshold REAL NOT NULL,
	started_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS variable_reports (
	run_id     TEXT NOT NULL,
	variable   TEXT NOT NULL,
	iv         REAL NOT NULL,
	efficiency REAL NOT NULL,
	goods      INTEGER NOT NULL,
	bads       INTEGER NOT NULL,
	levels     TEXT NOT NULL,
	PRIMARY KEY (run_id, variable)
);
`

// Run is the stored metadata of one sweep.
type Run struct {
	ID          core.RunID `db:"id"`
	Dataset     string     `db:"dataset"`
	Target      string     `db:"target"`
	IVThreshold float64    `db:"iv_threshold"`
	StartedAt   time.Time  `db:"started_at"`
}

// RunStore reads and writes runs and variable reports.
type RunStore struct {
	db *sqlx.DB
}

// Open connects to the configured database and ensures the schema exists.
// Supported drivers are "sqlite" and "postgres".
func Open(driver, dsn string) (*RunStore, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s store: %w", driver, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store schema: %w", err)
	}
	return &RunStore{db: db}, nil
}

// Close releases the underlying connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts run metadata.
func (s *RunStore) SaveRun(ctx context.Context, run Run) error {
	query := s.db.Rebind(`INSERT INTO runs (id, dataset, target, iv_threshold, started_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, run.ID, run.Dataset, run.Target, run.IVThreshold, run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// SaveReports inserts the variable reports of a run. Level statistics are
// stored as a JSON document per variable.
func (s *RunStore) SaveReports(ctx context.Context, runID core.RunID, reports []*domainwoe.VariableReport) error {
	query := s.db.Rebind(`INSERT INTO variable_reports (run_id, variable, iv, efficiency, goods, bads, levels)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	for _, r := range reports {
		levelsJSON, err := json.Marshal(r.Levels)
		if err != nil {
			return fmt.Errorf("failed to marshal levels for %s: %w", r.Variable, err)
		}
		if _, err := s.db.ExecContext(ctx, query,
			runID, r.Variable, r.IV, r.Efficiency, r.Goods, r.Bads, levelsJSON); err != nil {
			return fmt.Errorf("failed to save report for %s: %w", r.Variable, err)
		}
	}
	return nil
}

// GetRun retrieves run metadata by ID.
func (s *RunStore) GetRun(ctx context.Context, id core.RunID) (*Run, error) {
	query := s.db.Rebind(`SELECT id, dataset, target, iv_threshold, started_at FROM runs WHERE id = ?`)

	var run Run
	if err := s.db.GetContext(ctx, &run, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns returns stored runs, newest first.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := s.db.Rebind(`SELECT id, dataset, target, iv_threshold, started_at
		FROM runs ORDER BY started_at DESC LIMIT ?`)

	var runs []Run
	if err := s.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// ReportsByRun returns the variable reports of a run, highest IV first.
func (s *RunStore) ReportsByRun(ctx context.Context, runID core.RunID) ([]*domainwoe.VariableReport, error) {
	query := s.db.Rebind(`SELECT variable, iv, efficiency, goods, bads, levels
		FROM variable_reports WHERE run_id = ? ORDER BY iv DESC`)

	rows, err := s.db.QueryxContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []*domainwoe.VariableReport
	for rows.Next() {
		var r domainwoe.VariableReport
		var levelsJSON []byte
		if err := rows.Scan(&r.Variable, &r.IV, &r.Efficiency, &r.Goods, &r.Bads, &levelsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		if err := json.Unmarshal(levelsJSON, &r.Levels); err != nil {
			return nil, fmt.Errorf("failed to unmarshal levels for %s: %w", r.Variable, err)
		}
		reports = append(reports, &r)
	}
	return reports, rows.Err()
}

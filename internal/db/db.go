// Package db provides PostgreSQL-backed history storage. It implements
// history.Store so the server can swap it in wherever the in-memory store
// is used, keeping session history across backend restarts.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sentra-ai/sentra/internal/history"
	"github.com/sentra-ai/sentra/internal/types"
)

// Store wraps a PostgreSQL connection pool and implements history.Store.
type Store struct {
	pool *pgxpool.Pool
}

var _ history.Store = (*Store)(nil)

// Connect establishes a connection pool and ensures the history table
// exists.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{pool: pool}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id     UUID PRIMARY KEY,
			session_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			payload    JSONB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS analysis_runs_session_idx
			ON analysis_runs (session_id, created_at DESC)`)
	if err != nil {
		return fmt.Errorf("failed to ensure history schema: %w", err)
	}
	return nil
}

// Append stores the run and evicts anything beyond the newest
// history.MaxRuns for the session.
func (s *Store) Append(ctx context.Context, sessionID string, run *types.AnalysisRun) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO analysis_runs (run_id, session_id, created_at, payload)
		 VALUES ($1, $2, $3, $4)`,
		run.ID, sessionID, run.CreatedAt, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM analysis_runs
		 WHERE session_id = $1 AND run_id NOT IN (
			SELECT run_id FROM analysis_runs
			WHERE session_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		 )`,
		sessionID, history.MaxRuns,
	)
	if err != nil {
		return fmt.Errorf("failed to evict old runs: %w", err)
	}

	return tx.Commit(ctx)
}

// List returns the session's runs, newest first.
func (s *Store) List(ctx context.Context, sessionID string) ([]*types.AnalysisRun, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT payload FROM analysis_runs
		 WHERE session_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		sessionID, history.MaxRuns,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*types.AnalysisRun
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		var run types.AnalysisRun
		if err := json.Unmarshal(payload, &run); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}

// Latest returns the most recent run for the session, or nil.
func (s *Store) Latest(ctx context.Context, sessionID string) (*types.AnalysisRun, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM analysis_runs
		 WHERE session_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		sessionID,
	).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	var run types.AnalysisRun
	if err := json.Unmarshal(payload, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &run, nil
}

// Search filters the session's runs in Go so the matching semantics stay
// identical to the in-memory store.
func (s *Store) Search(ctx context.Context, sessionID, query, riskFilter string) ([]*types.AnalysisRun, error) {
	runs, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var matched []*types.AnalysisRun
	for _, run := range runs {
		if history.MatchesQuery(run, query) && history.MatchesRiskFilter(run, riskFilter) {
			matched = append(matched, run)
		}
	}
	return matched, nil
}

// Clear drops all runs for the session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM analysis_runs WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear session history: %w", err)
	}
	return nil
}

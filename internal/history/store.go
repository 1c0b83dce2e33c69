// Package history provides the append-only, capacity-bounded log of past
// analysis runs. A store is created when the server starts and injected
// into whatever needs it; runs are scoped to an anonymous session and
// ordered newest first.
package history

import (
	"context"

	"github.com/sentra-ai/sentra/internal/types"
)

// MaxRuns bounds each session's log. Appends beyond the cap evict the
// oldest run (plain FIFO: entries are never re-accessed for recency).
const MaxRuns = 10

// RiskFilterAll matches runs regardless of risk level.
const RiskFilterAll = "all"

// Store is the history log contract. Implementations must keep runs
// newest first and enforce the MaxRuns cap on append.
type Store interface {
	// Append records a completed run for the session, evicting the oldest
	// run beyond MaxRuns. The run is owned by the store after this call.
	Append(ctx context.Context, sessionID string, run *types.AnalysisRun) error
	// List returns the session's runs, newest first.
	List(ctx context.Context, sessionID string) ([]*types.AnalysisRun, error)
	// Latest returns the most recent run for the session, or nil if the
	// session has no history yet.
	Latest(ctx context.Context, sessionID string) (*types.AnalysisRun, error)
	// Search filters the session's runs by a case-insensitive substring
	// query and a risk filter (RiskFilterAll or an exact lower-cased
	// level that at least one assessment must carry).
	Search(ctx context.Context, sessionID, query, riskFilter string) ([]*types.AnalysisRun, error)
	// Clear drops all runs for the session (session end).
	Clear(ctx context.Context, sessionID string) error
}

package history

import (
	"context"
	"strings"
	"sync"

	"github.com/sentra-ai/sentra/internal/types"
)

// MemoryStore is the default in-process Store. History lives only as long
// as the process; the Postgres-backed store is used when durability across
// restarts is wanted.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string][]*types.AnalysisRun
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string][]*types.AnalysisRun)}
}

// Append prepends the run and truncates to MaxRuns.
func (s *MemoryStore) Append(_ context.Context, sessionID string, run *types.AnalysisRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := append([]*types.AnalysisRun{run}, s.runs[sessionID]...)
	if len(runs) > MaxRuns {
		runs = runs[:MaxRuns]
	}
	s.runs[sessionID] = runs
	return nil
}

// List returns the session's runs, newest first.
func (s *MemoryStore) List(_ context.Context, sessionID string) ([]*types.AnalysisRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*types.AnalysisRun, len(s.runs[sessionID]))
	copy(runs, s.runs[sessionID])
	return runs, nil
}

// Latest returns the most recent run, or nil when the session is empty.
func (s *MemoryStore) Latest(_ context.Context, sessionID string) (*types.AnalysisRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.runs[sessionID]
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

// Search filters the session's runs in stored order.
func (s *MemoryStore) Search(ctx context.Context, sessionID, query, riskFilter string) ([]*types.AnalysisRun, error) {
	runs, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var matched []*types.AnalysisRun
	for _, run := range runs {
		if MatchesQuery(run, query) && MatchesRiskFilter(run, riskFilter) {
			matched = append(matched, run)
		}
	}
	return matched, nil
}

// Clear drops all runs for the session.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, sessionID)
	return nil
}

// MatchesQuery reports whether a run matches a case-insensitive substring
// query against its raw steps text or any assessment's step, reason, or
// recommendation. An empty query matches everything.
func MatchesQuery(run *types.AnalysisRun, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(run.RawStepsText), query) {
		return true
	}
	for _, a := range run.Assessments {
		if strings.Contains(strings.ToLower(a.Step), query) ||
			strings.Contains(strings.ToLower(a.Reason), query) ||
			strings.Contains(strings.ToLower(a.Recommendation), query) {
			return true
		}
	}
	return false
}

// MatchesRiskFilter reports whether at least one assessment in the run
// carries the filtered risk level. RiskFilterAll (or an empty filter)
// matches everything.
func MatchesRiskFilter(run *types.AnalysisRun, riskFilter string) bool {
	riskFilter = strings.ToLower(strings.TrimSpace(riskFilter))
	if riskFilter == "" || riskFilter == RiskFilterAll {
		return true
	}
	for _, a := range run.Assessments {
		if strings.ToLower(string(a.Risk)) == riskFilter {
			return true
		}
	}
	return false
}

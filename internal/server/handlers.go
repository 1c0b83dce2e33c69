package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sentra-ai/sentra/internal/analysis"
	"github.com/sentra-ai/sentra/internal/compare"
	"github.com/sentra-ai/sentra/internal/history"
	"github.com/sentra-ai/sentra/internal/parsing"
	"github.com/sentra-ai/sentra/internal/scoring"
	"github.com/sentra-ai/sentra/internal/sensitivity"
	"github.com/sentra-ai/sentra/internal/types"
)

// AnalyzeResponse represents the response for /analyze
type AnalyzeResponse struct {
	RunID        string                  `json:"run_id"`
	CreatedAt    string                  `json:"created_at"`
	Sensitivity  types.Sensitivity       `json:"sensitivity"`
	Assessments  []types.Assessment      `json:"assessments"`
	Summary      types.RiskSummary       `json:"summary"`
	Comparison   []types.ComparisonEntry `json:"comparison,omitempty"`
	FallbackUsed bool                    `json:"fallback_used"`
}

// FixStepResponse represents the response for /fix-step
type FixStepResponse struct {
	Assessment *types.Assessment `json:"assessment"`
}

// HistoryResponse represents the response for /history and /history/search
type HistoryResponse struct {
	Runs []RunSummary `json:"runs"`
}

// RunSummary is one history entry with its recomputed risk summary
type RunSummary struct {
	RunID        string             `json:"run_id"`
	CreatedAt    string             `json:"created_at"`
	RawStepsText string             `json:"raw_steps_text"`
	Sensitivity  types.Sensitivity  `json:"sensitivity"`
	Assessments  []types.Assessment `json:"assessments"`
	Summary      types.RiskSummary  `json:"summary"`
	FallbackUsed bool               `json:"fallback_used"`
}

// handleAnalyze runs a full workflow risk assessment
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		verr := &ErrValidation{Field: "steps_text", Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	steps, err := parsing.ParseSteps(req.StepsText)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	tier := types.NormalizeSensitivity(req.Sensitivity)

	analyzer := s.analyzer
	if req.UseMock {
		analyzer = analysis.NewFallbackAnalyzer()
	}

	result, err := analyzer.Analyze(r.Context(), steps, tier)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	assessments := sensitivity.AdjustAssessments(result.Assessments, tier)
	run := types.NewAnalysisRun(req.StepsText, tier, assessments, result.FallbackUsed)

	sessionID, err := s.sessionID(w, r)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to establish session: "+err.Error())
		return
	}

	previous, err := s.store.Latest(r.Context(), sessionID.String())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load history: "+err.Error())
		return
	}

	var comparison []types.ComparisonEntry
	if previous != nil {
		comparison = compare.Compare(previous, run)
	}

	if err := s.store.Append(r.Context(), sessionID.String(), run); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save run: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		RunID:        run.ID.String(),
		CreatedAt:    run.CreatedAt.Format(time.RFC3339),
		Sensitivity:  run.Sensitivity,
		Assessments:  run.Assessments,
		Summary:      scoring.Summarize(run.Assessments),
		Comparison:   comparison,
		FallbackUsed: run.FallbackUsed,
	})
}

// handleFixStep rewrites a risky step into a safer alternative
func (s *Server) handleFixStep(w http.ResponseWriter, r *http.Request) {
	var req types.FixStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		verr := &ErrValidation{Field: "step", Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	fixed, err := s.fixer.Fix(r.Context(), req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Fix failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, FixStepResponse{Assessment: fixed})
}

// handleHistory returns the session's analysis runs, newest first
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID, err := s.sessionID(w, r)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to establish session: "+err.Error())
		return
	}

	runs, err := s.store.List(r.Context(), sessionID.String())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load history: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, historyResponse(runs))
}

// handleHistorySearch filters the session's runs by free text and risk level
func (s *Server) handleHistorySearch(w http.ResponseWriter, r *http.Request) {
	sessionID, err := s.sessionID(w, r)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to establish session: "+err.Error())
		return
	}

	query := r.URL.Query().Get("q")
	riskFilter := r.URL.Query().Get("risk")
	if riskFilter == "" {
		riskFilter = history.RiskFilterAll
	}

	runs, err := s.store.Search(r.Context(), sessionID.String(), query, riskFilter)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to search history: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, historyResponse(runs))
}

// handleClearHistory deletes all runs for the session
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	sessionID, err := s.sessionID(w, r)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to establish session: "+err.Error())
		return
	}

	if err := s.store.Clear(r.Context(), sessionID.String()); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to clear history: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func historyResponse(runs []*types.AnalysisRun) HistoryResponse {
	resp := HistoryResponse{Runs: make([]RunSummary, 0, len(runs))}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, RunSummary{
			RunID:        run.ID.String(),
			CreatedAt:    run.CreatedAt.Format(time.RFC3339),
			RawStepsText: run.RawStepsText,
			Sensitivity:  run.Sensitivity,
			Assessments:  run.Assessments,
			Summary:      scoring.Summarize(run.Assessments),
			FallbackUsed: run.FallbackUsed,
		})
	}
	return resp
}

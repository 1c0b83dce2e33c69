package types

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRun records one completed analysis. Created at the end of a
// successful run and owned exclusively by the history store afterwards;
// never mutated.
type AnalysisRun struct {
	ID           uuid.UUID    `json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	RawStepsText string       `json:"raw_steps_text"`
	Sensitivity  Sensitivity  `json:"sensitivity"`
	Assessments  []Assessment `json:"assessments"`
	FallbackUsed bool         `json:"fallback_used,omitempty"`
}

// NewAnalysisRun builds a run record with a fresh ID and timestamp.
func NewAnalysisRun(rawText string, tier Sensitivity, assessments []Assessment, fallbackUsed bool) *AnalysisRun {
	return &AnalysisRun{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		RawStepsText: rawText,
		Sensitivity:  tier,
		Assessments:  assessments,
		FallbackUsed: fallbackUsed,
	}
}

// PreviousRiskNew is the sentinel used in a comparison entry when the step
// did not exist in the previous run.
const PreviousRiskNew = "new"

// ComparisonEntry classifies one current-run step against the previous run.
// Derived on demand, never persisted.
type ComparisonEntry struct {
	Step         string `json:"step"`
	PreviousRisk string `json:"previous_risk"`
	CurrentRisk  string `json:"current_risk"`
	Changed      bool   `json:"changed"`
	Improved     bool   `json:"improved"`
}

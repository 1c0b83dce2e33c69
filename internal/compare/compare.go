// Package compare aligns two successive analysis runs and classifies each
// current step as unchanged, changed, improved, or new.
package compare

import (
	"strings"

	"github.com/sentra-ai/sentra/internal/types"
)

// Compare produces one entry per step in current, in current's order.
// Alignment is by exact, case-sensitive step text against the previous
// run; when previous steps share identical text the first match wins.
// Reworded steps do not align and show up as new.
func Compare(previous, current *types.AnalysisRun) []types.ComparisonEntry {
	if current == nil {
		return nil
	}

	var prevAssessments []types.Assessment
	if previous != nil {
		prevAssessments = previous.Assessments
	}

	entries := make([]types.ComparisonEntry, 0, len(current.Assessments))
	for _, curr := range current.Assessments {
		entry := types.ComparisonEntry{
			Step:        curr.Step,
			CurrentRisk: string(curr.Risk),
		}

		prev, found := findByStepText(prevAssessments, curr.Step)
		if !found {
			entry.PreviousRisk = types.PreviousRiskNew
			entry.Changed = true
			entries = append(entries, entry)
			continue
		}

		entry.PreviousRisk = string(prev.Risk)
		entry.Changed = !strings.EqualFold(string(prev.Risk), string(curr.Risk))
		entry.Improved = prev.Risk.MoreSevereThan(curr.Risk)
		entries = append(entries, entry)
	}
	return entries
}

// findByStepText returns the first assessment whose step text is exactly
// equal to step.
func findByStepText(assessments []types.Assessment, step string) (types.Assessment, bool) {
	for _, a := range assessments {
		if a.Step == step {
			return a, true
		}
	}
	return types.Assessment{}, false
}

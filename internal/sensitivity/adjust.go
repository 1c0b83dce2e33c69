// Package sensitivity remaps raw risk labels according to the user's
// configured sensitivity tier. The Analyzer is told the tier too, but the
// mapping here is applied unconditionally as an explicit post-processing
// stage so the behavior does not depend on the model honoring it.
package sensitivity

import "github.com/sentra-ai/sentra/internal/types"

// transitions is the single-application remap table per tier. The medium
// tier is the identity and is omitted. Lookups are not iterated: a high
// under the low tier becomes medium, not low.
var transitions = map[types.Sensitivity]map[types.RiskLevel]types.RiskLevel{
	types.SensitivityLow: {
		types.RiskLow:    types.RiskLow,
		types.RiskMedium: types.RiskLow,
		types.RiskHigh:   types.RiskMedium,
	},
	types.SensitivityStrict: {
		types.RiskLow:    types.RiskMedium,
		types.RiskMedium: types.RiskHigh,
		types.RiskHigh:   types.RiskHigh,
	},
}

// Adjust remaps a risk level for the given tier. Pure and total:
// unrecognized risk values (including "unknown") pass through unchanged,
// as does everything under the neutral medium tier.
func Adjust(risk types.RiskLevel, tier types.Sensitivity) types.RiskLevel {
	table, ok := transitions[tier]
	if !ok {
		return risk
	}
	if adjusted, ok := table[risk]; ok {
		return adjusted
	}
	return risk
}

// AdjustAssessments returns a copy of assessments with each recognized risk
// label remapped for the tier. The input slice is never mutated; a run's
// assessments are immutable once produced.
func AdjustAssessments(assessments []types.Assessment, tier types.Sensitivity) []types.Assessment {
	adjusted := make([]types.Assessment, len(assessments))
	for i, a := range assessments {
		a.Risk = Adjust(a.Risk, tier)
		adjusted[i] = a
	}
	return adjusted
}

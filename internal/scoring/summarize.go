// Package scoring aggregates per-step assessments into display-level
// summary counts and a cumulative risk score. The score is presentation
// only; nothing stored depends on it.
package scoring

import (
	"math"

	"github.com/sentra-ai/sentra/internal/types"
)

// riskWeights assigns the scoring weight for each recognized level.
// Unknown or invalid labels contribute 0 to the numerator but the full
// high weight to the denominator, so an unparseable assessment drags the
// normalized score down as if it were worst case.
var riskWeights = map[types.RiskLevel]int{
	types.RiskLow:    1,
	types.RiskMedium: 2,
	types.RiskHigh:   3,
}

// maxWeight is the per-assessment denominator contribution.
const maxWeight = 3

// Summarize partitions assessments by normalized risk level and computes
// the cumulative score round(100 * sum(weights) / (3 * n)) as an integer in
// [0, 100]. An empty input yields a nil score: an empty workflow has
// undefined risk, not zero risk.
func Summarize(assessments []types.Assessment) types.RiskSummary {
	var summary types.RiskSummary
	if len(assessments) == 0 {
		return summary
	}

	total := 0
	for _, a := range assessments {
		level := types.NormalizeRisk(string(a.Risk))
		switch level {
		case types.RiskLow:
			summary.Counts.Low++
		case types.RiskMedium:
			summary.Counts.Medium++
		case types.RiskHigh:
			summary.Counts.High++
		default:
			summary.Counts.Unknown++
		}
		total += riskWeights[level]
	}

	score := int(math.Round(100 * float64(total) / float64(maxWeight*len(assessments))))
	summary.Score = &score
	return summary
}

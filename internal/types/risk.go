// Package types provides type definitions for structured data used throughout the Sentra system.
package types

import "strings"

// RiskLevel classifies how much oversight an automation step demands.
type RiskLevel string

// Risk level constants, ordered from least to most severe.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
	// RiskUnknown covers anything the model returned that is not a
	// recognized level. It is scored worst-case but never adjusted.
	RiskUnknown RiskLevel = "unknown"
)

// severityRank orders recognized risk levels for comparison purposes.
// Unrecognized levels have no rank.
var severityRank = map[RiskLevel]int{
	RiskLow:    1,
	RiskMedium: 2,
	RiskHigh:   3,
}

// NormalizeRisk lower-cases and trims a raw risk label. Labels outside
// {low, medium, high} normalize to RiskUnknown.
func NormalizeRisk(raw string) RiskLevel {
	level := RiskLevel(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := severityRank[level]; ok {
		return level
	}
	return RiskUnknown
}

// Severity returns the ordering rank of a risk level (low=1, medium=2,
// high=3) and whether the level is recognized.
func (r RiskLevel) Severity() (int, bool) {
	rank, ok := severityRank[RiskLevel(strings.ToLower(string(r)))]
	return rank, ok
}

// MoreSevereThan reports whether r is strictly more severe than other.
// Unrecognized levels are never considered more severe than anything.
func (r RiskLevel) MoreSevereThan(other RiskLevel) bool {
	a, okA := r.Severity()
	b, okB := other.Severity()
	return okA && okB && a > b
}

// Sensitivity selects how aggressively raw risk labels are tightened or
// relaxed before display.
type Sensitivity string

// Sensitivity tier constants.
const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityStrict Sensitivity = "strict"
)

// NormalizeSensitivity lower-cases a raw tier label, defaulting to the
// neutral medium tier for anything unrecognized.
func NormalizeSensitivity(raw string) Sensitivity {
	switch Sensitivity(strings.ToLower(strings.TrimSpace(raw))) {
	case SensitivityLow:
		return SensitivityLow
	case SensitivityStrict:
		return SensitivityStrict
	default:
		return SensitivityMedium
	}
}

// RiskType tags the category of concern an assessment raises.
type RiskType string

// Risk type tag constants.
const (
	RiskTypeLegal        RiskType = "Legal"
	RiskTypeEthical      RiskType = "Ethical"
	RiskTypeBias         RiskType = "Bias"
	RiskTypePrivacy      RiskType = "Privacy"
	RiskTypeTransparency RiskType = "Transparency"
)

// KnownRiskTypes lists every recognized risk type tag.
var KnownRiskTypes = []RiskType{
	RiskTypeLegal,
	RiskTypeEthical,
	RiskTypeBias,
	RiskTypePrivacy,
	RiskTypeTransparency,
}

// Assessment is the per-step result produced by the Analyzer (or the
// StepFixer, which fills RewrittenStep). Immutable once produced; a new
// analysis run builds a new collection rather than mutating a prior one.
type Assessment struct {
	Step              string     `json:"step"`
	Risk              RiskLevel  `json:"risk"`
	Reason            string     `json:"reason"`
	Recommendation    string     `json:"recommendation"`
	RiskTypes         []RiskType `json:"risk_types,omitempty"`
	SuggestedReviewer string     `json:"suggested_reviewer,omitempty"`
	RewrittenStep     string     `json:"rewritten_step,omitempty"`
	// Synthetic marks a locally generated substitute used when the model
	// was unavailable or returned garbage. The UI is not required to
	// disclose it, but internally it must stay distinguishable.
	Synthetic bool `json:"synthetic,omitempty"`
}

// RiskCounts partitions assessments by normalized risk level.
type RiskCounts struct {
	Low     int `json:"low"`
	Medium  int `json:"medium"`
	High    int `json:"high"`
	Unknown int `json:"unknown"`
}

// Total returns the number of assessments counted.
func (c RiskCounts) Total() int {
	return c.Low + c.Medium + c.High + c.Unknown
}

// RiskSummary is the aggregate view of one analysis run. Score is nil for
// an empty run: an empty workflow has undefined risk, not zero risk.
type RiskSummary struct {
	Counts RiskCounts `json:"counts"`
	Score  *int       `json:"score"`
}

package analysis

import (
	"context"
	"fmt"

	"github.com/sentra-ai/sentra/internal/types"
)

// cannedAssessments holds locally authored assessments for well-known demo
// steps, keyed by exact step text. They back mock mode and the degrade path
// when the model is unreachable.
var cannedAssessments = map[string]types.Assessment{
	"AI scans resumes": {
		Risk:              types.RiskLow,
		Recommendation:    "Continue with automated scanning, but periodically audit for bias",
		Reason:            "Initial scanning is low risk as it's just collecting data, not making decisions",
		RiskTypes:         []types.RiskType{types.RiskTypeBias},
		SuggestedReviewer: "HR manager",
	},
	"Filters top 20%": {
		Risk:              types.RiskMedium,
		Recommendation:    "Add human review of filtering criteria and periodic audits",
		Reason:            "Automated filtering may introduce bias based on the criteria used",
		RiskTypes:         []types.RiskType{types.RiskTypeBias, types.RiskTypeTransparency},
		SuggestedReviewer: "HR manager",
	},
	"Auto-rejects bottom 80%": {
		Risk:              types.RiskHigh,
		Recommendation:    "Add human reviewer for rejections or sample-based review",
		Reason:            "Automated rejection without human oversight may violate employment regulations and introduce bias",
		RiskTypes:         []types.RiskType{types.RiskTypeLegal, types.RiskTypeBias},
		SuggestedReviewer: "Legal counsel",
	},
	"Sends interview invites": {
		Risk:              types.RiskMedium,
		Recommendation:    "Have human approve final invite list",
		Reason:            "Automated invitations may miss qualified candidates due to algorithm limitations",
		RiskTypes:         []types.RiskType{types.RiskTypeBias},
		SuggestedReviewer: "HR manager",
	},
	"AI scans user content": {
		Risk:              types.RiskLow,
		Recommendation:    "Continue with automated scanning, but have clear appeal process",
		Reason:            "Initial content scanning is low risk as it's just flagging for review",
		RiskTypes:         []types.RiskType{types.RiskTypeTransparency},
		SuggestedReviewer: "Trust & safety lead",
	},
	"Flags potential violations": {
		Risk:              types.RiskLow,
		Recommendation:    "Maintain human review of flagged content",
		Reason:            "Flagging for human review is appropriate and low risk",
		RiskTypes:         []types.RiskType{types.RiskTypeTransparency},
		SuggestedReviewer: "Trust & safety lead",
	},
	"Auto-removes extreme content": {
		Risk:              types.RiskHigh,
		Recommendation:    "Implement human review before removal or immediate appeal process",
		Reason:            "Automated content removal may violate free speech or remove legitimate content",
		RiskTypes:         []types.RiskType{types.RiskTypeLegal, types.RiskTypeEthical},
		SuggestedReviewer: "Legal counsel",
	},
	"Sends warnings to borderline cases": {
		Risk:              types.RiskMedium,
		Recommendation:    "Have human review warnings before sending",
		Reason:            "Automated warnings may cause user frustration if incorrectly applied",
		RiskTypes:         []types.RiskType{types.RiskTypeEthical},
		SuggestedReviewer: "Trust & safety lead",
	},
	"Restricts repeat offenders": {
		Risk:              types.RiskHigh,
		Recommendation:    "Require human approval for account restrictions",
		Reason:            "Account restrictions have significant impact on users and require due process",
		RiskTypes:         []types.RiskType{types.RiskTypeLegal, types.RiskTypeEthical},
		SuggestedReviewer: "Trust & safety lead",
	},
	"AI collects financial data": {
		Risk:              types.RiskMedium,
		Recommendation:    "Ensure proper data security and consent mechanisms",
		Reason:            "Financial data collection involves privacy concerns and regulatory requirements",
		RiskTypes:         []types.RiskType{types.RiskTypePrivacy, types.RiskTypeLegal},
		SuggestedReviewer: "Compliance officer",
	},
	"Calculates credit score": {
		Risk:              types.RiskHigh,
		Recommendation:    "Ensure algorithm is explainable and complies with regulations",
		Reason:            "Credit scoring is heavily regulated and must be transparent and fair",
		RiskTypes:         []types.RiskType{types.RiskTypeLegal, types.RiskTypeTransparency, types.RiskTypeBias},
		SuggestedReviewer: "Compliance officer",
	},
	"Determines loan eligibility": {
		Risk:              types.RiskHigh,
		Recommendation:    "Require human review of eligibility decisions",
		Reason:            "Loan eligibility decisions have significant financial impact and regulatory oversight",
		RiskTypes:         []types.RiskType{types.RiskTypeLegal, types.RiskTypeBias},
		SuggestedReviewer: "Compliance officer",
	},
	"Sets interest rate": {
		Risk:              types.RiskHigh,
		Recommendation:    "Implement human review of interest rate determinations",
		Reason:            "Interest rate setting may have discriminatory effects if not properly overseen",
		RiskTypes:         []types.RiskType{types.RiskTypeLegal, types.RiskTypeBias},
		SuggestedReviewer: "Compliance officer",
	},
	"Auto-approves qualifying applications": {
		Risk:              types.RiskHigh,
		Recommendation:    "Add human review step before final approval",
		Reason:            "Automated loan approval may miss nuances and has significant financial implications",
		RiskTypes:         []types.RiskType{types.RiskTypeLegal, types.RiskTypeEthical},
		SuggestedReviewer: "Compliance officer",
	},
}

// defaultAssessment is used for steps with no canned entry.
var defaultAssessment = types.Assessment{
	Risk:              types.RiskMedium,
	Recommendation:    "Add human oversight to this step",
	Reason:            "Automated decision-making without human oversight may introduce risks",
	RiskTypes:         []types.RiskType{types.RiskTypeTransparency},
	SuggestedReviewer: "Operations manager",
}

// FallbackAssessment returns the locally generated assessment for a step,
// always tagged synthetic. The canned table is keyed by exact step text;
// anything else gets the default medium-risk assessment.
func FallbackAssessment(step string) types.Assessment {
	assessment, ok := cannedAssessments[step]
	if !ok {
		assessment = defaultAssessment
	}
	assessment.Step = step
	assessment.RiskTypes = append([]types.RiskType(nil), assessment.RiskTypes...)
	assessment.Synthetic = true
	return assessment
}

// degradedAssessment builds the fallback used when a live model call
// failed mid-run, annotating the canned text so the degradation is visible
// in the record itself.
func degradedAssessment(step string, cause error) types.Assessment {
	assessment := FallbackAssessment(step)
	assessment.Recommendation += " (Mock response due to API error)"
	assessment.Reason += fmt.Sprintf(" (API Error: %s...)", truncate(cause.Error(), 100))
	return assessment
}

// unparsableAssessment is the substitute for a response the schema
// rejected, mirroring what a JSON decode failure produces.
func unparsableAssessment(step string) types.Assessment {
	return types.Assessment{
		Step:           step,
		Risk:           types.RiskUnknown,
		Recommendation: "Error processing this step",
		Reason:         "Could not parse AI response",
		Synthetic:      true,
	}
}

// truncate caps s at limit runes, never splitting a multi-byte rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// FallbackAnalyzer serves canned assessments without any network calls.
// Used for mock mode and when no API key is configured.
type FallbackAnalyzer struct{}

// NewFallbackAnalyzer creates an analyzer that only serves canned results.
func NewFallbackAnalyzer() *FallbackAnalyzer {
	return &FallbackAnalyzer{}
}

// Analyze returns one synthetic assessment per step, in order.
func (a *FallbackAnalyzer) Analyze(_ context.Context, steps []string, _ types.Sensitivity) (*Result, error) {
	assessments := make([]types.Assessment, len(steps))
	for i, step := range steps {
		assessments[i] = FallbackAssessment(step)
	}
	return &Result{Assessments: assessments, FallbackUsed: true}, nil
}

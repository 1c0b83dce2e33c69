package analysis

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/sentra-ai/sentra/internal/llm"
	"github.com/sentra-ai/sentra/internal/prompts"
	"github.com/sentra-ai/sentra/internal/schemas"
	"github.com/sentra-ai/sentra/internal/types"
)

// StepFixer rewrites one risky step into a lower-risk version.
type StepFixer interface {
	Fix(ctx context.Context, req types.FixStepRequest) (*types.Assessment, error)
}

// LLMFixer rewrites steps with a single advanced-tier model call,
// degrading to a locally rewritten step when the model is unavailable.
type LLMFixer struct {
	client  llm.Client
	timeout time.Duration
}

// NewLLMFixer creates a fixer backed by the given LLM client.
func NewLLMFixer(client llm.Client, timeout time.Duration) *LLMFixer {
	if timeout <= 0 {
		timeout = defaultStepTimeout
	}
	return &LLMFixer{client: client, timeout: timeout}
}

// fixResponse is the wire shape of a step-fixer model response.
type fixResponse struct {
	RewrittenStep  string `json:"rewritten_step"`
	Risk           string `json:"risk"`
	Recommendation string `json:"recommendation"`
	Reason         string `json:"reason"`
}

// Fix rewrites the step. Transport failures and unusable responses both
// degrade to FallbackFix rather than returning an error.
func (f *LLMFixer) Fix(ctx context.Context, req types.FixStepRequest) (*types.Assessment, error) {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "fix-step"), map[string]string{
		"Step":           req.Step,
		"Risk":           req.Risk,
		"Reason":         req.Reason,
		"Recommendation": req.Recommendation,
	})

	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	raw, err := f.client.GenerateJSON(callCtx, prompt, llm.TierAdvanced)
	if err != nil {
		apiErr := &APICallError{Message: "fixer call failed for step " + req.Step, Cause: err}
		log.Printf("[analysis] %v; using fallback rewrite", apiErr)
		return FallbackFix(req), nil
	}

	if err := schemas.Validate(schemas.FixSchema, raw); err != nil {
		log.Printf("[analysis] %v; using fallback rewrite",
			&MalformedResponseError{Message: "fix for step " + req.Step, Cause: err})
		return FallbackFix(req), nil
	}

	var resp fixResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		log.Printf("[analysis] %v; using fallback rewrite",
			&MalformedResponseError{Message: "fix for step " + req.Step, Cause: err})
		return FallbackFix(req), nil
	}

	risk := types.RiskLevel(strings.ToLower(strings.TrimSpace(resp.Risk)))
	if risk == "" {
		risk = types.RiskUnknown
	}

	return &types.Assessment{
		Step:           req.Step,
		Risk:           risk,
		Reason:         resp.Reason,
		Recommendation: resp.Recommendation,
		RewrittenStep:  strings.TrimSpace(resp.RewrittenStep),
	}, nil
}

// FallbackFix is the locally generated rewrite: the original step gated
// behind explicit human review. Best effort and always tagged synthetic.
func FallbackFix(req types.FixStepRequest) *types.Assessment {
	step := strings.TrimRight(strings.TrimSpace(req.Step), ".")
	rewritten := step + ", subject to human review before taking effect"

	return &types.Assessment{
		Step:           req.Step,
		Risk:           types.RiskMedium,
		Reason:         "A human checkpoint limits the blast radius of an automated decision",
		Recommendation: "Review the rewritten step and tighten the oversight criteria for your context",
		RewrittenStep:  rewritten,
		Synthetic:      true,
	}
}

// FallbackFixer serves local rewrites without any network calls.
type FallbackFixer struct{}

// NewFallbackFixer creates a fixer that only produces local rewrites.
func NewFallbackFixer() *FallbackFixer {
	return &FallbackFixer{}
}

// Fix returns the synthetic rewrite for the step.
func (f *FallbackFixer) Fix(_ context.Context, req types.FixStepRequest) (*types.Assessment, error) {
	return FallbackFix(req), nil
}

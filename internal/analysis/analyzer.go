// Package analysis wraps the external risk model behind Analyzer and
// StepFixer interfaces. Transport failures never escape as errors: each
// step degrades independently to a locally generated substitute, and the
// result records that the fallback was used.
package analysis

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sentra-ai/sentra/internal/llm"
	"github.com/sentra-ai/sentra/internal/prompts"
	"github.com/sentra-ai/sentra/internal/schemas"
	"github.com/sentra-ai/sentra/internal/types"
)

// Result is what an analysis produces: ordered per-step assessments plus
// an explicit marker for whether any of them came from the fallback path.
type Result struct {
	Assessments  []types.Assessment
	FallbackUsed bool
}

// Analyzer assesses ordered workflow steps at a sensitivity tier.
type Analyzer interface {
	Analyze(ctx context.Context, steps []string, tier types.Sensitivity) (*Result, error)
}

const (
	// defaultStepTimeout bounds each per-step model call.
	defaultStepTimeout = 30 * time.Second
	// defaultConcurrency bounds in-flight model calls for one analysis.
	defaultConcurrency = 4
)

// Options tunes the LLM-backed analyzer. The zero value uses defaults.
type Options struct {
	StepTimeout time.Duration
	Concurrency int
}

// LLMAnalyzer assesses each step with one JSON-mode model call.
type LLMAnalyzer struct {
	client      llm.Client
	stepTimeout time.Duration
	concurrency int
}

// NewLLMAnalyzer creates an analyzer backed by the given LLM client.
func NewLLMAnalyzer(client llm.Client, opts Options) *LLMAnalyzer {
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = defaultStepTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &LLMAnalyzer{
		client:      client,
		stepTimeout: opts.StepTimeout,
		concurrency: opts.Concurrency,
	}
}

// stepResponse is the wire shape of a per-step model response.
type stepResponse struct {
	Risk              string   `json:"risk"`
	Recommendation    string   `json:"recommendation"`
	Reason            string   `json:"reason"`
	RiskTypes         []string `json:"risk_types"`
	SuggestedReviewer string   `json:"suggested_reviewer"`
}

// Analyze assesses every step, preserving input order. Steps are analyzed
// concurrently up to the configured limit; a failed or unparsable call
// degrades that step to a synthetic assessment instead of failing the run.
func (a *LLMAnalyzer) Analyze(ctx context.Context, steps []string, tier types.Sensitivity) (*Result, error) {
	assessments := make([]types.Assessment, len(steps))
	fallbacks := make([]bool, len(steps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, step := range steps {
		g.Go(func() error {
			assessments[i], fallbacks[i] = a.analyzeStep(gctx, step, tier)
			return nil
		})
	}
	// Goroutines degrade instead of erroring; Wait only collects them.
	_ = g.Wait()

	result := &Result{Assessments: assessments}
	for _, usedFallback := range fallbacks {
		if usedFallback {
			result.FallbackUsed = true
			break
		}
	}
	return result, nil
}

// analyzeStep runs one model call and reports whether the returned
// assessment is a fallback substitute.
func (a *LLMAnalyzer) analyzeStep(ctx context.Context, step string, tier types.Sensitivity) (types.Assessment, bool) {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "analyze-step"), map[string]string{
		"Step":        step,
		"Sensitivity": string(tier),
	})

	callCtx, cancel := context.WithTimeout(ctx, a.stepTimeout)
	defer cancel()

	raw, err := a.client.GenerateJSON(callCtx, prompt, llm.TierStandard)
	if err != nil {
		apiErr := &APICallError{Message: "analyzer call failed for step " + step, Cause: err}
		log.Printf("[analysis] %v; using fallback", apiErr)
		return degradedAssessment(step, err), true
	}

	assessment, err := parseStepResponse(step, raw)
	if err != nil {
		log.Printf("[analysis] %v; using placeholder", err)
		return unparsableAssessment(step), true
	}
	return assessment, false
}

// parseStepResponse validates and decodes one model response.
func parseStepResponse(step, raw string) (types.Assessment, error) {
	if err := schemas.Validate(schemas.AssessmentSchema, raw); err != nil {
		return types.Assessment{}, &MalformedResponseError{
			Message: "assessment for step " + step,
			Cause:   err,
		}
	}

	var resp stepResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return types.Assessment{}, &MalformedResponseError{
			Message: "assessment for step " + step,
			Cause:   err,
		}
	}

	risk := types.RiskLevel(strings.ToLower(strings.TrimSpace(resp.Risk)))
	if risk == "" {
		risk = types.RiskUnknown
	}

	riskTypes := make([]types.RiskType, 0, len(resp.RiskTypes))
	for _, tag := range resp.RiskTypes {
		riskTypes = append(riskTypes, types.RiskType(tag))
	}
	if len(riskTypes) == 0 {
		riskTypes = nil
	}

	return types.Assessment{
		Step:              step,
		Risk:              risk,
		Reason:            resp.Reason,
		Recommendation:    resp.Recommendation,
		RiskTypes:         riskTypes,
		SuggestedReviewer: resp.SuggestedReviewer,
	}, nil
}

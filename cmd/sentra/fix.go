package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sentra-ai/sentra/internal/analysis"
	"github.com/sentra-ai/sentra/internal/llm"
	"github.com/sentra-ai/sentra/internal/observability"
	"github.com/sentra-ai/sentra/internal/types"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Rewrite one risky step into a safer alternative",
	RunE:  runFix,
}

var (
	fixStep           string
	fixRisk           string
	fixReason         string
	fixRecommendation string
	fixProvider       string
	fixAPIKey         string
	fixMock           bool
	fixJSON           bool
)

func init() {
	fixCmd.Flags().StringVar(&fixStep, "step", "", "The risky step text (required)")
	fixCmd.Flags().StringVar(&fixRisk, "risk", "", "The assessed risk level of the step (required)")
	fixCmd.Flags().StringVar(&fixReason, "reason", "", "Why the step was flagged")
	fixCmd.Flags().StringVar(&fixRecommendation, "recommendation", "", "The recommendation attached to the assessment")
	fixCmd.Flags().StringVar(&fixProvider, "provider", "", "LLM provider: gemini or openai")
	fixCmd.Flags().StringVar(&fixAPIKey, "api-key", "", "API key (optional, defaults to GEMINI_API_KEY / OPENAI_API_KEY env vars)")
	fixCmd.Flags().BoolVar(&fixMock, "mock", false, "Use the canned rewrite without any API calls")
	fixCmd.Flags().BoolVar(&fixJSON, "json", false, "Print the result as JSON instead of formatted boxes")

	_ = fixCmd.MarkFlagRequired("step")
	_ = fixCmd.MarkFlagRequired("risk")

	rootCmd.AddCommand(fixCmd)
}

func runFix(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	req := types.FixStepRequest{
		Step:           fixStep,
		Risk:           fixRisk,
		Reason:         fixReason,
		Recommendation: fixRecommendation,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	fixer, closeClient, err := buildFixer(ctx, fixProvider, fixAPIKey, fixMock)
	if err != nil {
		return err
	}
	defer closeClient()

	fixed, err := fixer.Fix(ctx, req)
	if err != nil {
		return fmt.Errorf("fix failed: %w", err)
	}

	if fixJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(fixed)
	}

	observability.NewPrinter(os.Stdout).PrintFixedStep(fixed)
	return nil
}

func buildFixer(ctx context.Context, provider, apiKey string, mock bool) (analysis.StepFixer, func(), error) {
	llmConfig, key, err := resolveLLM(provider, apiKey)
	if err != nil {
		return nil, nil, err
	}

	if mock || key == "" {
		return analysis.NewFallbackFixer(), func() {}, nil
	}

	client, err := llm.NewClient(ctx, llmConfig, key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return analysis.NewLLMFixer(client, 0), func() { _ = client.Close() }, nil
}

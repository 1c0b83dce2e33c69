package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sentra-ai/sentra/internal/analysis"
	"github.com/sentra-ai/sentra/internal/compare"
	"github.com/sentra-ai/sentra/internal/config"
	"github.com/sentra-ai/sentra/internal/llm"
	"github.com/sentra-ai/sentra/internal/observability"
	"github.com/sentra-ai/sentra/internal/parsing"
	"github.com/sentra-ai/sentra/internal/scoring"
	"github.com/sentra-ai/sentra/internal/sensitivity"
	"github.com/sentra-ai/sentra/internal/types"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Analyze a workflow once and print the risk report",
	Long: `Reads workflow steps from a file (or stdin with -), one step per line,
assesses each step and prints the per-step risks with an overall score.
A previous report saved with --json can be passed via --previous to see
how risk changed between revisions.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAudit,
}

var (
	auditConfigPath  string
	auditSteps       string
	auditSensitivity string
	auditProvider    string
	auditAPIKey      string
	auditPrevious    string
	auditMock        bool
	auditJSON        bool
	auditVerbose     bool
)

func init() {
	auditCmd.Flags().StringVar(&auditConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	auditCmd.Flags().StringVarP(&auditSteps, "steps", "s", "", "Path to workflow steps text file, or - for stdin")
	auditCmd.Flags().StringVar(&auditSensitivity, "sensitivity", "", "Sensitivity tier: low, medium or strict (default medium)")
	auditCmd.Flags().StringVar(&auditProvider, "provider", "", "LLM provider: gemini or openai")
	auditCmd.Flags().StringVar(&auditAPIKey, "api-key", "", "API key (optional, defaults to GEMINI_API_KEY / OPENAI_API_KEY env vars)")
	auditCmd.Flags().StringVar(&auditPrevious, "previous", "", "Path to a previous --json report to compare against")
	auditCmd.Flags().BoolVar(&auditMock, "mock", false, "Use canned assessments without any API calls")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Print the result as JSON instead of formatted boxes")
	auditCmd.Flags().BoolVarP(&auditVerbose, "verbose", "v", false, "Print detailed output")

	rootCmd.AddCommand(auditCmd)
}

// auditReport is the JSON shape emitted with --json and accepted by
// --previous.
type auditReport struct {
	Sensitivity  types.Sensitivity       `json:"sensitivity"`
	Assessments  []types.Assessment      `json:"assessments"`
	Summary      types.RiskSummary       `json:"summary"`
	Comparison   []types.ComparisonEntry `json:"comparison,omitempty"`
	FallbackUsed bool                    `json:"fallback_used"`
}

func runAudit(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Load config file if provided
	var cfg config.Config
	if auditConfigPath != "" {
		loadedCfg, err := config.LoadConfig(auditConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if auditVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", auditConfigPath)
		}
	}

	// CLI flags override config file values
	if cmd.Flags().Changed("steps") {
		cfg.Steps = auditSteps
	}
	if cmd.Flags().Changed("sensitivity") {
		cfg.Sensitivity = auditSensitivity
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = auditProvider
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = auditAPIKey
	}
	if cmd.Flags().Changed("mock") {
		cfg.UseMock = auditMock
	}
	if auditVerbose {
		cfg.Verbose = true
	}

	// Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		Sensitivity: "medium",
	})

	if cfg.Steps == "" {
		return fmt.Errorf("--steps is required (path to a steps file, or - for stdin)")
	}

	rawText, err := readSteps(cfg.Steps)
	if err != nil {
		return err
	}

	steps, err := parsing.ParseSteps(rawText)
	if err != nil {
		return err
	}

	tier := types.NormalizeSensitivity(cfg.Sensitivity)

	analyzer, closeClient, err := buildAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeClient()

	result, err := analyzer.Analyze(ctx, steps, tier)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	assessments := sensitivity.AdjustAssessments(result.Assessments, tier)
	summary := scoring.Summarize(assessments)

	var comparison []types.ComparisonEntry
	if auditPrevious != "" {
		previous, err := loadPreviousReport(auditPrevious)
		if err != nil {
			return err
		}
		current := &types.AnalysisRun{RawStepsText: rawText, Sensitivity: tier, Assessments: assessments}
		comparison = compare.Compare(previous, current)
	}

	if auditJSON {
		report := auditReport{
			Sensitivity:  tier,
			Assessments:  assessments,
			Summary:      summary,
			Comparison:   comparison,
			FallbackUsed: result.FallbackUsed,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintAssessments(assessments)
	printer.PrintSummary(summary)
	printer.PrintComparison(comparison)
	if result.FallbackUsed {
		fmt.Println("Note: offline assessments were used for some or all steps.")
	}
	return nil
}

// loadPreviousReport reads a report saved with --json and rebuilds the run
// the comparator needs from it.
func loadPreviousReport(path string) (*types.AnalysisRun, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read previous report %s: %w", path, err)
	}

	var report auditReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse previous report %s: %w", path, err)
	}
	if len(report.Assessments) == 0 {
		return nil, fmt.Errorf("previous report %s contains no assessments", path)
	}

	return &types.AnalysisRun{
		Sensitivity: report.Sensitivity,
		Assessments: report.Assessments,
	}, nil
}

// readSteps reads the raw workflow text from a file, or stdin when the
// path is "-".
func readSteps(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read steps from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read steps file %s: %w", path, err)
	}
	return string(data), nil
}

// buildAnalyzer wires the analyzer for one-shot commands. The returned
// closer releases the LLM client when one was created.
func buildAnalyzer(ctx context.Context, cfg config.Config) (analysis.Analyzer, func(), error) {
	llmConfig, apiKey, err := resolveLLM(cfg.Provider, cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}

	if cfg.UseMock || apiKey == "" {
		return analysis.NewFallbackAnalyzer(), func() {}, nil
	}

	client, err := llm.NewClient(ctx, llmConfig, apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return analysis.NewLLMAnalyzer(client, analysis.Options{}), func() { _ = client.Close() }, nil
}

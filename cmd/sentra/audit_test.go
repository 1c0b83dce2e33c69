package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentra-ai/sentra/internal/analysis"
	"github.com/sentra-ai/sentra/internal/compare"
	"github.com/sentra-ai/sentra/internal/config"
	"github.com/sentra-ai/sentra/internal/llm"
	"github.com/sentra-ai/sentra/internal/types"
)

func TestResolveLLM_ExplicitProvider(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "env-openai-key")

	cfg, key, err := resolveLLM("openai", "")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "env-openai-key", key)
}

func TestResolveLLM_ExplicitKeyWins(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-gemini-key")

	cfg, key, err := resolveLLM("gemini", "flag-key")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, cfg.Provider)
	assert.Equal(t, "flag-key", key)
}

func TestResolveLLM_InfersFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "env-openai-key")

	cfg, key, err := resolveLLM("", "")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "env-openai-key", key)
}

func TestResolveLLM_GeminiTakesPriority(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-gemini-key")
	t.Setenv("OPENAI_API_KEY", "env-openai-key")

	cfg, key, err := resolveLLM("", "")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, cfg.Provider)
	assert.Equal(t, "env-gemini-key", key)
}

func TestResolveLLM_NoKeysConfigured(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	_, key, err := resolveLLM("", "")
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestResolveLLM_UnknownProvider(t *testing.T) {
	_, _, err := resolveLLM("anthropic", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestLoadPreviousReport(t *testing.T) {
	report := auditReport{
		Sensitivity: types.SensitivityMedium,
		Assessments: []types.Assessment{
			{Step: "Collects customer data", Risk: types.RiskHigh},
			{Step: "Notifies the team", Risk: types.RiskLow},
		},
	}
	data, err := json.Marshal(report)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "previous.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	previous, err := loadPreviousReport(path)
	require.NoError(t, err)
	require.Len(t, previous.Assessments, 2)
	assert.Equal(t, "Collects customer data", previous.Assessments[0].Step)
	assert.Equal(t, types.RiskHigh, previous.Assessments[0].Risk)
}

func TestLoadPreviousReport_FeedsComparison(t *testing.T) {
	report := auditReport{
		Assessments: []types.Assessment{
			{Step: "Collects customer data", Risk: types.RiskHigh},
		},
	}
	data, err := json.Marshal(report)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "previous.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	previous, err := loadPreviousReport(path)
	require.NoError(t, err)

	current := &types.AnalysisRun{
		Assessments: []types.Assessment{
			{Step: "Collects customer data", Risk: types.RiskLow},
			{Step: "Archives records", Risk: types.RiskLow},
		},
	}
	entries := compare.Compare(previous, current)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Improved)
	assert.Equal(t, types.PreviousRiskNew, entries[1].PreviousRisk)
}

func TestLoadPreviousReport_MissingFile(t *testing.T) {
	_, err := loadPreviousReport("/nonexistent/previous.json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read previous report")
}

func TestLoadPreviousReport_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "previous.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := loadPreviousReport(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse previous report")
}

func TestLoadPreviousReport_EmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "previous.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	_, err := loadPreviousReport(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "contains no assessments")
}

func TestAuditConfigDefaults(t *testing.T) {
	cfg := config.Config{Provider: "gemini"}
	merged := cfg.MergeWithDefaults(config.Config{Sensitivity: "medium"})

	assert.Equal(t, "medium", merged.Sensitivity)
	assert.Equal(t, "gemini", merged.Provider)

	explicit := config.Config{Sensitivity: "strict"}
	merged = explicit.MergeWithDefaults(config.Config{Sensitivity: "medium"})
	assert.Equal(t, "strict", merged.Sensitivity)
}

func TestReadSteps_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.txt")
	require.NoError(t, os.WriteFile(path, []byte("First step\nSecond step\n"), 0644))

	raw, err := readSteps(path)
	require.NoError(t, err)
	assert.Equal(t, "First step\nSecond step\n", raw)
}

func TestReadSteps_MissingFile(t *testing.T) {
	_, err := readSteps("/nonexistent/steps.txt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read steps file")
}

func TestBuildAnalyzer_FallsBackWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	analyzer, closeClient, err := buildAnalyzer(context.Background(), config.Config{})
	require.NoError(t, err)
	defer closeClient()

	assert.IsType(t, &analysis.FallbackAnalyzer{}, analyzer)
}

func TestBuildAnalyzer_MockOverridesKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "some-key")

	analyzer, closeClient, err := buildAnalyzer(context.Background(), config.Config{UseMock: true})
	require.NoError(t, err)
	defer closeClient()

	assert.IsType(t, &analysis.FallbackAnalyzer{}, analyzer)
}

func TestBuildFixer_FallsBackWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	fixer, closeClient, err := buildFixer(context.Background(), "", "", false)
	require.NoError(t, err)
	defer closeClient()

	assert.IsType(t, &analysis.FallbackFixer{}, fixer)
}

package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownPrompts(t *testing.T) {
	for _, key := range []string{"analyze-step", "fix-step"} {
		prompt, err := Get("analysis.json", key)
		require.NoError(t, err, "key %s", key)
		assert.NotEmpty(t, prompt)
	}
}

func TestGetUnknownKey(t *testing.T) {
	_, err := Get("analysis.json", "no-such-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-prompt")
}

func TestGetUnknownFile(t *testing.T) {
	_, err := Get("missing.json", "analyze-step")
	require.Error(t, err)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("analysis.json", "no-such-prompt")
	})
}

func TestFormat(t *testing.T) {
	template := `Step: "{{.Step}}" at {{.Sensitivity}} sensitivity`
	result := Format(template, map[string]string{
		"Step":        "AI scans resumes",
		"Sensitivity": "strict",
	})
	assert.Equal(t, `Step: "AI scans resumes" at strict sensitivity`, result)
}

func TestFormatLeavesUnknownPlaceholders(t *testing.T) {
	result := Format("{{.Step}} {{.Other}}", map[string]string{"Step": "x"})
	assert.Equal(t, "x {{.Other}}", result)
}

func TestAnalyzePromptMentionsAllRiskFields(t *testing.T) {
	prompt := MustGet("analysis.json", "analyze-step")
	for _, field := range []string{"risk", "recommendation", "reason", "risk_types", "suggested_reviewer"} {
		assert.True(t, strings.Contains(prompt, field), "prompt should request %q", field)
	}
}

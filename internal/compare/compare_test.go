package compare

import (
	"testing"

	"github.com/sentra-ai/sentra/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWith(assessments ...types.Assessment) *types.AnalysisRun {
	return types.NewAnalysisRun("raw", types.SensitivityMedium, assessments, false)
}

func TestCompareAgainstSelf(t *testing.T) {
	run := runWith(
		types.Assessment{Step: "AI scans resumes", Risk: types.RiskLow},
		types.Assessment{Step: "Filters top 20%", Risk: types.RiskMedium},
		types.Assessment{Step: "Auto-rejects bottom 80%", Risk: types.RiskHigh},
	)

	entries := Compare(run, run)
	require.Len(t, entries, 3)
	for _, entry := range entries {
		assert.False(t, entry.Changed, "step %q", entry.Step)
		assert.False(t, entry.Improved, "step %q", entry.Step)
		assert.Equal(t, entry.PreviousRisk, entry.CurrentRisk)
	}
}

func TestCompareClassification(t *testing.T) {
	previous := runWith(
		types.Assessment{Step: "X", Risk: types.RiskHigh},
		types.Assessment{Step: "Y", Risk: types.RiskLow},
		types.Assessment{Step: "Z", Risk: types.RiskMedium},
	)

	tests := []struct {
		name     string
		current  types.Assessment
		expected types.ComparisonEntry
	}{
		{
			name:    "high to low is improved",
			current: types.Assessment{Step: "X", Risk: types.RiskLow},
			expected: types.ComparisonEntry{
				Step: "X", PreviousRisk: "high", CurrentRisk: "low",
				Changed: true, Improved: true,
			},
		},
		{
			name:    "low to medium changed but not improved",
			current: types.Assessment{Step: "Y", Risk: types.RiskMedium},
			expected: types.ComparisonEntry{
				Step: "Y", PreviousRisk: "low", CurrentRisk: "medium",
				Changed: true, Improved: false,
			},
		},
		{
			name:    "medium to low improved",
			current: types.Assessment{Step: "Z", Risk: types.RiskLow},
			expected: types.ComparisonEntry{
				Step: "Z", PreviousRisk: "medium", CurrentRisk: "low",
				Changed: true, Improved: true,
			},
		},
		{
			name:    "unseen step is new",
			current: types.Assessment{Step: "W", Risk: types.RiskHigh},
			expected: types.ComparisonEntry{
				Step: "W", PreviousRisk: types.PreviousRiskNew, CurrentRisk: "high",
				Changed: true, Improved: false,
			},
		},
		{
			name:    "risk labels compared case-insensitively",
			current: types.Assessment{Step: "X", Risk: types.RiskLevel("HIGH")},
			expected: types.ComparisonEntry{
				Step: "X", PreviousRisk: "high", CurrentRisk: "HIGH",
				Changed: false, Improved: false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Compare(previous, runWith(tt.current))
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expected, entries[0])
		})
	}
}

func TestCompareStepIdentityIsCaseSensitive(t *testing.T) {
	previous := runWith(types.Assessment{Step: "AI scans resumes", Risk: types.RiskHigh})
	current := runWith(types.Assessment{Step: "ai scans resumes", Risk: types.RiskLow})

	entries := Compare(previous, current)
	require.Len(t, entries, 1)
	assert.Equal(t, types.PreviousRiskNew, entries[0].PreviousRisk)
}

func TestCompareDuplicatePreviousStepsUsesFirstMatch(t *testing.T) {
	previous := runWith(
		types.Assessment{Step: "X", Risk: types.RiskHigh},
		types.Assessment{Step: "X", Risk: types.RiskLow},
	)
	current := runWith(types.Assessment{Step: "X", Risk: types.RiskLow})

	entries := Compare(previous, current)
	require.Len(t, entries, 1)
	assert.Equal(t, "high", entries[0].PreviousRisk)
	assert.True(t, entries[0].Improved)
}

func TestCompareNilPreviousMarksEverythingNew(t *testing.T) {
	current := runWith(
		types.Assessment{Step: "A", Risk: types.RiskLow},
		types.Assessment{Step: "B", Risk: types.RiskHigh},
	)

	entries := Compare(nil, current)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, types.PreviousRiskNew, entry.PreviousRisk)
		assert.True(t, entry.Changed)
		assert.False(t, entry.Improved)
	}
}

func TestCompareOrderFollowsCurrentRun(t *testing.T) {
	previous := runWith(
		types.Assessment{Step: "A", Risk: types.RiskLow},
		types.Assessment{Step: "B", Risk: types.RiskLow},
	)
	current := runWith(
		types.Assessment{Step: "B", Risk: types.RiskLow},
		types.Assessment{Step: "A", Risk: types.RiskLow},
	)

	entries := Compare(previous, current)
	require.Len(t, entries, 2)
	assert.Equal(t, "B", entries[0].Step)
	assert.Equal(t, "A", entries[1].Step)
}

package sensitivity

import (
	"testing"

	"github.com/sentra-ai/sentra/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestAdjust(t *testing.T) {
	tests := []struct {
		name     string
		risk     types.RiskLevel
		tier     types.Sensitivity
		expected types.RiskLevel
	}{
		{name: "low tier relaxes medium", risk: types.RiskMedium, tier: types.SensitivityLow, expected: types.RiskLow},
		{name: "low tier relaxes high one step only", risk: types.RiskHigh, tier: types.SensitivityLow, expected: types.RiskMedium},
		{name: "low tier keeps low", risk: types.RiskLow, tier: types.SensitivityLow, expected: types.RiskLow},
		{name: "medium tier is identity for low", risk: types.RiskLow, tier: types.SensitivityMedium, expected: types.RiskLow},
		{name: "medium tier is identity for medium", risk: types.RiskMedium, tier: types.SensitivityMedium, expected: types.RiskMedium},
		{name: "medium tier is identity for high", risk: types.RiskHigh, tier: types.SensitivityMedium, expected: types.RiskHigh},
		{name: "strict tier tightens low", risk: types.RiskLow, tier: types.SensitivityStrict, expected: types.RiskMedium},
		{name: "strict tier tightens medium", risk: types.RiskMedium, tier: types.SensitivityStrict, expected: types.RiskHigh},
		{name: "strict tier saturates high", risk: types.RiskHigh, tier: types.SensitivityStrict, expected: types.RiskHigh},
		{name: "unknown passes through", risk: types.RiskUnknown, tier: types.SensitivityStrict, expected: types.RiskUnknown},
		{name: "unrecognized label passes through", risk: types.RiskLevel("critical"), tier: types.SensitivityLow, expected: types.RiskLevel("critical")},
		{name: "unrecognized tier passes through", risk: types.RiskHigh, tier: types.Sensitivity("paranoid"), expected: types.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Adjust(tt.risk, tt.tier))
		})
	}
}

// Adjust is a single-application contract, not a fixed point: the medium
// tier is idempotent, but applying strict twice escalates further.
func TestAdjustRepeatedApplication(t *testing.T) {
	for _, risk := range []types.RiskLevel{types.RiskLow, types.RiskMedium, types.RiskHigh} {
		once := Adjust(risk, types.SensitivityMedium)
		assert.Equal(t, once, Adjust(once, types.SensitivityMedium))
	}

	assert.Equal(t, types.RiskMedium, Adjust(types.RiskLow, types.SensitivityStrict))
	assert.Equal(t, types.RiskHigh, Adjust(Adjust(types.RiskLow, types.SensitivityStrict), types.SensitivityStrict))
}

func TestAdjustAssessmentsDoesNotMutateInput(t *testing.T) {
	original := []types.Assessment{
		{Step: "Auto-rejects bottom 80%", Risk: types.RiskHigh},
		{Step: "AI scans resumes", Risk: types.RiskLow},
	}

	adjusted := AdjustAssessments(original, types.SensitivityLow)

	assert.Equal(t, types.RiskHigh, original[0].Risk)
	assert.Equal(t, types.RiskMedium, adjusted[0].Risk)
	assert.Equal(t, types.RiskLow, adjusted[1].Risk)
	assert.Equal(t, "Auto-rejects bottom 80%", adjusted[0].Step)
}

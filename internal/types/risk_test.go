package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRisk(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected RiskLevel
	}{
		{name: "low", raw: "low", expected: RiskLow},
		{name: "medium", raw: "medium", expected: RiskMedium},
		{name: "high", raw: "high", expected: RiskHigh},
		{name: "mixed case", raw: "HIGH", expected: RiskHigh},
		{name: "surrounding whitespace", raw: "  medium ", expected: RiskMedium},
		{name: "unrecognized label", raw: "critical", expected: RiskUnknown},
		{name: "empty", raw: "", expected: RiskUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeRisk(tt.raw))
		})
	}
}

func TestRiskLevelMoreSevereThan(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RiskLevel
		expected bool
	}{
		{name: "high over low", a: RiskHigh, b: RiskLow, expected: true},
		{name: "high over medium", a: RiskHigh, b: RiskMedium, expected: true},
		{name: "medium over low", a: RiskMedium, b: RiskLow, expected: true},
		{name: "equal levels", a: RiskMedium, b: RiskMedium, expected: false},
		{name: "low under high", a: RiskLow, b: RiskHigh, expected: false},
		{name: "unknown never more severe", a: RiskUnknown, b: RiskLow, expected: false},
		{name: "nothing more severe than unknown", a: RiskHigh, b: RiskUnknown, expected: false},
		{name: "case insensitive", a: RiskLevel("HIGH"), b: RiskLow, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.MoreSevereThan(tt.b))
		})
	}
}

func TestNormalizeSensitivity(t *testing.T) {
	assert.Equal(t, SensitivityLow, NormalizeSensitivity("low"))
	assert.Equal(t, SensitivityStrict, NormalizeSensitivity("STRICT"))
	assert.Equal(t, SensitivityMedium, NormalizeSensitivity("medium"))
	assert.Equal(t, SensitivityMedium, NormalizeSensitivity(""))
	assert.Equal(t, SensitivityMedium, NormalizeSensitivity("paranoid"))
}

func TestRiskCountsTotal(t *testing.T) {
	counts := RiskCounts{Low: 2, Medium: 1, High: 3, Unknown: 1}
	assert.Equal(t, 7, counts.Total())
	assert.Equal(t, 0, RiskCounts{}.Total())
}

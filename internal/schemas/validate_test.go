package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAssessment(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantValid bool
	}{
		{
			name:      "minimal valid response",
			document:  `{"risk": "low", "recommendation": "keep auditing", "reason": "collects data only"}`,
			wantValid: true,
		},
		{
			name: "full response",
			document: `{
				"risk": "high",
				"recommendation": "add human review",
				"reason": "automated rejection",
				"risk_types": ["Legal", "Bias"],
				"suggested_reviewer": "HR manager"
			}`,
			wantValid: true,
		},
		{
			name:      "missing risk",
			document:  `{"recommendation": "x", "reason": "y"}`,
			wantValid: false,
		},
		{
			name:      "empty risk",
			document:  `{"risk": "", "recommendation": "x", "reason": "y"}`,
			wantValid: false,
		},
		{
			name:      "risk wrong type",
			document:  `{"risk": 3, "recommendation": "x", "reason": "y"}`,
			wantValid: false,
		},
		{
			name:      "unknown risk type tag",
			document:  `{"risk": "low", "recommendation": "x", "reason": "y", "risk_types": ["Existential"]}`,
			wantValid: false,
		},
		{
			name:      "not JSON at all",
			document:  `the model wrote prose instead`,
			wantValid: false,
		},
		{
			name:      "JSON array instead of object",
			document:  `[{"risk": "low"}]`,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(AssessmentSchema, tt.document)
			if tt.wantValid {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateFix(t *testing.T) {
	valid := `{"rewritten_step": "Flag for human review before rejecting", "risk": "low"}`
	assert.NoError(t, Validate(FixSchema, valid))

	missing := `{"risk": "low"}`
	var validationErr *ValidationError
	require.ErrorAs(t, Validate(FixSchema, missing), &validationErr)
}

func TestValidateUnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", `{}`)
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
}

package types

import "github.com/go-playground/validator/v10"

// AnalyzeRequest is the request body for POST /analyze. StepsText carries
// the raw pasted workflow; parsing and the two-step minimum are enforced by
// the step parser, not here.
type AnalyzeRequest struct {
	StepsText   string `json:"steps_text" validate:"required"`
	Sensitivity string `json:"sensitivity,omitempty"`
	UseMock     bool   `json:"use_mock,omitempty"`
}

// FixStepRequest is the request body for POST /fix-step. It carries one
// risky step together with the assessment that flagged it.
type FixStepRequest struct {
	Step           string `json:"step" validate:"required,min=1"`
	Risk           string `json:"risk" validate:"required"`
	Reason         string `json:"reason,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the FixStepRequest using the validator.
func (r *FixStepRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

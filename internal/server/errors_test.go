package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sentra-ai/sentra/internal/parsing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"empty workflow", &parsing.EmptyWorkflowError{}, http.StatusBadRequest},
		{"too short workflow", &parsing.WorkflowTooShortError{Step: "Only one step"}, http.StatusBadRequest},
		{"validation", &ErrValidation{Field: "steps_text", Message: "required"}, http.StatusBadRequest},
		{"wrapped parse error", errors.Join(errors.New("context"), &parsing.EmptyWorkflowError{}), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrValidationMessage(t *testing.T) {
	err := &ErrValidation{Field: "step", Message: "is required"}
	assert.Equal(t, "validation error: step - is required", err.Error())
}

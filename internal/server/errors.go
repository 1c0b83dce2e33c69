package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sentra-ai/sentra/internal/parsing"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var emptyErr *parsing.EmptyWorkflowError
	var shortErr *parsing.WorkflowTooShortError
	switch {
	case errors.As(err, &emptyErr), errors.As(err, &shortErr):
		return http.StatusBadRequest
	}
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

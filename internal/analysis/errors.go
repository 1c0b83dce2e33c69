package analysis

import "fmt"

// APICallError represents a transport or provider failure while calling
// the model. Callers recover from it with a synthetic fallback result;
// it is never surfaced to the user as a hard failure.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError represents a model response whose shape the
// aggregator cannot use, even after markdown fence stripping.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed model response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

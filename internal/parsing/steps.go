// Package parsing normalizes raw pasted workflow text into an ordered list
// of step descriptions.
package parsing

import (
	"regexp"
	"strings"
)

// ordinalMarker matches a leading "1." style numbering prefix, including
// any whitespace that follows it.
var ordinalMarker = regexp.MustCompile(`^\d+\.\s*`)

// ParseSteps splits raw text into workflow steps: one step per non-empty
// line, trimmed, with leading ordinal markers ("1. ", "12.") stripped.
// Returns EmptyWorkflowError when nothing remains and WorkflowTooShortError
// when only a single step does, since a one-step workflow cannot be
// analyzed as a workflow.
func ParseSteps(raw string) ([]string, error) {
	var steps []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = ordinalMarker.ReplaceAllString(line, "")
		if line == "" {
			// The line was nothing but a numbering marker.
			continue
		}
		steps = append(steps, line)
	}

	switch len(steps) {
	case 0:
		return nil, &EmptyWorkflowError{}
	case 1:
		return nil, &WorkflowTooShortError{Step: steps[0]}
	}
	return steps, nil
}

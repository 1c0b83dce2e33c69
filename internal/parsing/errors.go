package parsing

// EmptyWorkflowError indicates the raw text contained no steps after
// normalization. Blocks submission; never reaches the Analyzer.
type EmptyWorkflowError struct{}

func (e *EmptyWorkflowError) Error() string {
	return "workflow is empty: enter at least two steps to analyze"
}

// WorkflowTooShortError indicates the workflow had exactly one step. A
// single-step workflow is not analyzable as a workflow.
type WorkflowTooShortError struct {
	Step string
}

func (e *WorkflowTooShortError) Error() string {
	return "workflow is too short: a workflow needs at least two steps"
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/sentra-ai/sentra/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// riskMarker maps a risk level to an indicator for the report.
func riskMarker(risk types.RiskLevel) string {
	switch risk {
	case types.RiskHigh:
		return "!"
	case types.RiskMedium:
		return "~"
	case types.RiskLow:
		return "·"
	default:
		return "?"
	}
}

// PrintAssessments outputs one card per assessed step.
func (p *Printer) PrintAssessments(assessments []types.Assessment) {
	if len(assessments) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Assessed %d steps:\n\n", len(assessments)))

	for i, a := range assessments {
		step := a.Step
		if len(step) > 45 {
			step = step[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", riskMarker(a.Risk), step))
		sb.WriteString(fmt.Sprintf("  Risk: %s", a.Risk))
		if a.Synthetic {
			sb.WriteString(" (offline)")
		}
		sb.WriteString("\n")
		if a.Recommendation != "" {
			rec := a.Recommendation
			if len(rec) > 48 {
				rec = rec[:45] + "..."
			}
			sb.WriteString(fmt.Sprintf("  → %s\n", rec))
		}
		if len(a.RiskTypes) > 0 {
			tags := make([]string, len(a.RiskTypes))
			for j, rt := range a.RiskTypes {
				tags[j] = string(rt)
			}
			sb.WriteString(fmt.Sprintf("  [%s]\n", strings.Join(tags, ", ")))
		}
		if i < len(assessments)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("STEP ASSESSMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the aggregate risk counts and overall score.
func (p *Printer) PrintSummary(summary types.RiskSummary) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Low:     %d\n", summary.Counts.Low))
	sb.WriteString(fmt.Sprintf("Medium:  %d\n", summary.Counts.Medium))
	sb.WriteString(fmt.Sprintf("High:    %d\n", summary.Counts.High))
	if summary.Counts.Unknown > 0 {
		sb.WriteString(fmt.Sprintf("Unknown: %d\n", summary.Counts.Unknown))
	}
	sb.WriteString("\n")
	if summary.Score != nil {
		sb.WriteString(fmt.Sprintf("Overall risk score: %d / 100", *summary.Score))
	} else {
		sb.WriteString("Overall risk score: n/a")
	}

	p.printBox("RISK SUMMARY", sb.String())
}

// PrintComparison outputs the per-step diff against the previous run.
func (p *Printer) PrintComparison(entries []types.ComparisonEntry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := entries[i]
		step := e.Step
		if len(step) > 45 {
			step = step[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", step))
		switch {
		case e.PreviousRisk == types.PreviousRiskNew:
			sb.WriteString("  new step\n")
		case e.Improved:
			sb.WriteString(fmt.Sprintf("  improved: %s → %s\n", e.PreviousRisk, e.CurrentRisk))
		case e.Changed:
			sb.WriteString(fmt.Sprintf("  changed: %s → %s\n", e.PreviousRisk, e.CurrentRisk))
		default:
			sb.WriteString("  unchanged\n")
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more steps", len(entries)-maxItemsToShow))
	}

	p.printBox("COMPARISON WITH PREVIOUS RUN", sb.String())
}

// PrintFixedStep outputs the rewritten step from a fix request.
func (p *Printer) PrintFixedStep(fixed *types.Assessment) {
	if fixed == nil {
		return
	}

	var sb strings.Builder

	text := fixed.RewrittenStep
	if len(text) > 50 {
		text = text[:47] + "..."
	}
	sb.WriteString(fmt.Sprintf("Rewritten: %s\n", text))
	sb.WriteString(fmt.Sprintf("Risk:      %s", fixed.Risk))
	if fixed.Reason != "" {
		reason := fixed.Reason
		if len(reason) > 48 {
			reason = reason[:45] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nReason:    %s", reason))
	}

	p.printBox("SAFER STEP", sb.String())
}

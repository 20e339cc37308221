// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/gap-analyzer/internal/types"
	"github.com/jonathan/gap-analyzer/internal/weighting"
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

// PrintRequirements outputs the requirements extracted from the job description.
func (p *Printer) PrintRequirements(requirements []types.Requirement) {
	if len(requirements) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Extracted %d requirements:\n\n", len(requirements)))

	count := min(len(requirements), maxItemsToShow)
	for i := 0; i < count; i++ {
		req := requirements[i]
		text := req.Text
		if len(text) > 45 {
			text = text[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s  [%s]\n", req.RequirementID, req.Category))
		sb.WriteString(fmt.Sprintf("  %s\n", text))
		if req.MustHave {
			sb.WriteString("  must-have\n")
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(requirements) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more requirements", len(requirements)-maxItemsToShow))
	}

	p.printBox("EXTRACTED REQUIREMENTS", sb.String())
}

// PrintGapSummary outputs the overall alignment score and bucket counts.
func (p *Printer) PrintGapSummary(result *types.GapAnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall alignment: %d/100\n", result.OverallAlignmentScore))
	sb.WriteString(fmt.Sprintf("Requirements:      %d\n", result.RequirementsTotal))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Matches:      %d\n", len(result.MatchedRequirements)))
	sb.WriteString(fmt.Sprintf("Partial gaps: %d\n", len(result.PartialGaps)))
	sb.WriteString(fmt.Sprintf("Hard gaps:    %d\n", len(result.HardGaps)))
	sb.WriteString(fmt.Sprintf("Signal gaps:  %d", len(result.SignalGaps)))

	p.printBox("GAP ANALYSIS SUMMARY", sb.String())
}

// PrintBucket outputs the per-requirement results for a single classification bucket.
func (p *Printer) PrintBucket(title string, results []*types.MatchResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		sb.WriteString(fmt.Sprintf("%s  %d%%", r.RequirementID, r.MatchStrengthPct))
		if r.MustHave {
			sb.WriteString("  (must-have)")
		}
		sb.WriteString("\n")

		text := r.Text
		if len(text) > 45 {
			text = text[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", text))

		if len(r.Evidence) > 0 {
			top := r.Evidence[0]
			sb.WriteString(fmt.Sprintf("  evidence: %s (%s)\n", top.EvidenceID, top.SourceType))
		}
		if len(r.MissingSignals) > 0 {
			sb.WriteString(fmt.Sprintf("  missing: %s\n", strings.Join(r.MissingSignals, ", ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(results)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOverrides outputs the fact-based overrides that fired for this run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintOverrides(records []types.OverrideRecord) {
	if len(records) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO OVERRIDES APPLIED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applied %d overrides:\n\n", len(records)))

	for i, rec := range records {
		sb.WriteString(fmt.Sprintf("%s → %s\n", rec.RequirementID, rec.NewClassification))
		sb.WriteString(fmt.Sprintf("  reason: %s\n", rec.Reason))
		if i < len(records)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("FACT-BASED OVERRIDES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExecWeighting outputs the executive weighting outcome alongside the
// base grounded score.
func (p *Printer) PrintExecWeighting(outcome *weighting.Outcome) {
	if outcome == nil {
		return
	}

	var sb strings.Builder
	if !outcome.Enabled {
		sb.WriteString("Executive weighting disabled")
		p.printBox("EXECUTIVE WEIGHTING", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Base score:     %d\n", outcome.BaseGroundedScore))
	if outcome.ExecWeightedScore != nil {
		sb.WriteString(fmt.Sprintf("Weighted score: %d\n", *outcome.ExecWeightedScore))
	}
	sb.WriteString(fmt.Sprintf("Adjustment:     %+d\n", outcome.Adjustment))

	if len(outcome.Notes) > 0 {
		sb.WriteString("\n")
		for _, note := range outcome.Notes {
			if len(note) > 50 {
				note = note[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("• %s\n", note))
		}
	}

	if len(outcome.Signals) > 0 {
		sb.WriteString(fmt.Sprintf("\nExecutive signals: %d\n", len(outcome.Signals)))
		count := min(len(outcome.Signals), 3)
		for i := 0; i < count; i++ {
			sig := outcome.Signals[i]
			sb.WriteString(fmt.Sprintf("  %s  %s (%.1f)\n", sig.RequirementID, sig.Competency, sig.EffectiveWeight))
		}
		if len(outcome.Signals) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(outcome.Signals)-3))
		}
	}

	p.printBox("EXECUTIVE WEIGHTING", strings.TrimSuffix(sb.String(), "\n"))
}

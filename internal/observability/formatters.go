// Package observability provides formatted output utilities for the CLI's
// human-readable mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Bapt252/Commitment--sub002/internal/engine"
	"github.com/Bapt252/Commitment--sub002/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
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

// PrintCandidate outputs a human-readable summary of the candidate record.
func (p *Printer) PrintCandidate(candidate *types.Candidate) {
	if candidate == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ID:         %s\n", candidate.ID))
	if candidate.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:       %s\n", candidate.Name))
	}
	sb.WriteString(fmt.Sprintf("Experience: %.1f years\n", candidate.ExperienceYears))
	if candidate.RemotePref != "" {
		sb.WriteString(fmt.Sprintf("Remote:     %s\n", candidate.RemotePref))
	}
	if candidate.Location.Address != "" {
		sb.WriteString(fmt.Sprintf("Location:   %s\n", candidate.Location.Address))
	}

	if len(candidate.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(candidate.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", candidate.Skills[i]))
		}
		if len(candidate.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(candidate.Skills)-maxItemsToShow))
		}
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobOffer outputs a human-readable summary of the job posting.
func (p *Printer) PrintJobOffer(job *types.JobOffer) {
	if job == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ID:       %s\n", job.ID))
	if job.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	}
	if job.Title != "" {
		sb.WriteString(fmt.Sprintf("Role:     %s\n", job.Title))
	}
	if job.Experience.Max > 0 {
		sb.WriteString(fmt.Sprintf("Requires: %.0f-%.0f years\n", job.Experience.Min, job.Experience.Max))
	} else if job.Experience.Min > 0 {
		sb.WriteString(fmt.Sprintf("Requires: %.0f+ years\n", job.Experience.Min))
	}
	if job.RemotePolicy != "" {
		sb.WriteString(fmt.Sprintf("Remote:   %s\n", job.RemotePolicy))
	}
	if job.Location.Address != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", job.Location.Address))
	}

	if len(job.RequiredSkills) > 0 {
		sb.WriteString("\nRequired Skills:\n")
		count := min(len(job.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.RequiredSkills[i]))
		}
		if len(job.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.RequiredSkills)-maxItemsToShow))
		}
	}

	p.printBox("JOB OFFER", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResults outputs the ranked matches with per-criterion breakdowns.
// The direction decides which side's ID headlines each entry.
func (p *Printer) PrintResults(results []engine.Result, direction engine.Direction) {
	if len(results) == 0 {
		p.printBox("MATCH RESULTS", "No results.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total pairs ranked: %d\n\n", len(results)))

	for i, res := range results {
		id := res.JobID
		if direction == engine.JobToCandidates {
			id = res.CandidateID
		}

		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, id))
		sb.WriteString(fmt.Sprintf("    Score: %.1f (%s)", res.Score.Overall, res.Score.Strategy))
		if res.Score.Confidence != "" {
			sb.WriteString(fmt.Sprintf(" [%s]", res.Score.Confidence))
		}
		sb.WriteString("\n")

		for _, criterion := range res.Score.Criteria {
			sb.WriteString(fmt.Sprintf("      %-16s %5.1f\n", criterion.Name, criterion.Score))
		}

		if res.Consensus != nil {
			sb.WriteString(fmt.Sprintf("    Consensus of: %s\n", strings.Join(res.Consensus.Contributed, ", ")))
			if len(res.Consensus.Failed) > 0 {
				sb.WriteString(fmt.Sprintf("    Failed:       %s\n", strings.Join(res.Consensus.Failed, ", ")))
			}
		}

		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("MATCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-maker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// previewLen caps how much of a long text field is shown
	previewLen = 80
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

func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > previewLen {
		return s[:previewLen-3] + "..."
	}
	return s
}

// PrintGenerationRequest summarizes the inputs before content generation
// starts: job description size and the companies being rewritten.
func (p *Printer) PrintGenerationRequest(profile *types.UserProfile, jobDescription string) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job description: %d characters\n", len(jobDescription)))
	sb.WriteString(fmt.Sprintf("Preview: %s\n", preview(jobDescription)))

	if len(profile.WorkExperience) > 0 {
		sb.WriteString("\nCompanies:\n")
		for _, exp := range profile.WorkExperience {
			sb.WriteString(fmt.Sprintf("  • %s\n", exp.Company))
		}
	}

	p.printBox("GENERATING RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeRecord outputs what the generator produced: headline, summary
// preview, and the synthesized title for each position.
func (p *Printer) PrintResumeRecord(record *types.ResumeRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:   %s\n", preview(record.PersonalInfo.Title)))
	sb.WriteString(fmt.Sprintf("Summary: %s\n", preview(record.ProfessionalSummary)))
	sb.WriteString(fmt.Sprintf("Skills:  %d\n", len(record.Skills)))

	if len(record.WorkExperience) > 0 {
		sb.WriteString("\nWork experience:\n")
		for i, exp := range record.WorkExperience {
			sb.WriteString(fmt.Sprintf("  %d. %s at %s\n", i+1, exp.Title, exp.Company))
		}
	}

	p.printBox("GENERATED CONTENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRenderResult outputs where the rendered PDF landed.
func (p *Printer) PrintRenderResult(styleName, path string) {
	content := fmt.Sprintf("Style: %s\nFile:  %s", styleName, path)
	p.printBox("PDF CREATED", content)
}

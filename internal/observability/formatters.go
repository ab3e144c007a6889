// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-pipeline/internal/types"
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
		// Truncate long lines, slicing by runes so multi-byte content
		// is never split mid-character
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSelection summarizes the filter stage: how many experiences and
// projects survived and which ones.
func (p *Printer) PrintSelection(resume *types.Resume, totalExperiences, totalProjects int) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Experiences: %d -> %d\n", totalExperiences, len(resume.Experience)))
	for i, exp := range resume.Experience {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Experience)-maxItemsToShow))
			break
		}
		line := fmt.Sprintf("  • %s", exp.Company)
		if exp.Priority != types.PriorityUnset {
			line += fmt.Sprintf(" [%s]", exp.Priority)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString(fmt.Sprintf("Projects: %d -> %d\n", totalProjects, len(resume.Projects)))
	for i, proj := range resume.Projects {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Projects)-maxItemsToShow))
			break
		}
		line := fmt.Sprintf("  • %s", proj.Name)
		if proj.Priority != types.PriorityUnset {
			line += fmt.Sprintf(" [%s]", proj.Priority)
		}
		sb.WriteString(line + "\n")
	}

	p.printBox("Relevance Filter", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillFilter summarizes the per-category skill filtering
func (p *Printer) PrintSkillFilter(before, after *types.Skills) {
	if before == nil || after == nil {
		return
	}

	var sb strings.Builder
	for _, category := range types.SkillCategories {
		original, present := before.Category(category)
		if !present {
			continue
		}
		filtered, _ := after.Category(category)
		sb.WriteString(fmt.Sprintf("%s: %d -> %d\n", category, len(original), len(filtered)))
	}
	if sb.Len() == 0 {
		return
	}

	p.printBox("Skill Filter", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoverLetter outputs a preview of the synthesized draft
func (p *Printer) PrintCoverLetter(draft *types.CoverLetterDraft) {
	if draft == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:    %s\n", draft.CompanyName))
	sb.WriteString(fmt.Sprintf("Recipient:  %s\n", draft.RecipientName))
	sb.WriteString(fmt.Sprintf("Paragraphs: %d\n", len(draft.BodyParagraphs)+2))
	sb.WriteString(fmt.Sprintf("Intro: %s", truncate(draft.Intro, boxWidth-12)))

	p.printBox("Cover Letter", sb.String())
}

// PrintStageResult reports a completed pipeline stage and its artifact
func (p *Printer) PrintStageResult(stage, artifactPath string) {
	content := fmt.Sprintf("Completed: %s\nArtifact:  %s", stage, artifactPath)
	p.printBox("Stage Result", content)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

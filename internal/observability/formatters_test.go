package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-pipeline/internal/types"
)

func TestPrintSelection(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	resume := &types.Resume{
		Experience: []types.ExperienceEntry{
			{Company: "Acme", Priority: types.PriorityHigh},
			{Company: "Initech"},
		},
		Projects: []types.ProjectEntry{
			{Name: "Sidecar", Priority: types.PriorityMedium},
		},
	}

	p.PrintSelection(resume, 5, 3)
	output := buf.String()

	assert.Contains(t, output, "Relevance Filter")
	assert.Contains(t, output, "Experiences: 5 -> 2")
	assert.Contains(t, output, "Acme [high]")
	assert.Contains(t, output, "Initech")
	assert.Contains(t, output, "Projects: 3 -> 1")
	assert.Contains(t, output, "Sidecar [medium]")
}

func TestPrintSelection_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSelection(nil, 0, 0)

	assert.Empty(t, buf.String())
}

func TestPrintSelection_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	resume := &types.Resume{}
	for i := 0; i < 8; i++ {
		resume.Experience = append(resume.Experience, types.ExperienceEntry{Company: "Co"})
	}

	p.PrintSelection(resume, 8, 0)

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintSelection_MultiByteCompanyStaysValidUTF8(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	resume := &types.Resume{
		Experience: []types.ExperienceEntry{
			{Company: "Café " + strings.Repeat("é", boxWidth)},
		},
	}

	p.PrintSelection(resume, 1, 0)
	output := buf.String()

	assert.True(t, utf8.ValidString(output))
	assert.Contains(t, output, "...")
}

func TestTruncate_MultiByte(t *testing.T) {
	out := truncate(strings.Repeat("日", 20), 10)

	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, strings.Repeat("日", 7)+"...", out)
}

func TestPrintSkillFilter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	before := &types.Skills{
		Languages:    []string{"Go", "Python", "Rust"},
		Technologies: []string{"Docker"},
	}
	after := &types.Skills{
		Languages:    []string{"Go"},
		Technologies: []string{"Docker"},
	}

	p.PrintSkillFilter(before, after)
	output := buf.String()

	assert.Contains(t, output, "Skill Filter")
	assert.Contains(t, output, "languages: 3 -> 1")
	assert.Contains(t, output, "technologies: 1 -> 1")
	assert.NotContains(t, output, "concepts", "absent categories are not reported")
}

func TestPrintSkillFilter_NoCategories(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkillFilter(&types.Skills{}, &types.Skills{})

	assert.Empty(t, buf.String())
}

func TestPrintCoverLetter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	draft := &types.CoverLetterDraft{
		Intro:          "I am writing to express my interest.",
		BodyParagraphs: []string{"Body one.", "Body two."},
		Closing:        "Thanks.",
		CompanyName:    "Acme Corp",
		RecipientName:  "Hiring Manager",
	}

	p.PrintCoverLetter(draft)
	output := buf.String()

	assert.Contains(t, output, "Cover Letter")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Paragraphs: 4")
}

func TestPrintStageResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStageResult("filter", "out/job_step1_filtered_20260829_120000.json")
	output := buf.String()

	assert.Contains(t, output, "Stage Result")
	assert.Contains(t, output, "filter")
}

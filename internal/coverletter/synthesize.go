// Package coverletter synthesizes a structured cover letter draft from an
// optimized resume and a job description. The draft is all-or-nothing: a
// service response missing any mandatory field is replaced entirely by a
// fixed fallback, never patched field by field.
package coverletter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/prompts"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// Excerpt bounds for the resume summary sent to the service. The summary is
// context, not content; it stays deliberately small.
const (
	maxSummaryExperiences   = 2
	maxSummaryProjects      = 2
	maxBulletsPerExperience = 2
	maxBulletsPerProject    = 1
	maxFallbackSkills       = 3
	defaultRecipient        = "Hiring Manager"
)

// Synthesizer produces cover letter drafts through the external generation
// service. Like the other service consumers it is total: every failure path
// yields a complete fallback draft rather than an error.
type Synthesizer struct {
	client   llm.Client
	warnings io.Writer
}

// NewSynthesizer creates a Synthesizer around a constructed LLM client
func NewSynthesizer(client llm.Client) *Synthesizer {
	return &Synthesizer{client: client, warnings: os.Stderr}
}

// WithWarnings redirects fallback warnings away from stderr
func (s *Synthesizer) WithWarnings(w io.Writer) *Synthesizer {
	s.warnings = w
	return s
}

// Synthesize generates a cover letter draft for the resume and job
// description. companyName may be empty; the service is then asked to
// extract it from the posting. The returned draft always has all five
// fields populated.
func (s *Synthesizer) Synthesize(ctx context.Context, resume *types.Resume, jobDescription, companyName string) types.CoverLetterDraft {
	summary := BuildResumeSummary(resume)

	template := prompts.MustGet("coverletter.json", "cover-letter")
	prompt := prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"ResumeSummary":  summary,
	})

	response, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		s.warnf("cover letter generation unavailable: %v", err)
		return GenericFallback(companyName)
	}

	var draft types.CoverLetterDraft
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(response)), &draft); err != nil {
		s.warnf("could not parse cover letter response: %v", err)
		return ResumeFallback(resume, companyName)
	}

	if missing := draft.MissingFields(); len(missing) > 0 {
		s.warnf("cover letter response missing fields %v, using fallback", missing)
		return ResumeFallback(resume, companyName)
	}

	return draft
}

// BuildResumeSummary renders the bounded excerpt of the resume used as
// prompt context: name, top experiences with a couple of bullets each, and
// top projects with one bullet each.
func BuildResumeSummary(resume *types.Resume) string {
	var sb strings.Builder

	name := "Unknown"
	if resume.PersonalInfo != nil && resume.PersonalInfo.Name != "" {
		name = resume.PersonalInfo.Name
	}
	fmt.Fprintf(&sb, "Name: %s\n", name)

	if len(resume.Experience) > 0 {
		sb.WriteString("\nKey Experiences:\n")
		for _, exp := range capExperiences(resume.Experience) {
			fmt.Fprintf(&sb, "- %s at %s\n", valueOr(exp.Role, "Unknown"), valueOr(exp.Company, "Unknown"))
			for _, bullet := range capStrings(exp.Bullets, maxBulletsPerExperience) {
				fmt.Fprintf(&sb, "  • %s\n", bullet)
			}
		}
	}

	if len(resume.Projects) > 0 {
		sb.WriteString("\nKey Projects:\n")
		for _, proj := range capProjects(resume.Projects) {
			fmt.Fprintf(&sb, "- %s\n", valueOr(proj.Name, "Unknown"))
			for _, bullet := range capStrings(proj.Bullets, maxBulletsPerProject) {
				fmt.Fprintf(&sb, "  • %s\n", bullet)
			}
		}
	}

	return sb.String()
}

// ResumeFallback is the fixed three-paragraph draft grounded in whatever
// the resume offers: the first few technology skills and the most recent
// role. Used when the service responded but the draft was unusable.
func ResumeFallback(resume *types.Resume, companyName string) types.CoverLetterDraft {
	background := "software development"
	if resume.Skills != nil && len(resume.Skills.Technologies) > 0 {
		background = strings.Join(capStrings(resume.Skills.Technologies, maxFallbackSkills), ", ")
	}

	role := "Software Engineer"
	if len(resume.Experience) > 0 && resume.Experience[0].Role != "" {
		role = resume.Experience[0].Role
	}

	return types.CoverLetterDraft{
		Intro: "I am writing to express my strong interest in the position described in your job posting.",
		BodyParagraphs: []string{
			fmt.Sprintf("With my background in %s, I am confident I would be a valuable addition to your team.", background),
			fmt.Sprintf("In my recent role as %s, I have developed skills that directly align with your requirements.", role),
		},
		Closing:       "I would welcome the opportunity to discuss how my experience and enthusiasm can contribute to your team's success.",
		CompanyName:   valueOr(companyName, defaultRecipient),
		RecipientName: defaultRecipient,
	}
}

// GenericFallback is the fixed draft used when the service could not be
// reached at all and no resume-derived detail is worth inlining.
func GenericFallback(companyName string) types.CoverLetterDraft {
	return types.CoverLetterDraft{
		Intro: "I am writing to express my interest in the position at your company.",
		BodyParagraphs: []string{
			"My experience and skills align well with the requirements outlined in your job description.",
			"I am excited about the opportunity to contribute to your team and would welcome the chance to discuss my qualifications further.",
		},
		Closing:       "Thank you for considering my application. I look forward to hearing from you.",
		CompanyName:   valueOr(companyName, defaultRecipient),
		RecipientName: defaultRecipient,
	}
}

// DryRunDraft is the deterministic draft produced when external calls are
// disabled. It reuses the resume-grounded fallback.
func DryRunDraft(resume *types.Resume, companyName string) types.CoverLetterDraft {
	return ResumeFallback(resume, companyName)
}

func (s *Synthesizer) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.warnings, "Warning: "+format+"\n", args...)
}

func capExperiences(entries []types.ExperienceEntry) []types.ExperienceEntry {
	if len(entries) > maxSummaryExperiences {
		return entries[:maxSummaryExperiences]
	}
	return entries
}

func capProjects(entries []types.ProjectEntry) []types.ProjectEntry {
	if len(entries) > maxSummaryProjects {
		return entries[:maxSummaryProjects]
	}
	return entries
}

func capStrings(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

package ranking

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/prompts"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// defaultCallDelay paces consecutive service calls to respect external rate
// limits. It is not a correctness mechanism.
const defaultCallDelay = 300 * time.Millisecond

// Adapter implements the selection Ranker contract on top of the external
// text-generation service. Every failure mode (network error, open circuit
// breaker, malformed reply) degrades to the deterministic original-order
// truncation; the adapter itself never fails.
type Adapter struct {
	client   llm.Client
	delay    time.Duration
	warnings io.Writer
}

// NewAdapter creates a ranking adapter around a constructed LLM client
func NewAdapter(client llm.Client) *Adapter {
	return &Adapter{
		client:   client,
		delay:    defaultCallDelay,
		warnings: os.Stderr,
	}
}

// WithDelay overrides the inter-call pacing delay. Tests pass zero.
func (a *Adapter) WithDelay(delay time.Duration) *Adapter {
	a.delay = delay
	return a
}

// WithWarnings redirects fallback warnings away from stderr
func (a *Adapter) WithWarnings(w io.Writer) *Adapter {
	a.warnings = w
	return a
}

// RankExperiences ranks an experience pool, returning exactly slots entries
func (a *Adapter) RankExperiences(ctx context.Context, pool []types.ExperienceEntry, jobDescription string, slots int) []types.ExperienceEntry {
	prompt := buildExperiencePrompt(pool, jobDescription, slots)

	indices, err := a.requestIndices(ctx, prompt)
	if err != nil {
		a.warnf("experience ranking unavailable, keeping input order: %v", err)
		return Truncate(pool, slots)
	}

	return SelectByIndices(pool, indices, slots)
}

// RankProjects ranks a project pool, returning exactly slots entries
func (a *Adapter) RankProjects(ctx context.Context, pool []types.ProjectEntry, jobDescription string, slots int) []types.ProjectEntry {
	prompt := buildProjectPrompt(pool, jobDescription, slots)

	indices, err := a.requestIndices(ctx, prompt)
	if err != nil {
		a.warnf("project ranking unavailable, keeping input order: %v", err)
		return Truncate(pool, slots)
	}

	return SelectByIndices(pool, indices, slots)
}

// RankSkills ranks a skill category, returning exactly slots verbatim
// members of the original list
func (a *Adapter) RankSkills(ctx context.Context, category string, pool []string, jobDescription string, slots int) []string {
	template := prompts.MustGet("ranking.json", "filter-skills")
	prompt := prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"Category":       titleCase(category),
		"CategoryLower":  category,
		"Skills":         strings.Join(pool, ", "),
		"Slots":          strconv.Itoa(slots),
	})

	response, err := a.generate(ctx, prompt)
	if err != nil {
		a.warnf("skill ranking for %s unavailable, keeping input order: %v", category, err)
		return Truncate(pool, slots)
	}

	returned, err := ParseSkillList(response)
	if err != nil {
		a.warnf("skill ranking for %s returned malformed response, keeping input order: %v", category, err)
		return Truncate(pool, slots)
	}

	return SelectSkills(pool, returned, slots)
}

// requestIndices sends a ranking prompt and parses the index list reply
func (a *Adapter) requestIndices(ctx context.Context, prompt string) ([]int, error) {
	response, err := a.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseIndexList(response)
}

// generate performs one paced service call
func (a *Adapter) generate(ctx context.Context, prompt string) (string, error) {
	response, err := a.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	return response, err
}

func (a *Adapter) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.warnings, "Warning: "+format+"\n", args...)
}

// buildExperiencePrompt enumerates the pool 1-based with the fields the
// ranking service needs to judge relevance
func buildExperiencePrompt(pool []types.ExperienceEntry, jobDescription string, slots int) string {
	summaries := make([]string, 0, len(pool))
	for i, exp := range pool {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Experience %d:\n", i+1))
		sb.WriteString(fmt.Sprintf("Company: %s\n", valueOr(exp.Company, "Unknown")))
		sb.WriteString(fmt.Sprintf("Role: %s\n", valueOr(exp.Role, "Unknown")))
		sb.WriteString(fmt.Sprintf("Duration: %s - %s [Priority: %s]\n", exp.StartDate, exp.EndDate, priorityLabel(exp.Priority)))
		sb.WriteString("Key achievements:\n")
		for _, bullet := range exp.Bullets {
			sb.WriteString(fmt.Sprintf("• %s\n", bullet))
		}
		summaries = append(summaries, sb.String())
	}

	template := prompts.MustGet("ranking.json", "rank-experiences")
	return prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"Slots":          strconv.Itoa(slots),
		"Summaries":      strings.Join(summaries, "\n"),
	})
}

// buildProjectPrompt enumerates the pool 1-based with name, tech and bullets
func buildProjectPrompt(pool []types.ProjectEntry, jobDescription string, slots int) string {
	summaries := make([]string, 0, len(pool))
	for i, proj := range pool {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Project %d:\n", i+1))
		sb.WriteString(fmt.Sprintf("Name: %s\n", valueOr(proj.Name, "Unknown")))
		sb.WriteString(fmt.Sprintf("Technologies: %s [Priority: %s]\n", strings.Join(proj.Tech, ", "), priorityLabel(proj.Priority)))
		sb.WriteString("Description:\n")
		for _, bullet := range proj.Bullets {
			sb.WriteString(fmt.Sprintf("• %s\n", bullet))
		}
		summaries = append(summaries, sb.String())
	}

	template := prompts.MustGet("ranking.json", "rank-projects")
	return prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"Slots":          strconv.Itoa(slots),
		"Summaries":      strings.Join(summaries, "\n"),
	})
}

func priorityLabel(p types.Priority) string {
	if p == types.PriorityUnset {
		return "unset"
	}
	return string(p)
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Package optimizing rewrites bullet lists to align with a job description
// under a strict shape-preservation invariant: optimization never changes
// the number of bullets. Any response that does is discarded wholesale.
package optimizing

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/prompts"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// Soft character-length targets for optimized bullets. The service is asked
// to stay under these; they are instructions, not validated constraints.
const (
	conciseLengthTarget  = 80
	standardLengthTarget = 120
)

// defaultEntryDelay paces consecutive optimization calls to respect external
// rate limits.
const defaultEntryDelay = 500 * time.Millisecond

// Optimizer rewrites bullet lists through the external generation service.
// It is total: every failure path returns the original bullets unchanged.
type Optimizer struct {
	client   llm.Client
	delay    time.Duration
	warnings io.Writer
	progress io.Writer
}

// NewOptimizer creates an Optimizer around a constructed LLM client
func NewOptimizer(client llm.Client) *Optimizer {
	return &Optimizer{
		client:   client,
		delay:    defaultEntryDelay,
		warnings: os.Stderr,
		progress: io.Discard,
	}
}

// WithDelay overrides the inter-call pacing delay. Tests pass zero.
func (o *Optimizer) WithDelay(delay time.Duration) *Optimizer {
	o.delay = delay
	return o
}

// WithWarnings redirects shape-violation warnings away from stderr
func (o *Optimizer) WithWarnings(w io.Writer) *Optimizer {
	o.warnings = w
	return o
}

// WithProgress enables per-entry progress output
func (o *Optimizer) WithProgress(w io.Writer) *Optimizer {
	o.progress = w
	return o
}

// OptimizeBullets asks the service for a shape-preserving paraphrase of the
// bullet list. The returned list always has exactly len(bullets) entries:
// the optimized ones when the response parses cleanly with a matching count,
// the originals otherwise. Partial acceptance is never performed.
func (o *Optimizer) OptimizeBullets(ctx context.Context, bullets []string, jobDescription, entryContext string, concise bool, priority types.Priority) []string {
	if len(bullets) == 0 {
		return bullets
	}

	prompt := buildOptimizePrompt(bullets, jobDescription, entryContext, concise, priority)

	response, err := o.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		o.warnf("bullet optimization unavailable, keeping originals: %v", err)
		return bullets
	}

	optimized := parseBulletLines(response)
	if len(optimized) != len(bullets) {
		o.warnf("service returned %d bullets instead of %d, keeping originals", len(optimized), len(bullets))
		return bullets
	}

	return optimized
}

// OptimizeExperience returns a copy of the entry with optimized bullets.
// The input entry is never mutated.
func (o *Optimizer) OptimizeExperience(ctx context.Context, exp types.ExperienceEntry, jobDescription string, concise bool) types.ExperienceEntry {
	optimized := exp
	if len(exp.Bullets) == 0 {
		return optimized
	}

	entryContext := fmt.Sprintf("Experience at %s as %s", valueOr(exp.Company, "Unknown"), valueOr(exp.Role, "Unknown"))
	optimized.Bullets = o.OptimizeBullets(ctx, exp.Bullets, jobDescription, entryContext, concise, exp.Priority)
	return optimized
}

// OptimizeProject returns a copy of the entry with optimized bullets.
// The input entry is never mutated.
func (o *Optimizer) OptimizeProject(ctx context.Context, proj types.ProjectEntry, jobDescription string, concise bool) types.ProjectEntry {
	optimized := proj
	if len(proj.Bullets) == 0 {
		return optimized
	}

	entryContext := fmt.Sprintf("Project: %s using %s", valueOr(proj.Name, "Unknown"), strings.Join(proj.Tech, ", "))
	optimized.Bullets = o.OptimizeBullets(ctx, proj.Bullets, jobDescription, entryContext, concise, proj.Priority)
	return optimized
}

// OptimizeResume optimizes every experience and project entry, returning a
// new document. Personal info, education and skills pass through untouched;
// they carry no free text worth rewriting.
func (o *Optimizer) OptimizeResume(ctx context.Context, resume *types.Resume, jobDescription string, concise bool) *types.Resume {
	optimized := *resume

	if len(resume.Experience) > 0 {
		entries := make([]types.ExperienceEntry, 0, len(resume.Experience))
		for i, exp := range resume.Experience {
			o.progressf("  Optimizing experience %d/%d: %s\n", i+1, len(resume.Experience), valueOr(exp.Company, "Unknown"))
			entries = append(entries, o.OptimizeExperience(ctx, exp, jobDescription, concise))
			o.pause()
		}
		optimized.Experience = entries
	}

	if len(resume.Projects) > 0 {
		entries := make([]types.ProjectEntry, 0, len(resume.Projects))
		for i, proj := range resume.Projects {
			o.progressf("  Optimizing project %d/%d: %s\n", i+1, len(resume.Projects), valueOr(proj.Name, "Unknown"))
			entries = append(entries, o.OptimizeProject(ctx, proj, jobDescription, concise))
			o.pause()
		}
		optimized.Projects = entries
	}

	return &optimized
}

func (o *Optimizer) pause() {
	if o.delay > 0 {
		time.Sleep(o.delay)
	}
}

func (o *Optimizer) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.warnings, "Warning: "+format+"\n", args...)
}

func (o *Optimizer) progressf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.progress, format, args...)
}

// buildOptimizePrompt assembles the shape-preserving paraphrase prompt
func buildOptimizePrompt(bullets []string, jobDescription, entryContext string, concise bool, priority types.Priority) string {
	var bulletLines strings.Builder
	for _, bullet := range bullets {
		bulletLines.WriteString("• ")
		bulletLines.WriteString(bullet)
		bulletLines.WriteString("\n")
	}

	priorityNote := ""
	switch priority {
	case types.PriorityHigh:
		priorityNote = prompts.MustGet("optimizing.json", "priority-note-high")
	case types.PriorityMedium:
		priorityNote = prompts.MustGet("optimizing.json", "priority-note-medium")
	case types.PriorityLow:
		priorityNote = prompts.MustGet("optimizing.json", "priority-note-low")
	}

	lengthTarget := standardLengthTarget
	conciseNote := ""
	if concise {
		lengthTarget = conciseLengthTarget
		conciseNote = prompts.MustGet("optimizing.json", "concise-note")
	}

	template := prompts.MustGet("optimizing.json", "optimize-bullets")
	return prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"Context":        entryContext,
		"PriorityNote":   priorityNote,
		"Bullets":        strings.TrimSuffix(bulletLines.String(), "\n"),
		"LengthTarget":   fmt.Sprintf("%d", lengthTarget),
		"ConciseNote":    conciseNote,
	})
}

// parseBulletLines extracts bullet text from a service response, keeping
// only lines that begin with a recognized bullet marker.
func parseBulletLines(response string) []string {
	var bullets []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var text string
		switch {
		case strings.HasPrefix(line, "•"):
			text = strings.TrimPrefix(line, "•")
		case strings.HasPrefix(line, "-"):
			text = strings.TrimPrefix(line, "-")
		case strings.HasPrefix(line, "*"):
			text = strings.TrimPrefix(line, "*")
		default:
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			bullets = append(bullets, text)
		}
	}
	return bullets
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

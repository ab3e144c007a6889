// Package pipeline provides the high-level orchestration for the resume
// generation process: relevance filtering, bullet optimization, PDF
// rendering, and optional cover letter generation. Stages run strictly in
// order and the pipeline halts on the first failure.
package pipeline

import (
	"fmt"
	"strconv"
	"strings"
)

// Stage identifies one pipeline stage. Values are the user-facing 1-based
// step numbers.
type Stage int

// Pipeline stages in execution order
const (
	StageFilter Stage = iota + 1
	StageOptimize
	StageRender
	StageCoverLetter
)

func (s Stage) String() string {
	switch s {
	case StageFilter:
		return "filter"
	case StageOptimize:
		return "optimize"
	case StageRender:
		return "render"
	case StageCoverLetter:
		return "cover-letter"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Title returns the banner heading for a stage
func (s Stage) Title() string {
	switch s {
	case StageFilter:
		return "Step 1: Relevance Filtering"
	case StageOptimize:
		return "Step 2: Bullet Optimization"
	case StageRender:
		return "Step 3: PDF Generation"
	case StageCoverLetter:
		return "Step 4: Cover Letter Generation"
	default:
		return s.String()
	}
}

// ParseStageRange parses a stage selector: "all", a single step number, or
// an inclusive range like "2-3". "all" covers steps 1-3; the cover letter
// stage joins only when explicitly selected or requested via the
// generate-cover-letter option.
func ParseStageRange(spec string, generateCoverLetter bool) (from, to Stage, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "all" {
		if generateCoverLetter {
			return StageFilter, StageCoverLetter, nil
		}
		return StageFilter, StageRender, nil
	}

	parts := strings.SplitN(spec, "-", 2)
	from, err = parseStage(parts[0])
	if err != nil {
		return 0, 0, err
	}
	to = from
	if len(parts) == 2 {
		to, err = parseStage(parts[1])
		if err != nil {
			return 0, 0, err
		}
	}
	if to < from {
		return 0, 0, fmt.Errorf("invalid step range %q: end before start", spec)
	}
	return from, to, nil
}

func parseStage(s string) (Stage, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid step %q: expected a number 1-4", s)
	}
	if n < int(StageFilter) || n > int(StageCoverLetter) {
		return 0, fmt.Errorf("invalid step %d: expected 1-4", n)
	}
	return Stage(n), nil
}

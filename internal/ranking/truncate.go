package ranking

import (
	"context"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// TruncateRanker is the dry-run Ranker: it never touches the external
// service and always returns the deterministic original-order truncation.
// Two runs with identical inputs produce byte-identical selection output.
type TruncateRanker struct{}

// RankExperiences returns the first slots pool entries in input order
func (TruncateRanker) RankExperiences(_ context.Context, pool []types.ExperienceEntry, _ string, slots int) []types.ExperienceEntry {
	return Truncate(pool, slots)
}

// RankProjects returns the first slots pool entries in input order
func (TruncateRanker) RankProjects(_ context.Context, pool []types.ProjectEntry, _ string, slots int) []types.ProjectEntry {
	return Truncate(pool, slots)
}

// RankSkills returns the first slots category members in input order
func (TruncateRanker) RankSkills(_ context.Context, _ string, pool []string, _ string, slots int) []string {
	return Truncate(pool, slots)
}

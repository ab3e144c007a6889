package selection

import (
	"context"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// FilterSkills applies the select/rank/fallback pattern independently to each
// skill category. Categories absent from the source (or not list-typed, which
// the Skills decoder already collapsed to absent) are skipped: the filtered
// result carries no entry for them. There is no priority concept for skills;
// every member of a category is an equal ranking candidate.
func FilterSkills(ctx context.Context, skills *types.Skills, jobDescription string, maxPerCategory int, ranker Ranker) *types.Skills {
	filtered := &types.Skills{}
	if skills == nil {
		return filtered
	}
	if maxPerCategory < 0 {
		maxPerCategory = 0
	}

	for _, category := range types.SkillCategories {
		list, present := skills.Category(category)
		if !present {
			continue
		}

		// No need to rank when the whole category fits the budget
		if len(list) <= maxPerCategory {
			filtered.SetCategory(category, list)
			continue
		}

		selected := ranker.RankSkills(ctx, category, list, jobDescription, maxPerCategory)
		if len(selected) > maxPerCategory {
			selected = selected[:maxPerCategory]
		}
		filtered.SetCategory(category, selected)
	}

	return filtered
}

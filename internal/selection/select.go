package selection

import (
	"context"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// Ranker orders a ranking pool against a job description, returning exactly
// slots items (fewer only when the pool itself is smaller). Implementations
// must be total: a Ranker never fails, it degrades to a deterministic
// original-order truncation instead.
type Ranker interface {
	RankExperiences(ctx context.Context, pool []types.ExperienceEntry, jobDescription string, slots int) []types.ExperienceEntry
	RankProjects(ctx context.Context, pool []types.ProjectEntry, jobDescription string, slots int) []types.ProjectEntry
	RankSkills(ctx context.Context, category string, pool []string, jobDescription string, slots int) []string
}

// SelectExperiences applies priority-tiered selection to experience entries
func SelectExperiences(ctx context.Context, items []types.ExperienceEntry, maxCount int, jobDescription string, ranker Ranker) []types.ExperienceEntry {
	return selectTiered(items, maxCount, func(pool []types.ExperienceEntry, slots int) []types.ExperienceEntry {
		return ranker.RankExperiences(ctx, pool, jobDescription, slots)
	})
}

// SelectProjects applies priority-tiered selection to project entries
func SelectProjects(ctx context.Context, items []types.ProjectEntry, maxCount int, jobDescription string, ranker Ranker) []types.ProjectEntry {
	return selectTiered(items, maxCount, func(pool []types.ProjectEntry, slots int) []types.ProjectEntry {
		return ranker.RankProjects(ctx, pool, jobDescription, slots)
	})
}

// selectTiered is the shared selection core. The rank callback is invoked
// only when the pool genuinely overflows the remaining slots; callers rely
// on the small-corpus fast path making zero external calls.
func selectTiered[T Prioritized](items []T, maxCount int, rank func(pool []T, slots int) []T) []T {
	if maxCount < 0 {
		maxCount = 0
	}

	// Fast path: everything fits, return input unchanged
	if len(items) <= maxCount {
		return items
	}

	partition := PartitionByPriority(items)

	// Every high-priority item is kept. When high alone overflows the
	// budget, the result is the first maxCount high items in input order;
	// ranking is never applied across high items.
	kept := partition.High
	if len(kept) >= maxCount {
		return kept[:maxCount]
	}

	remainingSlots := maxCount - len(kept)
	pool := partition.Pool()

	if len(pool) == 0 {
		return kept
	}

	if len(pool) <= remainingSlots {
		return append(kept, pool...)
	}

	selected := append(kept, rank(pool, remainingSlots)...)
	if len(selected) > maxCount {
		selected = selected[:maxCount]
	}
	return selected
}

package selection

import (
	"context"
	"testing"

	"github.com/jonathan/resume-pipeline/internal/ranking"
	"github.com/jonathan/resume-pipeline/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSkills_SmallCategoriesKeptVerbatim(t *testing.T) {
	ranker := &countingRanker{inner: ranking.TruncateRanker{}}
	skills := &types.Skills{
		Languages:    []string{"Go", "Python"},
		Technologies: []string{"Docker"},
	}

	filtered := FilterSkills(context.Background(), skills, "job", 5, ranker)

	assert.Equal(t, []string{"Go", "Python"}, filtered.Languages)
	assert.Equal(t, []string{"Docker"}, filtered.Technologies)
	assert.Zero(t, ranker.calls)
}

func TestFilterSkills_AbsentCategorySkipped(t *testing.T) {
	skills := &types.Skills{Languages: []string{"Go"}}

	filtered := FilterSkills(context.Background(), skills, "job", 5, ranking.TruncateRanker{})

	assert.Equal(t, []string{"Go"}, filtered.Languages)
	assert.Nil(t, filtered.Technologies)
	assert.Nil(t, filtered.Concepts)
}

func TestFilterSkills_OverflowDelegatesToRanker(t *testing.T) {
	ranker := &countingRanker{inner: ranking.TruncateRanker{}}
	skills := &types.Skills{
		Concepts: []string{"Caching", "Sharding", "Consensus", "Replication"},
	}

	filtered := FilterSkills(context.Background(), skills, "job", 2, ranker)

	require.Len(t, filtered.Concepts, 2)
	assert.Equal(t, []string{"Caching", "Sharding"}, filtered.Concepts)
	assert.Equal(t, 1, ranker.calls)
}

func TestFilterSkills_EveryValueFromOriginalList(t *testing.T) {
	skills := &types.Skills{
		Languages:    []string{"Go", "Python", "Rust", "C"},
		Technologies: []string{"Docker", "Kubernetes", "Terraform"},
		Concepts:     []string{"CI/CD", "TDD"},
	}
	original := map[string]bool{}
	for _, category := range types.SkillCategories {
		list, _ := skills.Category(category)
		for _, skill := range list {
			original[skill] = true
		}
	}

	filtered := FilterSkills(context.Background(), skills, "job", 2, reverseRanker{})

	for _, category := range types.SkillCategories {
		list, _ := filtered.Category(category)
		for _, skill := range list {
			assert.True(t, original[skill], "filtered skill %q must come from the source list", skill)
		}
	}
}

func TestFilterSkills_NilSkills(t *testing.T) {
	filtered := FilterSkills(context.Background(), nil, "job", 3, ranking.TruncateRanker{})
	require.NotNil(t, filtered)
	assert.Nil(t, filtered.Languages)
}

func TestFilterSkills_ZeroBudget(t *testing.T) {
	skills := &types.Skills{Languages: []string{"Go"}}
	filtered := FilterSkills(context.Background(), skills, "job", 0, ranking.TruncateRanker{})
	assert.Empty(t, filtered.Languages)
	assert.NotNil(t, filtered.Languages, "present category stays present, just empty")
}

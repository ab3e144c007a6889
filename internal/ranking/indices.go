package ranking

import (
	"encoding/json"

	"github.com/jonathan/resume-pipeline/internal/llm"
)

// ParseIndexList parses a service response expected to contain only a JSON
// array of integers, stripping any markdown fencing first. The typed error
// lets callers branch structurally into the fallback path.
func ParseIndexList(response string) ([]int, error) {
	text := llm.CleanJSONBlock(response)

	var indices []int
	if err := json.Unmarshal([]byte(text), &indices); err != nil {
		return nil, &ResponseShapeError{Message: "expected a JSON array of integers", Cause: err}
	}
	return indices, nil
}

// ParseSkillList parses a service response expected to contain only a JSON
// array of skill name strings.
func ParseSkillList(response string) ([]string, error) {
	text := llm.CleanJSONBlock(response)

	var skills []string
	if err := json.Unmarshal([]byte(text), &skills); err != nil {
		return nil, &ResponseShapeError{Message: "expected a JSON array of strings", Cause: err}
	}
	return skills, nil
}

// SelectByIndices resolves a 1-based index list against the pool. Indices
// outside [1, len(pool)] and repeats are dropped. If fewer than slots valid
// items were recovered, pool items not already selected are appended in
// original pool order until the slot count is met or the pool is exhausted.
func SelectByIndices[T any](pool []T, indices []int, slots int) []T {
	if slots > len(pool) {
		slots = len(pool)
	}
	if slots <= 0 {
		return []T{}
	}

	selected := make([]T, 0, slots)
	used := make(map[int]bool, slots)

	for _, idx := range indices {
		if len(selected) >= slots {
			break
		}
		if idx < 1 || idx > len(pool) || used[idx] {
			continue
		}
		used[idx] = true
		selected = append(selected, pool[idx-1])
	}

	// Padding rule: fill remaining slots in original pool order
	for i := 1; i <= len(pool) && len(selected) < slots; i++ {
		if !used[i] {
			used[i] = true
			selected = append(selected, pool[i-1])
		}
	}

	return selected
}

// SelectSkills resolves a returned skill list against the original category
// list. Only verbatim members of the original list survive (no hallucinated
// skills); repeats are dropped; the padding rule applies identically.
func SelectSkills(pool []string, returned []string, slots int) []string {
	if slots > len(pool) {
		slots = len(pool)
	}
	if slots <= 0 {
		return []string{}
	}

	position := make(map[string]int, len(pool))
	for i, skill := range pool {
		if _, seen := position[skill]; !seen {
			position[skill] = i + 1
		}
	}

	indices := make([]int, 0, len(returned))
	for _, skill := range returned {
		if idx, ok := position[skill]; ok {
			indices = append(indices, idx)
		}
	}

	return SelectByIndices(pool, indices, slots)
}

// Truncate is the deterministic fallback: the first slots pool items in
// original order, unchanged.
func Truncate[T any](pool []T, slots int) []T {
	if slots < 0 {
		slots = 0
	}
	if slots > len(pool) {
		slots = len(pool)
	}
	return pool[:slots]
}

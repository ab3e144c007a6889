// Package selection implements priority-tiered selection of resume content
// against a slot budget. High-priority items are always kept; the remainder
// form a ranking pool delegated to a Ranker.
package selection

import "github.com/jonathan/resume-pipeline/internal/types"

// Prioritized is any resume item carrying a declared priority tier
type Prioritized interface {
	GetPriority() types.Priority
}

// Partition groups candidate items by their declared priority tier.
// It is derived fresh on each selection call, never stored.
type Partition[T Prioritized] struct {
	High   []T
	Medium []T
	Low    []T
	Unset  []T
}

// PartitionByPriority splits items into priority tiers, preserving input
// order within each tier. Items without a priority field land in Unset.
func PartitionByPriority[T Prioritized](items []T) Partition[T] {
	var p Partition[T]
	for _, item := range items {
		switch item.GetPriority() {
		case types.PriorityHigh:
			p.High = append(p.High, item)
		case types.PriorityMedium:
			p.Medium = append(p.Medium, item)
		case types.PriorityLow:
			p.Low = append(p.Low, item)
		default:
			p.Unset = append(p.Unset, item)
		}
	}
	return p
}

// Pool returns the rankable candidates: medium, then low, then unset,
// concatenated in that order. High items never enter the pool.
func (p Partition[T]) Pool() []T {
	pool := make([]T, 0, len(p.Medium)+len(p.Low)+len(p.Unset))
	pool = append(pool, p.Medium...)
	pool = append(pool, p.Low...)
	pool = append(pool, p.Unset...)
	return pool
}

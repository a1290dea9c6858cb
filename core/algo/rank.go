package algo

import (
	"slices"

	"github.com/huangsam/readiness/schema"
)

// Finding thresholds and list size.
const (
	StrengthThreshold = 75.0
	GapThreshold      = 40.0
	FindingsLimit     = 5
)

// RankDomains sorts domain scores by descending score.
// Ties keep their catalog order so output stays deterministic.
func RankDomains(domains []schema.DomainScore) []schema.DomainScore {
	ranked := slices.Clone(domains)
	slices.SortStableFunc(ranked, func(a, b schema.DomainScore) int {
		return compareDesc(a.Score, b.Score)
	})
	return ranked
}

// SelectStrengths returns up to 'limit' controls scoring at least StrengthThreshold,
// highest first.
func SelectStrengths(controls []schema.ControlScore, limit int) []schema.ControlScore {
	var picked []schema.ControlScore
	for _, cs := range controls {
		if cs.Score >= StrengthThreshold {
			picked = append(picked, cs)
		}
	}
	slices.SortStableFunc(picked, func(a, b schema.ControlScore) int {
		return compareDesc(a.Score, b.Score)
	})
	return truncate(picked, limit)
}

// SelectGaps returns up to 'limit' controls scoring at most GapThreshold,
// lowest first.
func SelectGaps(controls []schema.ControlScore, limit int) []schema.ControlScore {
	var picked []schema.ControlScore
	for _, cs := range controls {
		if cs.Score <= GapThreshold {
			picked = append(picked, cs)
		}
	}
	slices.SortStableFunc(picked, func(a, b schema.ControlScore) int {
		return compareDesc(b.Score, a.Score)
	})
	return truncate(picked, limit)
}

func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func truncate[T any](items []T, limit int) []T {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

package query

import (
	"slices"
	"strings"

	"github.com/vastriantafyllou/goal-tracker/domain"
)

// Category filter and sort names.
const (
	FilterGoalCount = "goals"

	WithGoals = "WithGoals"
	Empty     = "Empty"

	SortName      = "name"
	SortGoalCount = "goalCount"
)

// Categories filters and sorts categories. An absent goal count counts as zero.
func Categories(items []domain.Category, q Query) []domain.Category {
	m := newMatcher(q.Search)
	bucket := q.Filter(FilterGoalCount)

	out := make([]domain.Category, 0, len(items))
	for _, c := range items {
		if !m.match(c.Name) {
			continue
		}
		if enabled(bucket) && !matchGoalCount(c, bucket) {
			continue
		}
		out = append(out, c)
	}

	dir := q.Direction
	switch q.SortKey {
	case SortName:
		slices.SortStableFunc(out, func(a, b domain.Category) int {
			return dir.apply(strings.Compare(a.Name, b.Name))
		})
	case SortGoalCount:
		slices.SortStableFunc(out, func(a, b domain.Category) int {
			return compareOrdered(a.Goals(), b.Goals(), dir)
		})
	}
	return out
}

func matchGoalCount(c domain.Category, bucket string) bool {
	switch bucket {
	case WithGoals:
		return c.Goals() > 0
	case Empty:
		return c.Goals() == 0
	}
	return false
}

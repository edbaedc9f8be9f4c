package query

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/vastriantafyllou/goal-tracker/domain"
)

// Goal filter names and values.
const (
	FilterStatus   = "status"
	FilterCategory = "category"
	FilterDue      = "due"

	NoCategory = "None"

	DueOverdue  = "Overdue"
	DueToday    = "Today"
	DueThisWeek = "ThisWeek"
)

// Goal sort keys.
const (
	SortDueDate  = "dueDate"
	SortCategory = "category"
	SortStatus   = "status"
	SortCreated  = "created"
)

// DefaultGoalSort is the initial goal ordering.
const DefaultGoalSort = SortDueDate + "-" + string(Asc)

// Goals filters and sorts goals. now fixes "today" and its location.
func Goals(items []domain.Goal, q Query, now time.Time) []domain.Goal {
	m := newMatcher(q.Search)
	status := q.Filter(FilterStatus)
	category := normaliseCategory(q.Filter(FilterCategory))
	due := normaliseDue(q.Filter(FilterDue))

	out := make([]domain.Goal, 0, len(items))
	for _, g := range items {
		if !m.match(g.Title) {
			continue
		}
		if enabled(status) && string(g.Status) != status {
			continue
		}
		if enabled(category) && !matchCategory(g, category) {
			continue
		}
		if enabled(due) && !matchDue(g, due, now) {
			continue
		}
		out = append(out, g)
	}

	sortGoals(out, q.SortKey, q.Direction)
	return out
}

func matchCategory(g domain.Goal, category string) bool {
	if category == NoCategory {
		return !g.HasCategory()
	}
	if g.CategoryID != nil && strconv.FormatInt(*g.CategoryID, 10) == category {
		return true
	}
	return g.Category() != "" && g.Category() == category
}

// matchDue compares calendar days in the location of now. Goals without a due
// date never fall in a bucket.
func matchDue(g domain.Goal, bucket string, now time.Time) bool {
	dueAt, ok := g.Due()
	if !ok {
		return false
	}
	loc := now.Location()
	today := domain.StartOfDay(now, loc)
	day := domain.StartOfDay(dueAt, loc)

	switch bucket {
	case DueOverdue:
		return day.Before(today) && !g.IsCompleted()
	case DueToday:
		return day.Equal(today)
	case DueThisWeek:
		return !day.Before(today) && !day.After(today.AddDate(0, 0, 7))
	}
	return false
}

func sortGoals(goals []domain.Goal, key string, dir Direction) {
	var compare func(a, b domain.Goal) int
	switch key {
	case SortDueDate:
		compare = func(a, b domain.Goal) int {
			at, aok := a.Due()
			bt, bok := b.Due()
			return compareOptional(at, aok, bt, bok, dir, time.Time.Compare)
		}
	case SortCategory:
		compare = func(a, b domain.Goal) int {
			an, bn := a.Category(), b.Category()
			return compareOptional(an, an != "", bn, bn != "", dir, strings.Compare)
		}
	case SortStatus:
		compare = func(a, b domain.Goal) int {
			return compareOrdered(a.Status, b.Status, dir)
		}
	case SortCreated:
		compare = func(a, b domain.Goal) int {
			return dir.apply(a.CreatedDate.Compare(b.CreatedDate.Time))
		}
	default:
		return
	}
	slices.SortStableFunc(goals, compare)
}

// "No Category" is accepted as an alias of None.
func normaliseCategory(value string) string {
	if strings.EqualFold(value, "No Category") || strings.EqualFold(value, NoCategory) {
		return NoCategory
	}
	return value
}

func normaliseDue(value string) string {
	if strings.EqualFold(strings.ReplaceAll(value, " ", ""), DueThisWeek) {
		return DueThisWeek
	}
	return value
}

// GoalStats are summary counters over the full, unfiltered goal list.
type GoalStats struct {
	Total    int                       `json:"total"`
	ByStatus map[domain.GoalStatus]int `json:"by_status"`
	Overdue  int                       `json:"overdue"`
}

// Count returns the number of goals in status.
func (s GoalStats) Count(status domain.GoalStatus) int {
	return s.ByStatus[status]
}

// Stats computes GoalStats independently of any query.
func Stats(goals []domain.Goal, now time.Time) GoalStats {
	stats := GoalStats{
		Total:    len(goals),
		ByStatus: make(map[domain.GoalStatus]int, len(domain.GoalStatuses)),
	}
	for _, s := range domain.GoalStatuses {
		stats.ByStatus[s] = 0
	}
	for _, g := range goals {
		stats.ByStatus[g.Status]++
		if g.IsOverdue(now) {
			stats.Overdue++
		}
	}
	return stats
}

// GoalCategoryNames returns the distinct category names used by goals, sorted.
func GoalCategoryNames(goals []domain.Goal) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, g := range goals {
		name := g.Category()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

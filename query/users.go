package query

import "github.com/vastriantafyllou/goal-tracker/domain"

// FilterRole selects users by role.
const FilterRole = "role"

// Users filters a page of users. Users are not sortable; page order is kept.
func Users(items []domain.User, q Query) []domain.User {
	m := newMatcher(q.Search)
	role := q.Filter(FilterRole)

	out := make([]domain.User, 0, len(items))
	for _, u := range items {
		if !m.match(u.Username) {
			continue
		}
		if enabled(role) && string(u.Role) != role {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Package query derives filtered and sorted view collections from raw lists.
// Every function is pure: inputs are never mutated and the same input always
// produces the same output.
package query

import (
	"cmp"
	"strings"

	"golang.org/x/text/cases"
)

// All disables a filter.
const All = "All"

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query holds the view parameters of a list.
type Query struct {
	Search    string
	Filters   map[string]string
	SortKey   string
	Direction Direction
}

// Filter returns the value of a named filter, or All when unset.
func (q Query) Filter(name string) string {
	value := strings.TrimSpace(q.Filters[name])
	if value == "" {
		return All
	}
	return value
}

// WithFilter returns a copy of q with one filter set.
func (q Query) WithFilter(name, value string) Query {
	filters := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters[name] = value
	q.Filters = filters
	return q
}

// WithSort returns a copy of q sorted by a "field-dir" value such as "dueDate-asc".
func (q Query) WithSort(value string) Query {
	q.SortKey, q.Direction = ParseSort(value)
	return q
}

// ParseSort splits "field-dir". A missing or unknown direction means ascending.
func ParseSort(value string) (string, Direction) {
	key, dir, _ := strings.Cut(strings.TrimSpace(value), "-")
	if Direction(strings.ToLower(dir)) == Desc {
		return key, Desc
	}
	return key, Asc
}

func (d Direction) apply(c int) int {
	if d == Desc {
		return -c
	}
	return c
}

// compareOptional orders present values by dir and puts absent values last in
// both directions.
func compareOptional[T any](a T, aok bool, b T, bok bool, dir Direction, compare func(T, T) int) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	return dir.apply(compare(a, b))
}

func compareOrdered[T cmp.Ordered](a, b T, dir Direction) int {
	return dir.apply(cmp.Compare(a, b))
}

// matcher does case-insensitive substring search.
type matcher struct {
	needle string
	caser  cases.Caser
}

func newMatcher(search string) *matcher {
	search = strings.TrimSpace(search)
	if search == "" {
		return &matcher{}
	}
	caser := cases.Fold()
	return &matcher{needle: caser.String(search), caser: caser}
}

func (m *matcher) match(field string) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(m.caser.String(field), m.needle)
}

func enabled(value string) bool {
	return !strings.EqualFold(value, All)
}

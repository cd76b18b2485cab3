package window

import (
	"slices"
	"strings"
)

// Query selects windows by case-sensitive substring on title and process name.
// An empty field matches every window.
type Query struct {
	Title       string
	ProcessName string
}

// Empty reports whether neither field was supplied.
func (q Query) Empty() bool {
	return q.Title == "" && q.ProcessName == ""
}

// Matches reports whether both fields are contained in the given values.
func (q Query) Matches(processName, title string) bool {
	return strings.Contains(processName, q.ProcessName) && strings.Contains(title, q.Title)
}

// Filter returns the entries matching q, in their original order.
func Filter(entries Entries, q Query) Entries {
	var matched Entries
	for _, e := range entries {
		if q.Matches(e.ProcessName, e.Title) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Select returns the matching entry with the alphabetically first process name.
// The entry stays owned by entries.
func Select(entries Entries, q Query) (Entry, error) {
	matched := Filter(entries, q)
	if len(matched) == 0 {
		return Entry{}, ErrWindowNotFound
	}
	slices.SortStableFunc(matched, func(a, b Entry) int {
		return strings.Compare(a.ProcessName, b.ProcessName)
	})
	return matched[0], nil
}

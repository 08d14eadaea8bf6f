// Package view derives read-only projections of a task snapshot.
// Nothing here holds state or mutates its input.
package view

import (
	"iter"
	"strings"

	"taskboard/internal/service"
)

// Filter selects tasks by status. All selects every task.
type Filter string

// All is the filter matching every status.
const All Filter = "all"

// Filters lists the filter choices in display order.
var Filters = []Filter{All, Filter(service.StatusPending), Filter(service.StatusInProgress), Filter(service.StatusCompleted)}

// ParseFilter accepts "all" or any spelling service.ParseStatus accepts.
func ParseFilter(s string) (Filter, error) {
	if strings.EqualFold(strings.TrimSpace(s), string(All)) || strings.TrimSpace(s) == "" {
		return All, nil
	}
	st, err := service.ParseStatus(s)
	if err != nil {
		return "", err
	}
	return Filter(st), nil
}

// Label returns the filter's display name.
func (f Filter) Label() string {
	if f == All {
		return "All"
	}
	return service.Status(f).Label()
}

// Next returns the following filter in Filters, wrapping around.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return All
}

// Match reports whether t passes the filter.
func (f Filter) Match(t service.Task) bool {
	return f == All || service.Status(f) == t.Status
}

// FilterByStatus yields the tasks matching f in canonical order.
// The sequence is lazy and may be ranged over any number of times.
func FilterByStatus(tasks []service.Task, f Filter) iter.Seq[service.Task] {
	return func(yield func(service.Task) bool) {
		for _, t := range tasks {
			if !f.Match(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// GroupByStatus partitions tasks into the three status buckets.
// Every status key is present; within-bucket order follows the input.
func GroupByStatus(tasks iter.Seq[service.Task]) map[service.Status][]service.Task {
	groups := make(map[service.Status][]service.Task, len(service.Statuses))
	for _, st := range service.Statuses {
		groups[st] = []service.Task{}
	}
	for t := range tasks {
		groups[t.Status] = append(groups[t.Status], t)
	}
	return groups
}

// Counts returns the number of tasks per status in a grouping.
func Counts(groups map[service.Status][]service.Task) map[service.Status]int {
	counts := make(map[service.Status]int, len(groups))
	for st, ts := range groups {
		counts[st] = len(ts)
	}
	return counts
}

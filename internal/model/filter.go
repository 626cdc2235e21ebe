package model

import "strings"

// Filter selects a view over the task list.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterHigh      Filter = "high"
)

// Filters is the order filters are cycled through in the TUI.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted, FilterHigh}

// ParseFilter never fails: anything unknown selects every task.
func ParseFilter(s string) Filter {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FilterActive, FilterCompleted, FilterHigh:
		return f
	}
	return FilterAll
}

func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterHigh:
		return t.Priority == PriorityHigh
	default:
		return true
	}
}

// Next returns the filter after f in Filters, wrapping around.
func (f Filter) Next() Filter {
	for i, g := range Filters {
		if g == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

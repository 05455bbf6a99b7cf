package taskstore

import (
	"strings"

	"github.com/nhle/achievo/internal/model"
)

// StatusFilter narrows a query by completion state.
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusPending
	StatusCompleted
)

// String returns the filter name shown in the status bar.
func (f StatusFilter) String() string {
	switch f {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Filter controls which tasks a query returns. The zero value matches
// every task.
type Filter struct {
	Status   StatusFilter
	Priority *model.Priority // nil (all) or a single level
	Query    string          // case-insensitive match on title + description
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Status == StatusAll && f.Priority == nil && strings.TrimSpace(f.Query) == ""
}

// Matches reports whether t passes the filter.
func (f Filter) Matches(t model.Task) bool {
	switch f.Status {
	case StatusPending:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	return true
}

// Filter returns the tasks matching f, in collection order.
func (s *TaskStore) Filter(f Filter) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Task
	for _, t := range s.tasks {
		if f.Matches(t) {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

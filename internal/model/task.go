package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency level of a task (lower number = higher priority).
type Priority int

// Priority levels. The zero value is not a valid priority and normalizes
// to PriorityMedium.
const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Priorities lists every valid priority, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// String returns the display name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// Valid reports whether p is one of the defined priority levels.
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

// Normalize returns p, or PriorityMedium when p is not a defined level.
func (p Priority) Normalize() Priority {
	if !p.Valid() {
		return PriorityMedium
	}
	return p
}

// ParsePriority converts a case-insensitive name ("high", "Medium", "LOW")
// into a Priority.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, nil
	case "medium", "":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return 0, fmt.Errorf("unknown priority %q", s)
	}
}

// MarshalText encodes the priority by name.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.Normalize().String()), nil
}

// UnmarshalText decodes a priority name.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// TimestampLayout is the normalized textual form of task timestamps.
const TimestampLayout = time.RFC3339

// FormatTimestamp renders t in the normalized textual form (RFC 3339, UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses either the normalized form or a bare date
// (YYYY-MM-DD), which is interpreted as midnight UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t.UTC(), nil
}

// Task is a user-created to-do item.
type Task struct {
	// ID is assigned at creation and never changes or gets reused.
	ID string `json:"id"`

	// Title is the only required field; never empty for a stored task.
	Title string `json:"title"`

	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"created_at"`
}

// DueDateString returns the due date in the normalized textual form, or ""
// when no due date is set.
func (t Task) DueDateString() string {
	if t.DueDate == nil {
		return ""
	}
	return FormatTimestamp(*t.DueDate)
}

// IsOverdue reports whether the task has a due date before now and is not
// completed yet.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}

// TaskPatch carries the fields an update may change. A nil field is left
// untouched. ID and CreatedAt are deliberately absent.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority

	// DueDate is a pointer to the new value; a non-nil DueDate holding a nil
	// *time.Time clears the due date.
	DueDate   **time.Time
	Completed *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.DueDate == nil && p.Completed == nil
}

// Apply returns t with the patch merged in.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Priority != nil {
		t.Priority = p.Priority.Normalize()
	}
	if p.DueDate != nil {
		if *p.DueDate == nil {
			t.DueDate = nil
		} else {
			d := (*p.DueDate).UTC()
			t.DueDate = &d
		}
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// PatchFrom builds a patch that overwrites every mutable field of a task
// with the values in t. Used by the edit form, which always submits all
// fields.
func PatchFrom(t Task) TaskPatch {
	title := t.Title
	desc := t.Description
	pri := t.Priority
	due := t.DueDate
	completed := t.Completed
	return TaskPatch{
		Title:       &title,
		Description: &desc,
		Priority:    &pri,
		DueDate:     &due,
		Completed:   &completed,
	}
}

// DeleteRequest identifies a task proposed for deletion while the user is
// asked to confirm.
type DeleteRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

package tasklist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/internal/theme"
)

// DateLayout is the human-friendly due date format.
const DateLayout = "Jan 2, 2006"

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	parts := []string{i.Task.Priority.String()}
	if i.Task.DueDate != nil {
		parts = append(parts, "due "+i.Task.DueDate.Format(DateLayout))
	}
	if i.Task.Completed {
		parts = append(parts, "done")
	}
	return strings.Join(parts, " | ")
}

var (
	listItemStyle = lipgloss.NewStyle().PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Bold(true).
				Foreground(theme.ColorBlue).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(theme.ColorBlue)

	dueDateStyle = lipgloss.NewStyle().Foreground(theme.ColorGray)
)

// TaskDelegate implements list.ItemDelegate for rendering tasks.
type TaskDelegate struct {
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d TaskDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d TaskDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d TaskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d TaskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.renderLine(ti.Task, index == m.Index()))
}

func (d TaskDelegate) renderLine(t model.Task, isSelected bool) string {
	prefix := "○"
	if t.Completed {
		prefix = "✓"
	}
	prefix = theme.StatusStyle(t.Completed).Render(prefix)

	priBadge := theme.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority))

	title := t.Title
	if t.Completed {
		title = theme.CompletedStyle.Render(title)
	}

	due := ""
	if t.DueDate != nil {
		due = dueDateStyle.Render("  " + t.DueDate.Format(DateLayout))
		if d.now != nil && t.IsOverdue(d.now()) {
			due += theme.OverdueStyle.Render(" OVERDUE")
		}
	}

	line := fmt.Sprintf("%s %s %s%s", prefix, priBadge, title, due)

	if isSelected {
		return selectedItemStyle.Render(line)
	}
	return listItemStyle.Render(line)
}

// priorityLabel returns a fixed-width label for the given priority level.
func priorityLabel(p model.Priority) string {
	switch p.Normalize() {
	case model.PriorityHigh:
		return "HIGH"
	case model.PriorityLow:
		return "LOW "
	default:
		return "MED "
	}
}

package tasklist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/achievo/internal/keys"
	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/internal/taskstore"
	"github.com/nhle/achievo/internal/theme"
)

// Source is the read side of the task collection.
type Source interface {
	Filter(f taskstore.Filter) []model.Task
	Stats() taskstore.Stats
}

// TasksLoadedMsg is sent when tasks have been read from the source.
type TasksLoadedMsg struct {
	Tasks []model.Task
	Stats taskstore.Stats
}

// SelectedTaskMsg is sent when a user selects a task to view details.
type SelectedTaskMsg struct {
	TaskID string
}

// NewTaskMsg asks for the create form.
type NewTaskMsg struct{}

// EditTaskMsg asks for the edit form of a task.
type EditTaskMsg struct {
	TaskID string
}

// ToggleTaskMsg asks to flip a task's completion flag.
type ToggleTaskMsg struct {
	TaskID string
}

// DeleteTaskMsg asks to delete a task, pending confirmation.
type DeleteTaskMsg struct {
	TaskID string
	Title  string
}

// statusCycle is the order the status filter key steps through.
var statusCycle = []taskstore.StatusFilter{
	taskstore.StatusAll,
	taskstore.StatusPending,
	taskstore.StatusCompleted,
}

// Model is the main task list view component.
type Model struct {
	list        list.Model
	source      Source
	keys        *keys.KeyMap
	filter      taskstore.Filter
	stats       taskstore.Stats
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new task list model.
func New(src Source, k *keys.KeyMap, width, height int) Model {
	delegate := TaskDelegate{now: time.Now}
	l := list.New([]list.Item{}, delegate, width, listHeight(height))
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search tasks..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		source:      src,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of tasks.
func (m Model) Init() tea.Cmd {
	return m.LoadTasks()
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		items := make([]list.Item, len(msg.Tasks))
		for i, task := range msg.Tasks {
			items[i] = TaskItem{Task: task}
		}
		m.stats = msg.Stats
		cmd := m.list.SetItems(items)
		if idx := m.list.Index(); idx >= len(items) && len(items) > 0 {
			m.list.Select(len(items) - 1)
		}
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		m.filter.Query = m.searchInput.Value()
		return m, m.LoadTasks()

	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.filter.Query = ""
		return m, m.LoadTasks()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New):
		return m, emit(NewTaskMsg{})

	case key.Matches(msg, m.keys.Select):
		if t, ok := m.SelectedTask(); ok {
			return m, emit(SelectedTaskMsg{TaskID: t.ID})
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.SelectedTask(); ok {
			return m, emit(EditTaskMsg{TaskID: t.ID})
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.SelectedTask(); ok {
			return m, emit(ToggleTaskMsg{TaskID: t.ID})
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.SelectedTask(); ok {
			return m, emit(DeleteTaskMsg{TaskID: t.ID, Title: t.Title})
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		m.searchInput.SetValue(m.filter.Query)
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.HideCompleted):
		m.filter.Status = nextStatus(m.filter.Status)
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.CyclePriority):
		m.filter.Priority = nextPriority(m.filter.Priority)
		return m, m.LoadTasks()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Filter returns the active filter.
func (m Model) Filter() taskstore.Filter {
	return m.filter
}

// View renders the task list view.
func (m Model) View() string {
	header := m.renderStats()

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, header, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.renderEmptyState())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View())
}

// renderStats draws the total, completed, and pending counters.
func (m Model) renderStats() string {
	total := theme.StatStyle.Foreground(theme.ColorBlue).
		Render(fmt.Sprintf("Total %d", m.stats.Total))
	done := theme.StatStyle.Foreground(theme.ColorGreen).
		Render(fmt.Sprintf("Completed %d", m.stats.Completed))
	pending := theme.StatStyle.Foreground(theme.ColorYellow).
		Render(fmt.Sprintf("Pending %d", m.stats.Pending))

	row := lipgloss.JoinHorizontal(lipgloss.Top, total, " ", done, " ", pending)
	if !m.filter.IsZero() {
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, "  ", theme.HelpStyle.Render(describeFilter(m.filter)))
	}
	return row
}

// renderEmptyState shows guidance text when no tasks are available.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(listHeight(m.height)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if !m.filter.IsZero() {
		return style.Render("No matching tasks.\nTry adjusting your filters.")
	}
	return style.Render("No tasks yet.\n\nPress n to create your first task.")
}

// LoadTasks returns a tea.Cmd that reads the source with the current filter.
func (m Model) LoadTasks() tea.Cmd {
	filter := m.filter
	src := m.source
	return func() tea.Msg {
		return TasksLoadedMsg{Tasks: src.Filter(filter), Stats: src.Stats()}
	}
}

// Refresh reloads the list from the source immediately.
func (m *Model) Refresh() {
	*m, _ = m.Update(m.LoadTasks()())
}

// SetStatus replaces the status filter.
func (m *Model) SetStatus(s taskstore.StatusFilter) {
	m.filter.Status = s
}

// ClearFilter drops every filter and the search query.
func (m *Model) ClearFilter() {
	m.filter = taskstore.Filter{}
	m.searchInput.Reset()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, listHeight(height))
	m.searchInput.Width = width - 4
}

// listHeight leaves room for the stats row and the search bar.
func listHeight(height int) int {
	return max(height-5, 1)
}

func describeFilter(f taskstore.Filter) string {
	s := "showing " + f.Status.String()
	if f.Priority != nil {
		s += ", " + f.Priority.String() + " priority"
	}
	if f.Query != "" {
		s += fmt.Sprintf(", matching %q", f.Query)
	}
	return s
}

func nextStatus(s taskstore.StatusFilter) taskstore.StatusFilter {
	for i, v := range statusCycle {
		if v == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return taskstore.StatusAll
}

// nextPriority steps all → High → Medium → Low → all.
func nextPriority(p *model.Priority) *model.Priority {
	if p == nil {
		next := model.Priorities[0]
		return &next
	}
	for i, v := range model.Priorities {
		if v == *p && i+1 < len(model.Priorities) {
			next := model.Priorities[i+1]
			return &next
		}
	}
	return nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/achievo/internal/taskstore"
)

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	m.log.WithField("command", cmd).Debug("command")
	m.commandView.Blur()

	switch cmd {
	case "quit", "q":
		return tea.Quit
	case "new", "new task":
		m.previous = ""
		return m.startCreate()
	case "help":
		m.route = m.previous
		m.helpView.SetUser(m.currentUser())
		return m.navigate(RouteHelp)
	case "logout":
		return tea.Batch(m.back(), m.signOut())
	case "theme":
		return tea.Batch(m.back(), m.toggleTheme())
	case "pending":
		return m.filterStatus(taskstore.StatusPending)
	case "completed":
		return m.filterStatus(taskstore.StatusCompleted)
	case "all":
		return m.filterStatus(taskstore.StatusAll)
	case "clear":
		m.taskList.ClearFilter()
		m.previous = ""
		return m.navigate(RouteTasks)
	default:
		m.toasts.Notify("Unknown command", cmd)
		return m.back()
	}
}

func (m *Model) filterStatus(s taskstore.StatusFilter) tea.Cmd {
	m.taskList.SetStatus(s)
	m.previous = ""
	return m.navigate(RouteTasks)
}

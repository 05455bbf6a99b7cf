package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Route names a screen of the application.
type Route string

const (
	RouteLogin      Route = "login"
	RouteTasks      Route = "tasks"
	RouteTaskNew    Route = "task/new"
	RouteTaskEdit   Route = "task/edit"
	RouteTaskDetail Route = "task/detail"
	RouteTaskDelete Route = "task/delete"
	RouteHelp       Route = "help"
	RouteCommand    Route = "command"
)

// public reports whether the route is reachable without a session.
func (r Route) public() bool {
	return r == RouteLogin
}

// overlay reports whether the route is shown on top of another and returns
// to it when closed.
func (r Route) overlay() bool {
	return r == RouteHelp || r == RouteCommand || r == RouteTaskDelete
}

// navigate switches to the given route. Without a session every route
// except login resolves to login; with one, login resolves to tasks.
func (m *Model) navigate(to Route) tea.Cmd {
	authed := m.gate.Authenticated()
	switch {
	case !authed && !to.public():
		to = RouteLogin
	case authed && to == RouteLogin:
		to = RouteTasks
	}

	if to.overlay() && !m.route.overlay() {
		m.previous = m.route
	}
	if m.route == RouteCommand && to != RouteCommand {
		m.commandView.Blur()
	}

	from := m.route
	m.route = to
	m.log.WithField("from", string(from)).WithField("to", string(to)).Debug("navigate")

	switch to {
	case RouteLogin:
		return m.login.Start()
	case RouteTasks:
		m.taskList.Refresh()
	case RouteCommand:
		return m.commandView.Focus()
	}
	return nil
}

// back closes an overlay, returning to the route underneath.
func (m *Model) back() tea.Cmd {
	prev := m.previous
	if prev == "" || prev.overlay() {
		prev = RouteTasks
	}
	m.previous = ""
	if prev == RouteTaskDetail {
		if _, err := m.tasks.Get(m.detail.TaskID()); err != nil {
			prev = RouteTasks
		}
	}
	return m.navigate(prev)
}

package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/internal/taskstore"
)

func (m *Model) startCreate() tea.Cmd {
	nav := m.navigate(RouteTaskNew)
	if m.route != RouteTaskNew {
		return nav
	}
	return m.form.StartCreate()
}

func (m *Model) startEdit(id string) tea.Cmd {
	task, err := m.tasks.Get(id)
	if err != nil {
		m.logMissing(err, id, "edit")
		return m.navigate(RouteTasks)
	}
	nav := m.navigate(RouteTaskEdit)
	if m.route != RouteTaskEdit {
		return nav
	}
	return m.form.StartEdit(task)
}

func (m *Model) showDetail(id string) tea.Cmd {
	task, err := m.tasks.Get(id)
	if err != nil {
		m.logMissing(err, id, "detail")
		return m.navigate(RouteTasks)
	}
	m.detail.SetTask(task)
	return m.navigate(RouteTaskDetail)
}

// create hands the form fields to the store and returns to the list.
func (m *Model) create(fields model.Task) tea.Cmd {
	if _, err := m.tasks.Create(fields); err != nil {
		m.log.WithError(err).Warn("task not created")
		return m.form.StartCreate()
	}
	return m.navigate(RouteTasks)
}

func (m *Model) update(id string, patch model.TaskPatch) tea.Cmd {
	if _, ok := m.tasks.Update(id, patch); !ok {
		m.log.WithField("task_id", id).Debug("edited task no longer exists")
	}
	return m.navigate(RouteTasks)
}

// toggle flips completion and refreshes whichever view shows the task.
func (m *Model) toggle(id string) {
	task, ok := m.tasks.ToggleComplete(id)
	if !ok {
		m.log.WithField("task_id", id).Debug("toggled task no longer exists")
		return
	}
	m.taskList.Refresh()
	if m.detail.TaskID() == id {
		m.detail.SetTask(task)
	}
}

// requestDelete opens the confirmation dialog. Nothing is removed until
// the user confirms.
func (m *Model) requestDelete(id, title string) tea.Cmd {
	m.tasks.RequestDelete(id, title)
	req, ok := m.tasks.PendingDelete()
	if !ok {
		return nil
	}
	nav := m.navigate(RouteTaskDelete)
	if m.route != RouteTaskDelete {
		m.tasks.CancelDelete()
		return nav
	}
	return m.confirm.Open(req)
}

func (m *Model) confirmDelete() tea.Cmd {
	if task, ok := m.tasks.ConfirmDelete(); ok {
		if m.detail.TaskID() == task.ID {
			m.detail.Clear()
		}
	}
	m.previous = ""
	return m.navigate(RouteTasks)
}

func (m *Model) cancelDelete() tea.Cmd {
	m.tasks.CancelDelete()
	return m.back()
}

func (m *Model) logMissing(err error, id, action string) {
	entry := m.log.WithFields(logrus.Fields{"task_id": id, "action": action})
	if errors.Is(err, taskstore.ErrNotFound) {
		entry.Debug("task no longer exists")
		return
	}
	entry.WithError(err).Warn("task lookup failed")
}

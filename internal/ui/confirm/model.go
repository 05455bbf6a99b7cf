// Package confirm renders the delete confirmation dialog.
package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/internal/theme"
)

// ConfirmedMsg is sent when the user accepts the deletion.
type ConfirmedMsg struct{}

// CancelledMsg is sent when the user declines or dismisses the dialog.
type CancelledMsg struct{}

// Model asks the user to confirm a pending delete. It reports the choice
// and never mutates anything itself.
type Model struct {
	form    *huh.Form
	accept  *bool
	request model.DeleteRequest
	width   int
}

// New creates a confirmation dialog.
func New(width int) Model {
	return Model{accept: new(bool), width: width}
}

// Open shows the dialog for req.
func (m *Model) Open(req model.DeleteRequest) tea.Cmd {
	m.request = req
	*m.accept = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete task?").
				Description(fmt.Sprintf("%q will be permanently removed.", req.Title)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.accept),
		),
	).WithWidth(m.dialogWidth()).WithShowHelp(false)
	return m.form.Init()
}

// Request returns the delete request the dialog was opened for.
func (m Model) Request() model.DeleteRequest {
	return m.request
}

// Update handles messages for the dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "y", "Y":
			m.form = nil
			return m, func() tea.Msg { return ConfirmedMsg{} }
		case "n", "N", "esc":
			m.form = nil
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		if *m.accept {
			return m, func() tea.Msg { return ConfirmedMsg{} }
		}
		return m, func() tea.Msg { return CancelledMsg{} }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	return m, cmd
}

// View renders the dialog.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return theme.DialogStyle.
		Width(m.dialogWidth()).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			m.form.View(),
			theme.HelpStyle.Render("y delete • n/esc cancel"),
		))
}

// SetSize updates the dialog width.
func (m *Model) SetSize(width int) {
	m.width = width
}

func (m Model) dialogWidth() int {
	return min(max(m.width-8, 30), 60)
}

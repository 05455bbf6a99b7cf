package detail

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/achievo/internal/keys"
	"github.com/nhle/achievo/internal/model"
)

func TestDetailRendersTask(t *testing.T) {
	due := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	m := New(keys.DefaultKeyMap(), 80, 30)
	m.SetTask(model.Task{
		ID:          "1",
		Title:       "Complete project proposal",
		Description: "Finalize the Q4 project proposal",
		Priority:    model.PriorityHigh,
		DueDate:     &due,
	})

	out := m.View()
	assert.Contains(t, out, "Complete project proposal")
	assert.Contains(t, out, "High priority")
	assert.Contains(t, out, "Dec 25, 2024")
	assert.Contains(t, out, "overdue")
	assert.Equal(t, "1", m.TaskID())
}

func TestDetailActions(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 30)
	m.SetTask(model.Task{ID: "7", Title: "Buy milk"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.NotNil(t, cmd)
	assert.Equal(t, ActionMsg{Action: ActionDelete, TaskID: "7", Title: "Buy milk"}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}

func TestDetailWithoutTask(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 30)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "No task selected")
}

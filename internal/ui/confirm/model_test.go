package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/achievo/internal/model"
)

func open(t *testing.T) Model {
	t.Helper()
	m := New(80)
	m.Open(model.DeleteRequest{ID: "1", Title: "Buy milk"})
	require.Contains(t, m.View(), "Buy milk")
	return m
}

func TestConfirmKey(t *testing.T) {
	m := open(t)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	assert.Equal(t, ConfirmedMsg{}, cmd())
	assert.Empty(t, m.View())
	assert.Equal(t, "1", m.Request().ID)
}

func TestCancelKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("n")},
		{Type: tea.KeyEsc},
	} {
		m := open(t)
		_, cmd := m.Update(k)
		require.NotNil(t, cmd)
		assert.Equal(t, CancelledMsg{}, cmd())
	}
}

func TestClosedDialogIgnoresInput(t *testing.T) {
	m := New(80)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.Nil(t, cmd)
}

package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/achievo/internal/auth"
	"github.com/nhle/achievo/internal/fixtures"
	"github.com/nhle/achievo/internal/logging"
	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/internal/notify"
	"github.com/nhle/achievo/internal/store"
	"github.com/nhle/achievo/internal/taskstore"
	"github.com/nhle/achievo/internal/ui/command"
	"github.com/nhle/achievo/internal/ui/confirm"
	"github.com/nhle/achievo/internal/ui/login"
	"github.com/nhle/achievo/internal/ui/taskform"
	"github.com/nhle/achievo/internal/ui/tasklist"
	"github.com/nhle/achievo/tests/testutil"
)

type harness struct {
	tasks  *taskstore.TaskStore
	gate   *auth.Gate
	toasts *notify.Toasts
	kv     *store.SQLiteStore
}

func newHarness(t *testing.T) (Model, harness) {
	t.Helper()
	kv := testutil.NewTestStore(t)
	toasts := notify.NewToasts(16)
	h := harness{
		tasks:  taskstore.New(toasts, taskstore.WithSeed(fixtures.Tasks(time.Now()))),
		gate:   auth.NewGate(auth.NewMock(0), kv, nil, logging.Discard()),
		toasts: toasts,
		kv:     kv,
	}
	m := New(Deps{Tasks: h.tasks, Gate: h.gate, Toasts: toasts, Prefs: kv, Log: logging.Discard()})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, h
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func sendCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func signIn(t *testing.T, m Model) Model {
	t.Helper()
	res := m.signIn(login.SubmitMsg{Mode: login.ModeLogin, Email: auth.DemoEmail, Password: auth.DemoPassword})()
	return send(t, m, res)
}

func nextToast(t *testing.T, h harness) notify.ToastMsg {
	t.Helper()
	msg, ok := h.toasts.Wait()().(notify.ToastMsg)
	require.True(t, ok)
	return msg
}

func TestStartsOnLoginWithoutSession(t *testing.T) {
	m, _ := newHarness(t)
	assert.Equal(t, RouteLogin, m.Route())

	// Task routes are gated.
	m = send(t, m, tasklist.NewTaskMsg{})
	assert.Equal(t, RouteLogin, m.Route())
	assert.Contains(t, m.View(), "Welcome to Achievo")
}

func TestSignInRoutesToTasks(t *testing.T) {
	m, h := newHarness(t)

	m, cmd := sendCmd(t, m, login.SubmitMsg{Mode: login.ModeLogin, Email: auth.DemoEmail, Password: auth.DemoPassword})
	require.NotNil(t, cmd)
	assert.True(t, m.login.Busy())

	m = signIn(t, m)
	assert.Equal(t, RouteTasks, m.Route())
	assert.Equal(t, "Signed in!", nextToast(t, h).Title)
	assert.Contains(t, m.View(), "Complete project proposal")
}

func TestSignInFailureStaysOnLogin(t *testing.T) {
	m, _ := newHarness(t)
	res := m.signIn(login.SubmitMsg{Mode: login.ModeLogin})()
	m = send(t, m, res)

	assert.Equal(t, RouteLogin, m.Route())
	assert.False(t, m.login.Busy())
	assert.Contains(t, m.View(), "invalid email or password")
}

func TestExistingSessionSkipsLogin(t *testing.T) {
	_, h := newHarness(t)
	_, err := h.gate.Login(context.Background(), auth.DemoEmail, auth.DemoPassword)
	require.NoError(t, err)

	m := New(Deps{Tasks: h.tasks, Gate: h.gate, Toasts: h.toasts})
	assert.Equal(t, RouteTasks, m.Route())
}

func TestCreateFlow(t *testing.T) {
	m, h := newHarness(t)
	m = signIn(t, m)
	nextToast(t, h)

	m = send(t, m, tasklist.NewTaskMsg{})
	assert.Equal(t, RouteTaskNew, m.Route())

	m = send(t, m, taskform.TaskCreatedMsg{Fields: model.Task{Title: "Buy milk"}})
	assert.Equal(t, RouteTasks, m.Route())
	require.Equal(t, 3, h.tasks.Len())
	assert.Equal(t, "Buy milk", h.tasks.Tasks()[0].Title)
	assert.Equal(t, taskstore.TitleCreated, nextToast(t, h).Title)

	sel, ok := m.taskList.SelectedTask()
	require.True(t, ok)
	assert.Equal(t, "Buy milk", sel.Title)
}

func TestEditFlow(t *testing.T) {
	m, h := newHarness(t)
	m = signIn(t, m)

	m = send(t, m, tasklist.EditTaskMsg{TaskID: "1"})
	assert.Equal(t, RouteTaskEdit, m.Route())

	title := "Proposal v2"
	m = send(t, m, taskform.TaskUpdatedMsg{ID: "1", Patch: model.TaskPatch{Title: &title}})
	assert.Equal(t, RouteTasks, m.Route())

	got, err := h.tasks.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Proposal v2", got.Title)
}

func TestEditMissingTaskStaysOnList(t *testing.T) {
	m, _ := newHarness(t)
	m = signIn(t, m)

	m = send(t, m, tasklist.EditTaskMsg{TaskID: "nope"})
	assert.Equal(t, RouteTasks, m.Route())
}

func TestToggleUpdatesStats(t *testing.T) {
	m, h := newHarness(t)
	m = signIn(t, m)

	m = send(t, m, tasklist.ToggleTaskMsg{TaskID: "1"})
	assert.Equal(t, 2, h.tasks.CompletedCount())
	assert.Contains(t, m.View(), "Completed 2")
}

func TestDeleteConfirmFlow(t *testing.T) {
	m, h := newHarness(t)
	m = signIn(t, m)
	nextToast(t, h)

	m = send(t, m, tasklist.DeleteTaskMsg{TaskID: "1", Title: "Complete project proposal"})
	assert.Equal(t, RouteTaskDelete, m.Route())
	assert.Equal(t, taskstore.DeletePendingConfirmation, h.tasks.DeleteState())
	assert.Equal(t, 2, h.tasks.Len())

	m = send(t, m, confirm.ConfirmedMsg{})
	assert.Equal(t, RouteTasks, m.Route())
	assert.Equal(t, taskstore.DeleteIdle, h.tasks.DeleteState())
	assert.Equal(t, 1, h.tasks.Len())

	toast := nextToast(t, h)
	assert.Equal(t, taskstore.TitleDeleted, toast.Title)
	assert.Contains(t, toast.Description, "Complete project proposal")
}

func TestDeleteCancelReturnsToDetail(t *testing.T) {
	m, h := newHarness(t)
	m = signIn(t, m)

	m = send(t, m, tasklist.SelectedTaskMsg{TaskID: "2"})
	require.Equal(t, RouteTaskDetail, m.Route())

	// The detail view answers with an intent command; deliver it.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m = next.(Model)
	require.NotNil(t, cmd)
	m = send(t, m, cmd())
	assert.Equal(t, RouteTaskDelete, m.Route())

	m = send(t, m, confirm.CancelledMsg{})
	assert.Equal(t, RouteTaskDetail, m.Route())
	assert.Equal(t, taskstore.DeleteIdle, h.tasks.DeleteState())
	assert.Equal(t, 2, h.tasks.Len())
}

func TestToastExpires(t *testing.T) {
	m, _ := newHarness(t)
	m = signIn(t, m)

	m = send(t, m, notify.ToastMsg{Title: "Task created!", Description: "Your new task was added successfully."})
	assert.Contains(t, m.View(), "Task created!")

	m = send(t, m, notify.ToastMsg{Title: "Task updated!"})
	m = send(t, m, toastExpiredMsg{seq: 1})
	assert.Contains(t, m.View(), "Task updated!")

	m = send(t, m, toastExpiredMsg{seq: 2})
	assert.NotContains(t, m.View(), "Task updated!")
}

func TestLogoutReturnsToLogin(t *testing.T) {
	m, h := newHarness(t)
	m = signIn(t, m)

	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	require.NotNil(t, cmd)
	m = send(t, m, cmd())

	assert.Equal(t, RouteLogin, m.Route())
	assert.False(t, h.gate.Authenticated())
	_, err := h.kv.GetValue(context.Background(), store.KeyUser)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestCommandPaletteFilters(t *testing.T) {
	m, _ := newHarness(t)
	m = signIn(t, m)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	require.Equal(t, RouteCommand, m.Route())

	m = send(t, m, command.CommandMsg("pending"))
	assert.Equal(t, RouteTasks, m.Route())
	assert.Equal(t, taskstore.StatusPending, m.taskList.Filter().Status)
	assert.NotContains(t, m.View(), "Review team feedback")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	m = send(t, m, command.CommandMsg("clear"))
	assert.True(t, m.taskList.Filter().IsZero())
}

func TestHelpOverlayReturnsToPreviousRoute(t *testing.T) {
	m, _ := newHarness(t)
	m = signIn(t, m)
	m = send(t, m, tasklist.SelectedTaskMsg{TaskID: "1"})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Equal(t, RouteHelp, m.Route())
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, RouteTaskDetail, m.Route())
}

package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhle/achievo/internal/auth"
	"github.com/nhle/achievo/internal/keys"
	"github.com/nhle/achievo/internal/logging"
	"github.com/nhle/achievo/internal/notify"
	"github.com/nhle/achievo/internal/store"
	"github.com/nhle/achievo/internal/taskstore"
	"github.com/nhle/achievo/internal/ui"
	"github.com/nhle/achievo/internal/ui/command"
	"github.com/nhle/achievo/internal/ui/confirm"
	"github.com/nhle/achievo/internal/ui/detail"
	helpview "github.com/nhle/achievo/internal/ui/help"
	"github.com/nhle/achievo/internal/ui/login"
	"github.com/nhle/achievo/internal/ui/taskform"
	"github.com/nhle/achievo/internal/ui/tasklist"
)

// toastTTL is how long a notification stays in the status bar.
const toastTTL = 4 * time.Second

// toastExpiredMsg clears the toast it was scheduled for.
type toastExpiredMsg struct {
	seq int
}

// Deps are the collaborators the root model drives.
type Deps struct {
	Tasks  *taskstore.TaskStore
	Gate   *auth.Gate
	Toasts *notify.Toasts
	Prefs  store.KV
	Log    logrus.FieldLogger
}

// Model is the root Bubble Tea model. It owns routing and turns view
// intents into TaskStore and Gate calls.
type Model struct {
	route    Route
	previous Route
	layout   ui.Layout
	ready    bool

	tasks  *taskstore.TaskStore
	gate   *auth.Gate
	toasts *notify.Toasts
	prefs  store.KV
	log    logrus.FieldLogger
	keys   *keys.KeyMap

	taskList    tasklist.Model
	detail      detail.Model
	form        taskform.Model
	confirm     confirm.Model
	login       login.Model
	helpView    helpview.Model
	commandView command.Model

	toast    *notify.ToastMsg
	toastSeq int
	startup  tea.Cmd
}

// New creates the root model and routes to the task list when a session
// exists, otherwise to the login screen.
func New(d Deps) Model {
	k := keys.DefaultKeyMap()
	if d.Log == nil {
		d.Log = logging.Discard()
	}
	m := Model{
		tasks:       d.Tasks,
		gate:        d.Gate,
		toasts:      d.Toasts,
		prefs:       d.Prefs,
		log:         d.Log,
		keys:        k,
		taskList:    tasklist.New(d.Tasks, k, 80, 24),
		detail:      detail.New(k, 80, 24),
		form:        taskform.New(80, 24),
		confirm:     confirm.New(80),
		login:       login.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
	}
	m.startup = m.navigate(RouteTasks)
	return m
}

// Route returns the active route.
func (m Model) Route() Route {
	return m.route
}

// Init starts listening for toasts and runs the first screen's command.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startup, m.toasts.Wait())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.taskList.SetSize(w, h)
		m.detail.SetSize(w, h)
		m.form.SetSize(w, h)
		m.confirm.SetSize(w)
		m.login.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case notify.ToastMsg:
		m.toast = &msg
		m.toastSeq++
		seq := m.toastSeq
		return m, tea.Batch(
			m.toasts.Wait(),
			tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} }),
		)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case login.SubmitMsg:
		return m, tea.Batch(m.login.SetBusy(true), m.signIn(msg))

	case signedInMsg:
		return m, m.handleSignedIn(msg)

	case signedOutMsg:
		return m, m.handleSignedOut(msg)

	case themeSavedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("theme not remembered")
		}
		return m, nil

	case tasklist.NewTaskMsg:
		return m, m.startCreate()

	case tasklist.SelectedTaskMsg:
		return m, m.showDetail(msg.TaskID)

	case tasklist.EditTaskMsg:
		return m, m.startEdit(msg.TaskID)

	case tasklist.ToggleTaskMsg:
		m.toggle(msg.TaskID)
		return m, nil

	case tasklist.DeleteTaskMsg:
		return m, m.requestDelete(msg.TaskID, msg.Title)

	case detail.BackMsg:
		return m, m.navigate(RouteTasks)

	case detail.ActionMsg:
		switch msg.Action {
		case detail.ActionEdit:
			return m, m.startEdit(msg.TaskID)
		case detail.ActionToggle:
			m.toggle(msg.TaskID)
			return m, nil
		case detail.ActionDelete:
			return m, m.requestDelete(msg.TaskID, msg.Title)
		}
		return m, nil

	case taskform.TaskCreatedMsg:
		return m, m.create(msg.Fields)

	case taskform.TaskUpdatedMsg:
		return m, m.update(msg.ID, msg.Patch)

	case taskform.CancelMsg:
		return m, m.navigate(RouteTasks)

	case confirm.ConfirmedMsg:
		return m, m.confirmDelete()

	case confirm.CancelledMsg:
		return m, m.cancelDelete()

	case command.CommandMsg:
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work across views. It reports false
// when the key should go to the active view instead.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}

	switch m.route {
	case RouteLogin, RouteTaskDelete:
		return nil, false

	case RouteTaskNew, RouteTaskEdit:
		if msg.String() == "esc" {
			return m.navigate(RouteTasks), true
		}
		return nil, false

	case RouteCommand:
		if msg.String() == "esc" {
			return m.back(), true
		}
		return nil, false

	case RouteHelp:
		if msg.String() == "esc" || msg.String() == "?" || msg.String() == "q" {
			return m.back(), true
		}
		return nil, true
	}

	if m.route == RouteTasks && m.taskList.Searching() {
		return nil, false
	}

	switch msg.String() {
	case "q":
		if m.route == RouteTasks {
			return tea.Quit, true
		}
		return m.navigate(RouteTasks), true
	case "?":
		m.helpView.SetUser(m.currentUser())
		return m.navigate(RouteHelp), true
	case ":":
		return m.navigate(RouteCommand), true
	case "T":
		return m.toggleTheme(), true
	case "L":
		return m.signOut(), true
	}
	return nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.route {
	case RouteLogin:
		m.login, cmd = m.login.Update(msg)
	case RouteTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case RouteTaskDetail:
		m.detail, cmd = m.detail.Update(msg)
	case RouteTaskNew, RouteTaskEdit:
		m.form, cmd = m.form.Update(msg)
	case RouteTaskDelete:
		m.confirm, cmd = m.confirm.Update(msg)
	case RouteHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case RouteCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	right := "not signed in"
	if u := m.currentUser(); u != nil {
		right = u.Name
	}
	header := m.layout.RenderHeader("Achievo", right)

	toast := ""
	if m.toast != nil {
		toast = m.toast.Title + " " + m.toast.Description
	}
	statusBar := m.layout.RenderStatusBar(toast, m.keyHints())

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.route {
	case RouteLogin:
		return m.login.View()
	case RouteTasks:
		return m.taskList.View()
	case RouteTaskDetail:
		return m.detail.View()
	case RouteTaskNew, RouteTaskEdit:
		return m.form.View()
	case RouteTaskDelete:
		return m.layout.Center(m.confirm.View())
	case RouteHelp:
		return m.helpView.View()
	case RouteCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.route {
	case RouteLogin:
		return "enter continue | ctrl+c quit"
	case RouteHelp:
		return "? close help | esc back"
	case RouteCommand:
		return "enter execute | tab complete | esc back"
	case RouteTaskDetail:
		return "esc back | e edit | x toggle | d delete | j/k scroll"
	case RouteTaskNew, RouteTaskEdit:
		return "enter submit | esc cancel"
	case RouteTaskDelete:
		return "y delete | n cancel"
	default:
		f := m.taskList.Filter()
		if !f.IsZero() {
			return fmt.Sprintf("%s | : clear", f.Status)
		}
		return "q quit | ? help | n new | x toggle | d delete | / search"
	}
}

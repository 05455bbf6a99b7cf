package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/achievo/internal/auth"
	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/internal/theme"
	"github.com/nhle/achievo/internal/ui/login"
)

// sessionTimeout bounds a sign-in or sign-out round trip.
const sessionTimeout = 30 * time.Second

var errInvalidLogin = errors.New("invalid email or password")

// signedInMsg carries the result of a sign-in attempt.
type signedInMsg struct {
	user model.User
	err  error
}

// signedOutMsg carries the result of a sign-out.
type signedOutMsg struct {
	err error
}

// themeSavedMsg reports whether the toggled theme was remembered.
type themeSavedMsg struct {
	err error
}

// signIn runs the flow selected on the login screen.
func (m *Model) signIn(req login.SubmitMsg) tea.Cmd {
	gate := m.gate
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sessionTimeout)
		defer cancel()

		var (
			u   model.User
			err error
		)
		switch req.Mode {
		case login.ModeRegister:
			u, err = gate.Register(ctx, req.Name, req.Email, req.Password)
		case login.ModeGoogle:
			u, err = gate.LoginWithProvider(ctx, auth.ProviderGoogle)
		case login.ModeApple:
			u, err = gate.LoginWithProvider(ctx, auth.ProviderApple)
		default:
			u, err = gate.Login(ctx, req.Email, req.Password)
		}
		return signedInMsg{user: u, err: err}
	}
}

func (m *Model) handleSignedIn(msg signedInMsg) tea.Cmd {
	m.login.SetBusy(false)
	if msg.err != nil {
		m.log.WithError(msg.err).Info("sign-in rejected")
		if errors.Is(msg.err, auth.ErrInvalidCredentials) {
			return m.login.SetError(errInvalidLogin)
		}
		return m.login.SetError(fmt.Errorf("sign-in failed: %w", msg.err))
	}
	m.toasts.Notify("Signed in!", fmt.Sprintf("Welcome, %s!", msg.user.Name))
	return m.navigate(RouteTasks)
}

func (m *Model) signOut() tea.Cmd {
	gate := m.gate
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sessionTimeout)
		defer cancel()
		return signedOutMsg{err: gate.Logout(ctx)}
	}
}

func (m *Model) handleSignedOut(msg signedOutMsg) tea.Cmd {
	if msg.err != nil {
		m.log.WithError(msg.err).Warn("sign-out incomplete")
	}
	m.tasks.CancelDelete()
	m.detail.Clear()
	m.previous = ""
	m.login.Reset()
	return m.navigate(RouteLogin)
}

func (m *Model) currentUser() *model.User {
	u, ok := m.gate.Current()
	if !ok {
		return nil
	}
	return &u
}

// toggleTheme flips the palette and remembers the choice.
func (m *Model) toggleTheme() tea.Cmd {
	mode := theme.Toggle()
	m.log.WithField("theme", mode).Debug("theme toggled")
	if m.prefs == nil {
		return nil
	}
	prefs := m.prefs
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sessionTimeout)
		defer cancel()
		return themeSavedMsg{err: theme.Save(ctx, prefs, mode)}
	}
}

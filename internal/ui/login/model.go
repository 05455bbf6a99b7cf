// Package login renders the sign-in and sign-up screen.
package login

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/achievo/internal/theme"
)

// Mode selects the sign-in flow.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
	ModeGoogle   Mode = "google"
	ModeApple    Mode = "apple"
)

// SubmitMsg is sent when the user submits the form.
type SubmitMsg struct {
	Mode     Mode
	Name     string
	Email    string
	Password string
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	mode     Mode
	name     string
	email    string
	password string
}

// Model is the login screen.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	spinner spinner.Model
	busy    bool
	err     string
	width   int
	height  int
}

// New creates the login screen.
func New(width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		fb:      &formBindings{mode: ModeLogin},
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Start resets the form. The email is kept so a failed attempt can be
// retried without retyping it.
func (m *Model) Start() tea.Cmd {
	m.busy = false
	m.fb.password = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Reset clears every field and any error, as after logging out.
func (m *Model) Reset() tea.Cmd {
	*m.fb = formBindings{mode: ModeLogin}
	m.err = ""
	return m.Start()
}

// SetBusy shows the progress indicator while a sign-in is in flight.
func (m *Model) SetBusy(busy bool) tea.Cmd {
	m.busy = busy
	if busy {
		m.err = ""
		return m.spinner.Tick
	}
	return nil
}

// SetError shows err and reopens the form.
func (m *Model) SetError(err error) tea.Cmd {
	m.err = err.Error()
	return m.Start()
}

// Busy reports whether a sign-in is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// Update handles messages for the login screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.busy {
		if _, ok := msg.(spinner.TickMsg); ok {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.handleSubmit()
	case huh.StateAborted:
		return m, m.Start()
	}
	return m, cmd
}

// View renders the login screen.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections := []string{
		titleStyle.Render("Welcome to Achievo"),
		theme.HelpStyle.Render(fmt.Sprintf("Demo account: %s / %s", demoEmail, demoPassword)),
		"",
	}

	if m.busy {
		sections = append(sections, m.spinner.View()+" Signing in...")
	} else if m.form != nil {
		sections = append(sections, m.form.View())
	}
	if m.err != "" {
		sections = append(sections, "", theme.ErrorStyle.Render(m.err))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		theme.BorderStyle.
			Padding(1, 2).
			Width(m.formWidth()+4).
			Render(lipgloss.JoinVertical(lipgloss.Left, sections...)))
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Demo credentials shown on the login screen.
const (
	demoEmail    = "teste@teste.com"
	demoPassword = "123456"
)

func (m *Model) buildForm() *huh.Form {
	fb := m.fb
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Mode]().
				Title("Sign in with").
				Options(
					huh.NewOption("Email and password", ModeLogin),
					huh.NewOption("Create an account", ModeRegister),
					huh.NewOption("Google", ModeGoogle),
					huh.NewOption("Apple", ModeApple),
				).
				Value(&fb.mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fb.name).
				Validate(validateRequired("Name")),
		).WithHideFunc(func() bool { return fb.mode != ModeRegister }),
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&fb.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fb.password).
				Validate(validateRequired("Password")),
		).WithHideFunc(func() bool { return fb.mode.isProvider() }),
	).WithWidth(m.formWidth()).WithShowHelp(true)
}

func (m Model) handleSubmit() tea.Cmd {
	msg := SubmitMsg{Mode: m.fb.mode}
	if !m.fb.mode.isProvider() {
		msg.Email = strings.TrimSpace(m.fb.email)
		msg.Password = m.fb.password
	}
	if m.fb.mode == ModeRegister {
		msg.Name = strings.TrimSpace(m.fb.name)
	}
	return func() tea.Msg { return msg }
}

func (m Mode) isProvider() bool {
	return m == ModeGoogle || m == ModeApple
}

func (m Model) formWidth() int {
	return min(max(m.width-10, 30), 60)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateEmail(s string) error {
	if err := validateRequired("Email")(s); err != nil {
		return err
	}
	if !strings.Contains(s, "@") {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

// Package auth simulates sign-in. A Provider issues users; the Gate keeps
// the resulting session in local storage and decides whether the task
// views are reachable.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nhle/achievo/internal/model"
)

// ErrInvalidCredentials is returned when a sign-in attempt is rejected.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ProviderKind names a third-party identity provider.
type ProviderKind string

const (
	ProviderGoogle ProviderKind = "google"
	ProviderApple  ProviderKind = "apple"
)

// Provider issues users for the sign-in flows.
type Provider interface {
	Login(ctx context.Context, email, password string) (model.User, error)
	Register(ctx context.Context, name, email, password string) (model.User, error)
	LoginWithProvider(ctx context.Context, kind ProviderKind) (model.User, error)
	Logout(ctx context.Context) error
}

// Demo account recognised by Mock.
const (
	DemoEmail    = "teste@teste.com"
	DemoPassword = "123456"
	demoUserID   = "1"
	demoUserName = "Test User"
)

// Mock accepts any non-empty email after an artificial delay.
type Mock struct {
	delay time.Duration
	now   func() time.Time
}

// NewMock creates a Mock that waits delay before answering each sign-in.
func NewMock(delay time.Duration) *Mock {
	if delay < 0 {
		delay = 0
	}
	return &Mock{delay: delay, now: time.Now}
}

// Login signs in the demo account, or any other email with the name taken
// from the email's local part.
func (m *Mock) Login(ctx context.Context, email, password string) (model.User, error) {
	if err := m.wait(ctx); err != nil {
		return model.User{}, err
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return model.User{}, fmt.Errorf("login: email is required: %w", ErrInvalidCredentials)
	}
	if email == DemoEmail && password == DemoPassword {
		return model.User{ID: demoUserID, Name: demoUserName, Email: email}, nil
	}

	name, _, _ := strings.Cut(email, "@")
	return model.User{ID: m.newID(), Name: name, Email: email}, nil
}

// Register creates a new user from the given details.
func (m *Mock) Register(ctx context.Context, name, email, password string) (model.User, error) {
	if err := m.wait(ctx); err != nil {
		return model.User{}, err
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return model.User{}, fmt.Errorf("register: email is required: %w", ErrInvalidCredentials)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return model.User{ID: m.newID(), Name: name, Email: email}, nil
}

// LoginWithProvider returns a canned user for the given provider.
func (m *Mock) LoginWithProvider(ctx context.Context, kind ProviderKind) (model.User, error) {
	if err := m.wait(ctx); err != nil {
		return model.User{}, err
	}

	switch kind {
	case ProviderGoogle:
		return model.User{ID: m.newID(), Name: "Google User", Email: "user@gmail.com"}, nil
	case ProviderApple:
		return model.User{ID: m.newID(), Name: "Apple User", Email: "user@icloud.com"}, nil
	default:
		return model.User{}, fmt.Errorf("unknown provider %q: %w", kind, ErrInvalidCredentials)
	}
}

// Logout has nothing to revoke.
func (m *Mock) Logout(context.Context) error { return nil }

func (m *Mock) wait(ctx context.Context) error {
	if m.delay == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *Mock) newID() string {
	return strconv.FormatInt(m.now().UnixMilli(), 10)
}

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/internal/store"
)

// SecretStore holds per-session secrets, normally the system keyring.
type SecretStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Gate owns the signed-in session. A session exists when a user record is
// stored under store.KeyUser; the keyring secret is informational only.
type Gate struct {
	provider Provider
	kv       store.KV
	secrets  SecretStore
	log      logrus.FieldLogger

	mu   sync.RWMutex
	user *model.User
}

// NewGate creates a Gate. secrets may be nil when no keyring is available.
func NewGate(provider Provider, kv store.KV, secrets SecretStore, log logrus.FieldLogger) *Gate {
	return &Gate{provider: provider, kv: kv, secrets: secrets, log: log}
}

// Restore loads a previously saved session, if any.
func (g *Gate) Restore(ctx context.Context) (model.User, bool, error) {
	raw, err := g.kv.GetValue(ctx, store.KeyUser)
	if errors.Is(err, store.ErrKeyNotFound) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("restoring session: %w", err)
	}

	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		g.log.WithError(err).Warn("discarding unreadable session")
		if derr := g.kv.DeleteValue(ctx, store.KeyUser); derr != nil {
			return model.User{}, false, fmt.Errorf("clearing unreadable session: %w", derr)
		}
		return model.User{}, false, nil
	}

	if g.secrets != nil {
		if _, err := g.secrets.Get(secretKey(u.ID)); err != nil {
			g.log.WithError(err).WithField("user_id", u.ID).Warn("session secret unavailable")
		}
	}

	g.mu.Lock()
	g.user = &u
	g.mu.Unlock()
	return u, true, nil
}

// Current returns the signed-in user.
func (g *Gate) Current() (model.User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.user == nil {
		return model.User{}, false
	}
	return *g.user, true
}

// Authenticated reports whether a session exists.
func (g *Gate) Authenticated() bool {
	_, ok := g.Current()
	return ok
}

// Login signs in with email and password.
func (g *Gate) Login(ctx context.Context, email, password string) (model.User, error) {
	u, err := g.provider.Login(ctx, email, password)
	if err != nil {
		return model.User{}, err
	}
	return g.establish(ctx, u)
}

// Register creates an account and signs in.
func (g *Gate) Register(ctx context.Context, name, email, password string) (model.User, error) {
	u, err := g.provider.Register(ctx, name, email, password)
	if err != nil {
		return model.User{}, err
	}
	return g.establish(ctx, u)
}

// LoginWithProvider signs in through a third-party provider.
func (g *Gate) LoginWithProvider(ctx context.Context, kind ProviderKind) (model.User, error) {
	u, err := g.provider.LoginWithProvider(ctx, kind)
	if err != nil {
		return model.User{}, err
	}
	return g.establish(ctx, u)
}

// Logout ends the session and forgets it locally.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	u := g.user
	g.user = nil
	g.mu.Unlock()

	if err := g.provider.Logout(ctx); err != nil {
		g.log.WithError(err).Warn("provider logout failed")
	}
	if err := g.kv.DeleteValue(ctx, store.KeyUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	if u != nil && g.secrets != nil {
		if err := g.secrets.Delete(secretKey(u.ID)); err != nil {
			g.log.WithError(err).WithField("user_id", u.ID).Warn("removing session secret")
		}
	}
	g.log.Info("signed out")
	return nil
}

func (g *Gate) establish(ctx context.Context, u model.User) (model.User, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return model.User{}, fmt.Errorf("encoding session: %w", err)
	}
	if err := g.kv.SetValue(ctx, store.KeyUser, string(data)); err != nil {
		return model.User{}, fmt.Errorf("saving session: %w", err)
	}
	if g.secrets != nil {
		if err := g.secrets.Set(secretKey(u.ID), uuid.New().String()); err != nil {
			g.log.WithError(err).WithField("user_id", u.ID).Warn("storing session secret")
		}
	}

	g.mu.Lock()
	g.user = &u
	g.mu.Unlock()

	g.log.WithField("user_id", u.ID).Info("signed in")
	return u, nil
}

func secretKey(userID string) string {
	return "session-" + userID
}

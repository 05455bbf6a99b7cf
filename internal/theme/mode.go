package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/internal/store"
)

// Apply selects the palette. "dark" and "light" force the adaptive colors
// to one side; "auto" keeps whatever the terminal reported.
func Apply(mode string) {
	switch mode {
	case model.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	case model.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}

// Current returns the palette in effect, "dark" or "light".
func Current() string {
	if lipgloss.HasDarkBackground() {
		return model.ThemeDark
	}
	return model.ThemeLight
}

// Toggle flips between the dark and light palettes and returns the new one.
func Toggle() string {
	next := model.ThemeDark
	if Current() == model.ThemeDark {
		next = model.ThemeLight
	}
	Apply(next)
	return next
}

// Load returns the remembered theme, or fallback when none was saved.
func Load(ctx context.Context, kv store.KV, fallback string) (string, error) {
	v, err := kv.GetValue(ctx, store.KeyTheme)
	if errors.Is(err, store.ErrKeyNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("loading theme: %w", err)
	}
	if v != model.ThemeDark && v != model.ThemeLight {
		return fallback, nil
	}
	return v, nil
}

// Save remembers mode for the next start.
func Save(ctx context.Context, kv store.KV, mode string) error {
	if err := kv.SetValue(ctx, store.KeyTheme, mode); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ThemeAuto, cfg.Display.Theme)
	assert.Equal(t, 1000, cfg.Auth.DelayMs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Tasks.SeedFixtures)
	assert.NotEmpty(t, cfg.Data.DBPath)
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("display:\n  theme: dark\nauth:\n  delay_ms: 5\ntasks:\n  seed_fixtures: false\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ThemeDark, cfg.Display.Theme)
	assert.Equal(t, 5, cfg.Auth.DelayMs)
	assert.False(t, cfg.Tasks.SeedFixtures)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ACHIEVO_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigUnknownThemeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  theme: neon\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeAuto, cfg.Display.Theme)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultAppConfig()
	cfg.Display.Theme = ThemeLight
	cfg.Auth.DelayMs = 0

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, loaded.Display.Theme)
	assert.Equal(t, 0, loaded.Auth.DelayMs)
}

package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Theme names accepted by DisplayConfig.Theme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme is "auto", "dark", or "light". A theme toggled from the UI is
	// remembered in the local key-value store and takes precedence.
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// DataConfig locates the local database.
type DataConfig struct {
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// AuthConfig tunes the simulated sign-in.
type AuthConfig struct {
	// DelayMs is the artificial latency of every sign-in call.
	DelayMs int `mapstructure:"delay_ms" yaml:"delay_ms"`
}

// LogConfig controls the application log.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// TasksConfig controls the in-memory task collection.
type TasksConfig struct {
	// SeedFixtures loads the sample tasks on every start.
	SeedFixtures bool `mapstructure:"seed_fixtures" yaml:"seed_fixtures"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Tasks   TasksConfig   `mapstructure:"tasks" yaml:"tasks"`
}

// ConfigDir returns ~/.config/achievo, or the working directory when the
// home directory cannot be determined.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "achievo")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/achievo/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		Display: DisplayConfig{Theme: ThemeAuto},
		Data:    DataConfig{DBPath: filepath.Join(dir, "achievo.db")},
		Auth:    AuthConfig{DelayMs: 1000},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "achievo.log"),
		},
		Tasks: TasksConfig{SeedFixtures: true},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file yields the defaults. Any key can be overridden by an
// ACHIEVO_* environment variable (e.g. ACHIEVO_LOG_LEVEL).
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("achievo")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults double as the key registry AutomaticEnv needs for Unmarshal.
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("data.db_path", def.Data.DBPath)
	v.SetDefault("auth.delay_ms", def.Auth.DelayMs)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("tasks.seed_fixtures", def.Tasks.SeedFixtures)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch cfg.Display.Theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		cfg.Display.Theme = ThemeAuto
	}
	if cfg.Auth.DelayMs < 0 {
		cfg.Auth.DelayMs = 0
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("display", cfg.Display)
	v.Set("data", cfg.Data)
	v.Set("auth", cfg.Auth)
	v.Set("log", cfg.Log)
	v.Set("tasks", cfg.Tasks)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

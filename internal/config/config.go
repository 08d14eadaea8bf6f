// Package config resolves the configuration directory and loads settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"taskboard/internal/logging"
	"taskboard/internal/service"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// SettingsFile is the optional settings filename inside the config dir.
	SettingsFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// EnvPrefix prefixes environment overrides (TASKBOARD_LOG_LEVEL, ...).
	EnvPrefix = "TASKBOARD"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings holds values from config.yaml and the environment.
	Settings Settings
}

// Settings are user-tunable values.
type Settings struct {
	// DefaultStatus is the status add uses when --status is omitted.
	DefaultStatus string `mapstructure:"default_status"`

	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string `mapstructure:"log_level"`

	Export ExportSettings `mapstructure:"export"`
}

// ExportSettings controls the Google Tasks export.
type ExportSettings struct {
	// ListName is the Google Tasks list the snapshot is written to.
	ListName string `mapstructure:"list_name"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		DefaultStatus: string(service.StatusPending),
		LogLevel:      logging.LevelWarn,
		Export: ExportSettings{
			ListName: "Taskboard",
		},
	}
}

// New creates a Config for configDir and loads its settings.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
// A missing settings file is not an error.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	settings, err := LoadSettings(cfg.SettingsPath())
	if err != nil {
		return nil, err
	}
	cfg.Settings = settings
	return cfg, nil
}

// LoadSettings reads settings from path (if it exists) layered over the
// defaults, then applies TASKBOARD_* environment overrides.
func LoadSettings(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v, DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper, d Settings) {
	v.SetDefault("default_status", d.DefaultStatus)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("export.list_name", d.Export.ListName)
}

// Validate checks setting values.
func (s Settings) Validate() error {
	if _, err := service.ParseStatus(s.DefaultStatus); err != nil {
		return fmt.Errorf("invalid default_status: %q", s.DefaultStatus)
	}
	if !logging.ValidLevel(s.LogLevel) {
		return fmt.Errorf("invalid log_level: %q", s.LogLevel)
	}
	if strings.TrimSpace(s.Export.ListName) == "" {
		return fmt.Errorf("export.list_name cannot be empty")
	}
	return nil
}

// DefaultStatusValue returns DefaultStatus parsed as a service.Status.
func (s Settings) DefaultStatusValue() service.Status {
	st, err := service.ParseStatus(s.DefaultStatus)
	if err != nil {
		return service.StatusPending
	}
	return st
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory (mode 0700) if it doesn't exist.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// LogLevel returns the effective log level, honoring --debug.
func (c *Config) LogLevel() string {
	if c.Debug {
		return logging.LevelDebug
	}
	if c.Settings.LogLevel == "" {
		return logging.LevelWarn
	}
	return c.Settings.LogLevel
}

// Package config handles configuration loading and data home resolution.
package config

import (
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// NotificationsConfig controls booking confirmation emails.
type NotificationsConfig struct {
	Enabled bool   `yaml:"enabled"`
	From    string `yaml:"from"`
}

// SessionConfig controls whether the signed-in user survives restarts.
type SessionConfig struct {
	Persist bool `yaml:"persist"`
}

// CatalogConfig holds catalog browsing defaults.
type CatalogConfig struct {
	MaxPrice float64 `yaml:"max_price"` // default price ceiling for listings
}

// AppConfig is the root per-home configuration.
type AppConfig struct {
	Notifications NotificationsConfig `yaml:"notifications"`
	Session       SessionConfig       `yaml:"session"`
	Catalog       CatalogConfig       `yaml:"catalog"`
}

// Default returns an AppConfig populated with sensible defaults.
func Default() *AppConfig {
	return &AppConfig{
		Notifications: NotificationsConfig{
			Enabled: true,
			From:    "no-reply@eventdesk.local",
		},
		Session: SessionConfig{Persist: true},
		Catalog: CatalogConfig{MaxPrice: 1000},
	}
}

// Load reads a per-home config.yaml from path onto Default(), so keys that
// are absent keep their defaults. A missing file is not an error.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %s: %w", filepath.Base(path), err)
	}
	if strings.TrimSpace(cfg.Notifications.From) == "" {
		cfg.Notifications.From = Default().Notifications.From
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings no component can honour.
func (c *AppConfig) Validate() error {
	if c.Catalog.MaxPrice < 0 {
		return fmt.Errorf("catalog.max_price must be >= 0, got %v", c.Catalog.MaxPrice)
	}
	if _, err := mail.ParseAddress(c.Notifications.From); err != nil {
		return fmt.Errorf("notifications.from %q: %w", c.Notifications.From, err)
	}
	return nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o600)
}

// ---------------------------------------------------------------------------
// Data home resolution
// ---------------------------------------------------------------------------

// EnvHome names the environment variable that overrides the data home.
const EnvHome = "EVENTDESK_HOME"

// Home resolution sources reported by ResolveHome.
const (
	SourceEnv     = "env"
	SourceConfig  = "config"
	SourceDefault = "default"
)

// ResolveHome returns the data home and where it came from:
// $EVENTDESK_HOME, then the home key of the user settings file, then
// ~/.eventdesk.
func ResolveHome() (path, source string) {
	if env := os.Getenv(EnvHome); env != "" {
		if p, err := expandPath(env); err == nil {
			return p, SourceEnv
		}
	}
	if persisted, ok, _ := GetPersistedHome(); ok {
		return persisted, SourceConfig
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".eventdesk"), SourceDefault
}

// GetHome returns the resolved data home path.
func GetHome() string {
	path, _ := ResolveHome()
	return path
}

// GetPersistedHome returns the home stored in the user settings file.
func GetPersistedHome() (string, bool, error) {
	us, err := openUserSettings()
	if err != nil {
		return "", false, err
	}
	v, _ := us.values["home"].(string)
	if v = strings.TrimSpace(v); v == "" {
		return "", false, nil
	}
	p, err := expandPath(v)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPersistedHome stores the expanded, absolute form of path in the user
// settings file and returns it. Other keys in the file are kept.
func SetPersistedHome(path string) (string, error) {
	p, err := expandPath(path)
	if err != nil {
		return "", err
	}
	us, err := openUserSettings()
	if err != nil {
		return "", err
	}
	us.values["home"] = p
	if err := us.save(); err != nil {
		return "", err
	}
	return p, nil
}

// ClearPersistedHome drops the home key and reports whether it was set.
// The settings file is removed once nothing else is left in it.
func ClearPersistedHome() (bool, error) {
	us, err := openUserSettings()
	if err != nil {
		return false, err
	}
	if _, ok := us.values["home"]; !ok {
		return false, nil
	}
	delete(us.values, "home")
	return true, us.save()
}

// userSettings is ~/.config/eventdesk/config.yaml. An unparsable file reads
// as empty.
type userSettings struct {
	path   string
	values map[string]any
}

func openUserSettings() (*userSettings, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	us := &userSettings{path: filepath.Join(home, ".config", "eventdesk", "config.yaml")}
	data, err := os.ReadFile(us.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	_ = yaml.Unmarshal(data, &us.values)
	if us.values == nil {
		us.values = make(map[string]any)
	}
	return us, nil
}

func (us *userSettings) save() error {
	if len(us.values) == 0 {
		if err := os.Remove(us.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	out, err := yaml.Marshal(us.values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(us.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(us.path, out, 0o600)
}

// expandPath resolves a leading ~/ and environment variables, then makes
// the result absolute.
func expandPath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}

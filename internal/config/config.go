package config

import (
	"encoding/json"
	"os"
	"strings"
	"time"
)

const (
	defaultSearchDebounce = 400 * time.Millisecond
	defaultFilterDebounce = 250 * time.Millisecond
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// Config holds the application configuration
type Config struct {
	Paths *Paths
	UI    UISettings

	// RepoDir is the absolute repository directory every git call runs in.
	RepoDir string
	// Pathspec limits the history; a single plain path also scopes the
	// commit view (git show --relative).
	Pathspec []string

	SearchDebounce time.Duration
	FilterDebounce time.Duration
	LogLevel       string
	KeyMap         KeyMapConfig
	// Colors overrides category foregrounds by category name, e.g.
	// {"sha": "#ffcc00"}.
	Colors map[string]string
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	return &Config{
		Paths:          paths,
		UI:             defaultUISettings(),
		SearchDebounce: defaultSearchDebounce,
		FilterDebounce: defaultFilterDebounce,
		LogLevel:       "info",
		KeyMap:         KeyMapConfig{},
	}, nil
}

// Load loads config overrides from ~/.gitz/config.json if present.
func Load() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.apply(cfg.Paths.ConfigPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply merges the JSON file at path into c. A missing file is not an error.
func (c *Config) apply(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var user struct {
		KeyMap           KeyMapConfig      `json:"keymap,omitempty"`
		SearchDebounceMs *int              `json:"search_debounce_ms"`
		FilterDebounceMs *int              `json:"filter_debounce_ms"`
		LogLevel         *string           `json:"log_level"`
		Colors           map[string]string `json:"colors"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return err
	}

	if len(user.KeyMap.Bindings) > 0 {
		c.KeyMap = user.KeyMap
	}
	if user.SearchDebounceMs != nil && *user.SearchDebounceMs >= 0 {
		c.SearchDebounce = time.Duration(*user.SearchDebounceMs) * time.Millisecond
	}
	if user.FilterDebounceMs != nil && *user.FilterDebounceMs >= 0 {
		c.FilterDebounce = time.Duration(*user.FilterDebounceMs) * time.Millisecond
	}
	if user.LogLevel != nil && strings.TrimSpace(*user.LogLevel) != "" {
		c.LogLevel = strings.TrimSpace(*user.LogLevel)
	}
	if len(user.Colors) > 0 {
		c.Colors = user.Colors
	}
	c.UI = loadUISettings(path)
	return nil
}

// Scoped reports whether a pathspec limits the views.
func (c *Config) Scoped() bool {
	return c != nil && len(c.Pathspec) > 0
}

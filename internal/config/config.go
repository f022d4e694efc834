// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for hubchat.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location: ~/.hubchat/config.toml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/knowhub/hubchat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete hubchat configuration.
type Config struct {
	// DisplayName is the stored viewer identity. Empty means the client
	// prompts for a name on startup.
	DisplayName string `toml:"display_name"`

	// Profile selects the active backend profile by name.
	Profile string `toml:"profile"`

	// Profiles maps profile names to backend endpoints. The same client
	// binary talks to more than one hub deployment; each deployment is one
	// profile entry.
	Profiles map[string]ProfileConfig `toml:"profiles"`

	// Chat holds conversation behavior settings.
	Chat ChatConfig `toml:"chat"`

	// Debug enables file-backed debug logging.
	Debug bool `toml:"debug"`
}

// ProfileConfig is one backend endpoint pair.
type ProfileConfig struct {
	// GatewayURL is the REST base, e.g. "https://hub.example.com/chat".
	GatewayURL string `toml:"gateway_url"`

	// LiveURL is the websocket endpoint. When empty it is derived from
	// GatewayURL: scheme http->ws / https->wss, path /ws/input-data.
	LiveURL string `toml:"live_url"`
}

// ChatConfig contains conversation behavior settings.
type ChatConfig struct {
	// PageSize is the history page size for backward pagination.
	PageSize int `toml:"page_size"`

	// ScrollProximity is how many rows from the bottom still count as
	// "near the bottom" for autoscroll on incoming messages.
	ScrollProximity int `toml:"scroll_proximity"`

	// TypingExpirySecs is how long a peer typing indicator stays visible
	// without a follow-up frame.
	TypingExpirySecs int `toml:"typing_expiry_secs"`
}

// DefaultProfile is the profile name used when none is configured.
const DefaultProfile = "default"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Profile: DefaultProfile,
		Profiles: map[string]ProfileConfig{
			DefaultProfile: {GatewayURL: "http://localhost:8000/chat"},
		},
		Chat: ChatConfig{
			PageSize:         20,
			ScrollProximity:  5,
			TypingExpirySecs: 6,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the hubchat configuration directory (~/.hubchat).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".hubchat"), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration: defaults, then the config file when present,
// then environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		if err := loadTOML(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads the configuration from an explicit file path. The file
// must exist.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// fillDefaults repairs zero values left by a sparse config file.
func (c *Config) fillDefaults() {
	if c.Profile == "" {
		c.Profile = DefaultProfile
	}
	if c.Profiles == nil {
		c.Profiles = Default().Profiles
	}
	if c.Chat.PageSize <= 0 {
		c.Chat.PageSize = 20
	}
	if c.Chat.ScrollProximity <= 0 {
		c.Chat.ScrollProximity = 5
	}
	if c.Chat.TypingExpirySecs <= 0 {
		c.Chat.TypingExpirySecs = 6
	}
}

// Save writes the configuration to the default path with private permissions.
// The write is atomic so a crash never leaves a half-written config behind.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0o600)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variables on top of file values:
//   - HUBCHAT_NAME: overrides display_name
//   - HUBCHAT_PROFILE: overrides the active profile
//   - HUBCHAT_GATEWAY_URL: overrides the active profile's gateway_url
//   - HUBCHAT_LIVE_URL: overrides the active profile's live_url
//   - HUBCHAT_PAGE_SIZE: overrides chat.page_size
//   - HUBCHAT_DEBUG: "1" or "true" enables debug logging
func (c *Config) ApplyEnvOverrides() {
	if name := os.Getenv("HUBCHAT_NAME"); name != "" {
		c.DisplayName = name
	}
	if profile := os.Getenv("HUBCHAT_PROFILE"); profile != "" {
		c.Profile = profile
	}

	gatewayURL := os.Getenv("HUBCHAT_GATEWAY_URL")
	liveURL := os.Getenv("HUBCHAT_LIVE_URL")
	if gatewayURL != "" || liveURL != "" {
		if c.Profiles == nil {
			c.Profiles = make(map[string]ProfileConfig)
		}
		p := c.Profiles[c.Profile]
		if gatewayURL != "" {
			p.GatewayURL = gatewayURL
		}
		if liveURL != "" {
			p.LiveURL = liveURL
		}
		c.Profiles[c.Profile] = p
	}

	if size := os.Getenv("HUBCHAT_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			c.Chat.PageSize = n
		}
	}
	if debug := os.Getenv("HUBCHAT_DEBUG"); debug == "1" || strings.EqualFold(debug, "true") {
		c.Debug = true
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if _, ok := c.Profiles[c.Profile]; !ok {
		return ValidationError{
			Field:   "profile",
			Message: fmt.Sprintf("profile %q is not defined", c.Profile),
		}
	}
	for name, p := range c.Profiles {
		if p.GatewayURL == "" {
			return ValidationError{
				Field:   "profiles." + name + ".gateway_url",
				Message: "gateway_url is required",
			}
		}
		u, err := url.Parse(p.GatewayURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return ValidationError{
				Field:   "profiles." + name + ".gateway_url",
				Message: "must be an absolute http or https URL",
			}
		}
		if p.LiveURL != "" {
			lu, err := url.Parse(p.LiveURL)
			if err != nil || lu.Host == "" || (lu.Scheme != "ws" && lu.Scheme != "wss") {
				return ValidationError{
					Field:   "profiles." + name + ".live_url",
					Message: "must be an absolute ws or wss URL",
				}
			}
		}
	}
	if c.Chat.PageSize <= 0 {
		return ValidationError{Field: "chat.page_size", Message: "must be positive"}
	}
	return nil
}

// =============================================================================
// ACTIVE PROFILE
// =============================================================================

// ErrNoProfile is returned when the active profile cannot be resolved.
var ErrNoProfile = errors.New("config: active profile not found")

// ActiveProfile resolves the selected profile with its live URL filled in.
func (c *Config) ActiveProfile() (ProfileConfig, error) {
	p, ok := c.Profiles[c.Profile]
	if !ok {
		return ProfileConfig{}, ErrNoProfile
	}
	if p.LiveURL == "" {
		derived, err := DeriveLiveURL(p.GatewayURL)
		if err != nil {
			return ProfileConfig{}, err
		}
		p.LiveURL = derived
	}
	return p, nil
}

// DeriveLiveURL maps a REST gateway URL to its websocket endpoint: the scheme
// flips to ws/wss and the path becomes /ws/input-data under the same prefix.
func DeriveLiveURL(gatewayURL string) (string, error) {
	u, err := url.Parse(gatewayURL)
	if err != nil {
		return "", fmt.Errorf("config: gateway url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("config: gateway url: unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws/input-data"
	u.RawQuery = ""
	return u.String(), nil
}

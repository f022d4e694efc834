// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Chat.PageSize != 20 {
		t.Errorf("PageSize = %d, want 20", cfg.Chat.PageSize)
	}
	if cfg.Profile != DefaultProfile {
		t.Errorf("Profile = %q, want %q", cfg.Profile, DefaultProfile)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
display_name = "Alice"
profile = "work"

[profiles.work]
gateway_url = "https://hub.example.com/chat"

[chat]
page_size = 30
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DisplayName != "Alice" {
		t.Errorf("DisplayName = %q, want Alice", cfg.DisplayName)
	}
	if cfg.Chat.PageSize != 30 {
		t.Errorf("PageSize = %d, want 30", cfg.Chat.PageSize)
	}

	p, err := cfg.ActiveProfile()
	if err != nil {
		t.Fatal(err)
	}
	if p.GatewayURL != "https://hub.example.com/chat" {
		t.Errorf("GatewayURL = %q", p.GatewayURL)
	}
}

func TestLoadFromPath_SparseFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, `
[profiles.default]
gateway_url = "http://localhost:8000/chat"
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chat.PageSize != 20 || cfg.Chat.ScrollProximity != 5 {
		t.Errorf("sparse config not repaired: %+v", cfg.Chat)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			"missing active profile",
			func(c *Config) { c.Profile = "ghost" },
			"profile",
		},
		{
			"empty gateway url",
			func(c *Config) { c.Profiles["default"] = ProfileConfig{} },
			"profiles.default.gateway_url",
		},
		{
			"relative gateway url",
			func(c *Config) { c.Profiles["default"] = ProfileConfig{GatewayURL: "/chat"} },
			"profiles.default.gateway_url",
		},
		{
			"wrong live scheme",
			func(c *Config) {
				c.Profiles["default"] = ProfileConfig{
					GatewayURL: "https://hub.example.com",
					LiveURL:    "https://hub.example.com/ws",
				}
			},
			"profiles.default.live_url",
		},
		{
			"bad page size",
			func(c *Config) { c.Chat.PageSize = -1 },
			"chat.page_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("HUBCHAT_NAME", "EnvAlice")
	t.Setenv("HUBCHAT_GATEWAY_URL", "https://env.example.com/chat")
	t.Setenv("HUBCHAT_PAGE_SIZE", "50")
	t.Setenv("HUBCHAT_DEBUG", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.DisplayName != "EnvAlice" {
		t.Errorf("DisplayName = %q", cfg.DisplayName)
	}
	if cfg.Profiles[cfg.Profile].GatewayURL != "https://env.example.com/chat" {
		t.Errorf("GatewayURL = %q", cfg.Profiles[cfg.Profile].GatewayURL)
	}
	if cfg.Chat.PageSize != 50 {
		t.Errorf("PageSize = %d", cfg.Chat.PageSize)
	}
	if !cfg.Debug {
		t.Error("Debug should be enabled")
	}
}

func TestApplyEnvOverrides_SwitchesProfile(t *testing.T) {
	t.Setenv("HUBCHAT_PROFILE", "staging")
	t.Setenv("HUBCHAT_GATEWAY_URL", "https://staging.example.com/chat")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Profile != "staging" {
		t.Fatalf("Profile = %q", cfg.Profile)
	}
	if cfg.Profiles["staging"].GatewayURL != "https://staging.example.com/chat" {
		t.Errorf("staging gateway = %q", cfg.Profiles["staging"].GatewayURL)
	}
}

func TestDeriveLiveURL(t *testing.T) {
	tests := []struct {
		gateway string
		want    string
	}{
		{"http://localhost:8000/chat", "ws://localhost:8000/chat/ws/input-data"},
		{"https://hub.example.com/chat/", "wss://hub.example.com/chat/ws/input-data"},
		{"https://hub.example.com", "wss://hub.example.com/ws/input-data"},
	}

	for _, tt := range tests {
		got, err := DeriveLiveURL(tt.gateway)
		if err != nil {
			t.Fatalf("DeriveLiveURL(%q): %v", tt.gateway, err)
		}
		if got != tt.want {
			t.Errorf("DeriveLiveURL(%q) = %q, want %q", tt.gateway, got, tt.want)
		}
	}

	if _, err := DeriveLiveURL("ftp://example.com"); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}

func TestActiveProfile_DerivesLiveURL(t *testing.T) {
	cfg := Default()
	cfg.Profiles[DefaultProfile] = ProfileConfig{GatewayURL: "https://hub.example.com/chat"}

	p, err := cfg.ActiveProfile()
	if err != nil {
		t.Fatal(err)
	}
	if p.LiveURL != "wss://hub.example.com/chat/ws/input-data" {
		t.Errorf("LiveURL = %q", p.LiveURL)
	}
}

func TestActiveProfile_MissingProfile(t *testing.T) {
	cfg := Default()
	cfg.Profile = "ghost"

	if _, err := cfg.ActiveProfile(); !errors.Is(err, ErrNoProfile) {
		t.Errorf("err = %v, want ErrNoProfile", err)
	}
}

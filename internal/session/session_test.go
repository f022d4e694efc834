// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"strings"
	"testing"
)

func TestManager_StartsLoading(t *testing.T) {
	m := NewManager()
	if m.Status() != StatusLoading {
		t.Errorf("Status = %v, want loading", m.Status())
	}
	if m.Viewer() != "" {
		t.Errorf("Viewer = %q, want empty before resolution", m.Viewer())
	}
}

func TestManager_ResolveStoredName(t *testing.T) {
	m := NewManager()
	if got := m.Resolve("Alice"); got != StatusAuthenticated {
		t.Fatalf("Resolve = %v, want authenticated", got)
	}
	if m.Viewer() != "Alice" {
		t.Errorf("Viewer = %q, want Alice", m.Viewer())
	}
}

func TestManager_ResolveBlankPrompts(t *testing.T) {
	m := NewManager()
	if got := m.Resolve("   "); got != StatusUnauthenticated {
		t.Fatalf("Resolve = %v, want unauthenticated", got)
	}
	if m.Authenticated() {
		t.Error("Authenticated should be false after blank resolution")
	}
}

func TestManager_Authenticate(t *testing.T) {
	m := NewManager()
	m.Resolve("")

	if err := m.Authenticate("  Bob  "); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if m.Status() != StatusAuthenticated || m.Viewer() != "Bob" {
		t.Errorf("after Authenticate: status=%v viewer=%q", m.Status(), m.Viewer())
	}
}

func TestManager_AuthenticateEmpty(t *testing.T) {
	m := NewManager()
	if err := m.Authenticate("\t\n"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
	if m.Status() != StatusLoading {
		t.Error("failed Authenticate should not change status")
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		err   bool
	}{
		{"plain", "Alice", "Alice", false},
		{"trimmed", "  Alice ", "Alice", false},
		{"control chars stripped", "Al\x00ice\x1b", "Alice", false},
		{"unicode kept", "Renée", "Renée", false},
		{"empty", "", "", true},
		{"only whitespace", " \t ", "", true},
		{"truncated", strings.Repeat("x", MaxNameLen+10), strings.Repeat("x", MaxNameLen), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanName(tt.input)
			if tt.err {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("CleanName(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("CleanName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStatus_String(t *testing.T) {
	if StatusLoading.String() != "loading" ||
		StatusAuthenticated.String() != "authenticated" ||
		StatusUnauthenticated.String() != "unauthenticated" {
		t.Error("status names out of sync")
	}
}

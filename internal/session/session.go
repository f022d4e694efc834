// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the viewer's identity and authentication status.
package session

import (
	"errors"
	"strings"
	"sync"
	"unicode"
)

// MaxNameLen bounds the viewer display name.
const MaxNameLen = 32

// ErrEmptyName is returned when authenticating with a blank display name.
var ErrEmptyName = errors.New("session: display name is empty")

// =============================================================================
// STATUS
// =============================================================================

// Status is the session resolution state. The live channel is dialed and
// history is fetched only once the status reaches StatusAuthenticated;
// StatusLoading renders neither the prompt nor the conversation.
type Status int

const (
	// StatusLoading means identity resolution has not finished yet.
	StatusLoading Status = iota

	// StatusAuthenticated means a display name is bound to the session.
	StatusAuthenticated

	// StatusUnauthenticated means no stored identity was found and the
	// viewer must be prompted for a name.
	StatusUnauthenticated
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager holds the session status and the resolved viewer name. It starts in
// StatusLoading and moves through Resolve or Authenticate.
type Manager struct {
	mu     sync.Mutex
	status Status
	viewer string
}

// NewManager creates a manager in StatusLoading.
func NewManager() *Manager {
	return &Manager{status: StatusLoading}
}

// Status returns the current session status.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Viewer returns the authenticated display name, or "" otherwise.
func (m *Manager) Viewer() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusAuthenticated {
		return ""
	}
	return m.viewer
}

// Authenticated reports whether a viewer identity is bound.
func (m *Manager) Authenticated() bool {
	return m.Status() == StatusAuthenticated
}

// Resolve finishes identity loading with a stored name. A usable name moves
// the session to StatusAuthenticated; a blank or invalid one to
// StatusUnauthenticated so the UI prompts instead.
func (m *Manager) Resolve(stored string) Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	name, err := CleanName(stored)
	if err != nil {
		m.status = StatusUnauthenticated
		m.viewer = ""
		return m.status
	}
	m.status = StatusAuthenticated
	m.viewer = name
	return m.status
}

// Authenticate binds a viewer-entered name to the session.
func (m *Manager) Authenticate(name string) error {
	clean, err := CleanName(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = StatusAuthenticated
	m.viewer = clean
	return nil
}

// =============================================================================
// NAME VALIDATION
// =============================================================================

// CleanName normalizes a display name: surrounding whitespace is trimmed,
// control characters are stripped, and the result is capped at MaxNameLen
// runes. An empty result is an error.
func CleanName(name string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}

	clean := b.String()
	if clean == "" {
		return "", ErrEmptyName
	}

	runes := []rune(clean)
	if len(runes) > MaxNameLen {
		clean = string(runes[:MaxNameLen])
	}
	return clean, nil
}

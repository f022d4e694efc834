// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the hubchat TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/knowhub/hubchat-tui/internal/ui/styles"
	"github.com/knowhub/hubchat-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// ConnState is the live channel state shown in the status bar.
type ConnState int

const (
	ConnOffline ConnState = iota
	ConnConnecting
	ConnLive
)

// String returns the display string for the connection state.
func (s ConnState) String() string {
	switch s {
	case ConnConnecting:
		return "connecting"
	case ConnLive:
		return "live"
	default:
		return "offline"
	}
}

// indicator returns the colored dot for the connection state.
func (s ConnState) indicator() string {
	dot := lipgloss.NewStyle()
	switch s {
	case ConnLive:
		dot = dot.Foreground(styles.Emerald)
	case ConnConnecting:
		dot = dot.Foreground(styles.Amber)
	default:
		dot = dot.Foreground(styles.Rose)
	}
	return dot.Render("●")
}

// StatusBar is the one-line bar at the bottom of the chat window.
type StatusBar struct {
	Viewer       string
	Profile      string
	Conn         ConnState
	MessageCount int
	LoadingPage  bool
	Err          string
}

// Render produces the status bar at the given width.
func (b StatusBar) Render(width int) string {
	left := fmt.Sprintf("%s %s", b.Conn.indicator(), b.Conn)
	if b.Viewer != "" {
		left += "  " + b.Viewer
	}
	if b.Profile != "" {
		left += " @" + b.Profile
	}

	var right string
	switch {
	case b.Err != "":
		right = styles.ErrorText.Render(util.TruncateWidth(b.Err, width/2))
	case b.LoadingPage:
		right = "loading history..."
	default:
		right = fmt.Sprintf("%d messages", b.MessageCount)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

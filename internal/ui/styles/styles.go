// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// SHARED STYLES
// =============================================================================

// Header is the one-line title bar at the top of the window.
var Header = lipgloss.NewStyle().
	Foreground(Cyan).
	Background(SurfaceDim).
	Bold(true).
	Padding(0, 1)

// StatusBar is the one-line bar at the bottom of the window.
var StatusBar = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Background(SurfaceDim).
	Padding(0, 1)

// OwnBubble wraps the viewer's outgoing messages.
var OwnBubble = lipgloss.NewStyle().
	Foreground(OwnBubbleFg).
	Background(OwnBubbleBg).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(OwnBubbleBorder).
	Padding(0, 1)

// PeerBubble wraps messages from other senders.
var PeerBubble = lipgloss.NewStyle().
	Foreground(PeerBubbleFg).
	Background(PeerBubbleBg).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(PeerBubbleBorder).
	Padding(0, 1)

// SenderLabel renders the sender name above a peer bubble.
var SenderLabel = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Bold(true)

// Timestamp renders the HH:MM marker beside a bubble.
var Timestamp = lipgloss.NewStyle().
	Foreground(TextMuted)

// Typing renders the ephemeral "is typing..." line.
var Typing = lipgloss.NewStyle().
	Foreground(TextMuted).
	Italic(true)

// MediaLabel renders voice note and file attachment markers.
var MediaLabel = lipgloss.NewStyle().
	Foreground(MediaAccent).
	Bold(true)

// ErrorText renders inline error lines.
var ErrorText = lipgloss.NewStyle().
	Foreground(Rose)

// Hint renders key hints and prompts.
var Hint = lipgloss.NewStyle().
	Foreground(TextMuted)

// Welcome renders the banner shown above an empty conversation.
var Welcome = lipgloss.NewStyle().
	Foreground(Cyan).
	Bold(true).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Overlay).
	Padding(1, 3)

// InputBox frames the composer text input.
var InputBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Overlay).
	Padding(0, 1)

// =============================================================================
// TERMINAL CAPABILITIES
// =============================================================================

// HasDarkBackground reports the terminal background, used by lipgloss
// adaptive colors and available for direct checks.
func HasDarkBackground() bool {
	return termenv.HasDarkBackground()
}

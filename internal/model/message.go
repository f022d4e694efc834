// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the gateway, the live
// channel and the synchronization engine.
package model

// =============================================================================
// CANONICAL MESSAGE
// =============================================================================

// CanonicalMessage is the engine's normalized, render-ready message. It is
// derived deterministically from a RawRecord plus the viewer's identity and
// the gateway base URL; see Normalizer.
type CanonicalMessage struct {
	// Identity
	ID     ID
	Sender string

	// Display
	DisplayTime string // localized hour:minute, empty when created_at absent
	IsOwn       bool

	// Payload
	Kind     Kind
	Text     string
	VoiceURL string
	FileURL  string
	Filename string
}

// IsTyping reports whether the message is an ephemeral typing indicator.
func (m *CanonicalMessage) IsTyping() bool {
	return m.Kind == KindTyping
}

// Preview returns a short single-line summary for the debug log. Uses
// rune-based truncation to avoid splitting multi-byte characters.
func (m *CanonicalMessage) Preview(maxLen int) string {
	var content string
	switch m.Kind {
	case KindVoice:
		content = "[voice note]"
	case KindFile:
		content = "[file] " + m.Filename
	case KindTyping:
		content = m.Sender + " is typing..."
	default:
		content = m.Text
	}
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

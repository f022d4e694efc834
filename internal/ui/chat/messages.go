// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the hubchat TUI.
//
// This file defines the Bubble Tea message types used by the chat interface,
// organized by concern: session resolution, history pagination, the live
// channel, and message submission.
package chat

import (
	"time"

	"github.com/knowhub/hubchat-tui/internal/engine"
	"github.com/knowhub/hubchat-tui/internal/model"
	"github.com/knowhub/hubchat-tui/internal/session"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionResolvedMsg reports the result of identity resolution at startup.
type SessionResolvedMsg struct {
	Status session.Status
	Viewer string
}

// =============================================================================
// PAGINATION MESSAGES
// =============================================================================

// PageLoadedMsg delivers one fetched history page.
type PageLoadedMsg struct {
	Req     engine.PageRequest
	Records []model.RawRecord
}

// PageFailedMsg reports a failed history fetch.
type PageFailedMsg struct {
	Req engine.PageRequest
	Err error
}

// =============================================================================
// LIVE CHANNEL MESSAGES
// =============================================================================

// LiveConnectedMsg signals that the live channel dial succeeded.
type LiveConnectedMsg struct{}

// LiveFrameMsg delivers one raw frame from the live channel.
type LiveFrameMsg struct {
	Data []byte
}

// LiveErrorMsg reports a dial or read failure on the live channel.
type LiveErrorMsg struct {
	Err error
}

// =============================================================================
// SUBMISSION MESSAGES
// =============================================================================

// SendResultMsg reports the outcome of a gateway submission. On success
// Record is the persisted record as issued by the backend.
type SendResultMsg struct {
	Record model.RawRecord
	Err    error
}

// =============================================================================
// TIMER MESSAGES
// =============================================================================

// TypingExpiryTickMsg drives expiry of stale peer typing indicators.
type TypingExpiryTickMsg struct {
	Time time.Time
}

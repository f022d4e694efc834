// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file contains the Bubble Tea update loop for the chat view. All
// engine mutations happen here, on the single update goroutine.
package chat

import (
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/knowhub/hubchat-tui/internal/config"
	"github.com/knowhub/hubchat-tui/internal/session"
	"github.com/knowhub/hubchat-tui/internal/ui/components"
)

// Update routes messages to the appropriate handler.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)

	case SessionResolvedMsg:
		return m.handleSessionResolved(msg)

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)
	case PageFailedMsg:
		return m.handlePageFailed(msg)

	case LiveConnectedMsg:
		m.conn = components.ConnLive
		return m, listenLiveCmd(m.eng.Channel())
	case LiveFrameMsg:
		return m.handleLiveFrame(msg)
	case LiveErrorMsg:
		return m.handleLiveError(msg)

	case SendResultMsg:
		return m.handleSendResult(msg)

	case TypingExpiryTickMsg:
		return m.handleTypingExpiry(msg)
	}

	// Remaining messages (cursor blink and friends) go to the inputs.
	var cmd tea.Cmd
	if m.sess.Authenticated() {
		m.composer, cmd = m.composer.Update(msg)
	} else {
		m.nameInput, cmd = m.nameInput.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// LAYOUT AND KEYS
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// header (1) + input (3) + status (1)
	viewportHeight := m.height - 5
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.Width = m.width
	m.viewport.Height = viewportHeight
	m.composer.Width = m.width - 6

	m.refreshViewport(atBottom)
	m.ready = true
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.eng.Dispose()
		return m, tea.Quit
	}

	if !m.sess.Authenticated() {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, m.maybeLoadOlder()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
		return m, m.maybeLoadOlder()
	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	before := m.composer.Value()
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)

	// A keystroke that changed the draft broadcasts a typing frame, subject
	// to the engine's rate limit.
	if m.composer.Value() != before {
		if rec, ok := m.eng.TypingBroadcast(); ok {
			return m, tea.Batch(cmd, publishTypingCmd(m.eng.Channel(), rec))
		}
	}
	return m, cmd
}

// handlePromptKey drives the name prompt shown before authentication.
func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		name := m.nameInput.Value()
		if err := m.sess.Authenticate(name); err != nil {
			if err == session.ErrEmptyName {
				m.lastErr = "enter a name to join"
			} else {
				m.lastErr = err.Error()
			}
			return m, nil
		}
		m.lastErr = ""
		m.nameInput.Blur()

		m.cfg.DisplayName = m.sess.Viewer()
		if err := config.Save(m.cfg); err != nil {
			log.Printf("save config: %v", err)
		}
		return m, m.startConversation()
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleSubmit dispatches the composer draft: /voice and /file upload local
// media, anything else is a text message.
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	draft := strings.TrimSpace(m.composer.Value())
	if draft == "" {
		return m, nil
	}
	m.composer.Reset()
	m.lastErr = ""

	gw := m.eng.Gateway()
	viewer := m.sess.Viewer()

	switch {
	case strings.HasPrefix(draft, "/voice "):
		path := strings.TrimSpace(strings.TrimPrefix(draft, "/voice "))
		return m, sendVoiceCmd(gw, viewer, path)
	case strings.HasPrefix(draft, "/file "):
		path := strings.TrimSpace(strings.TrimPrefix(draft, "/file "))
		return m, sendFileCmd(gw, viewer, path)
	}
	return m, sendTextCmd(gw, viewer, draft)
}

// maybeLoadOlder claims the next history page when the viewer has scrolled
// to the top of the loaded log.
func (m *Model) maybeLoadOlder() tea.Cmd {
	if !m.viewport.AtTop() {
		return nil
	}
	req, ok := m.eng.BeginPageLoad()
	if !ok {
		return nil
	}
	m.loadingPage = true
	return loadPageCmd(m.eng.Gateway(), req)
}

// =============================================================================
// SESSION
// =============================================================================

func (m *Model) handleSessionResolved(msg SessionResolvedMsg) (tea.Model, tea.Cmd) {
	if msg.Status == session.StatusAuthenticated {
		return m, m.startConversation()
	}
	// Unauthenticated: the name prompt is already focused.
	return m, nil
}

// =============================================================================
// PAGINATION
// =============================================================================

func (m *Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingPage = false
	res := m.eng.ApplyPage(msg.Req, msg.Records)
	if res.FetchedCount == 0 {
		return m, nil
	}

	// The first page lands at the bottom; later pages keep the reading
	// position anchored.
	if msg.Req.Offset == 0 {
		m.refreshViewport(true)
	} else {
		m.refreshAfterPrepend()
	}
	return m, nil
}

func (m *Model) handlePageFailed(msg PageFailedMsg) (tea.Model, tea.Cmd) {
	m.loadingPage = false
	m.eng.FailPageLoad(msg.Req, msg.Err)
	m.lastErr = "history fetch failed"
	return m, nil
}

// =============================================================================
// LIVE CHANNEL
// =============================================================================

func (m *Model) handleLiveFrame(msg LiveFrameMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{listenLiveCmd(m.eng.Channel())}

	diff, ok := m.eng.IngestFrame(msg.Data)
	if ok && diff.Appended != nil {
		log.Printf("live: %s", diff.Appended.Preview(80))
		if diff.Appended.IsTyping() {
			m.typingSeen[diff.Appended.Sender] = time.Now()
			if !m.typingTicking {
				m.typingTicking = true
				cmds = append(cmds, typingExpiryTickCmd())
			}
		}
		m.refreshAfterAppend(diff.Appended.IsOwn)
	}
	return m, tea.Batch(cmds...)
}

// handleLiveError marks the channel offline and stays there. There is no
// reconnect policy: a fresh dial happens only on the next transition into an
// authenticated session, via startConversation.
func (m *Model) handleLiveError(msg LiveErrorMsg) (tea.Model, tea.Cmd) {
	m.conn = components.ConnOffline
	log.Printf("live channel: %v", msg.Err)
	return m, nil
}

// =============================================================================
// SUBMISSION
// =============================================================================

func (m *Model) handleSendResult(msg SendResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.lastErr = "send failed: " + msg.Err.Error()
		return m, nil
	}

	if _, ok := m.eng.AcceptSent(msg.Record); ok {
		// Own message: always land at the bottom.
		m.refreshViewport(true)
	}
	return m, nil
}

// =============================================================================
// TYPING EXPIRY
// =============================================================================

func (m *Model) handleTypingExpiry(msg TypingExpiryTickMsg) (tea.Model, tea.Cmd) {
	expired := false
	for sender, seen := range m.typingSeen {
		if msg.Time.Sub(seen) >= m.typingExpiry() {
			if _, ok := m.eng.Store().RemoveTyping(sender); ok {
				expired = true
			}
			delete(m.typingSeen, sender)
		}
	}
	if expired {
		atBottom := m.viewport.AtBottom()
		m.refreshViewport(atBottom)
	}

	if len(m.typingSeen) == 0 {
		m.typingTicking = false
		return m, nil
	}
	return m, typingExpiryTickCmd()
}

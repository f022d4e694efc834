// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file contains the rendering logic for the chat view: the name prompt,
// the conversation log with its message bubbles, and the surrounding chrome.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/knowhub/hubchat-tui/internal/model"
	"github.com/knowhub/hubchat-tui/internal/ui/components"
	"github.com/knowhub/hubchat-tui/internal/ui/styles"
	"github.com/knowhub/hubchat-tui/internal/util"
)

// maxFilenameWidth bounds attachment names in bubbles.
const maxFilenameWidth = 40

// View renders the whole window.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if !m.sess.Authenticated() {
		return m.renderPrompt()
	}
	return m.renderChat()
}

// =============================================================================
// NAME PROMPT
// =============================================================================

func (m *Model) renderPrompt() string {
	var b strings.Builder
	b.WriteString(components.WelcomeBanner("", m.width))
	b.WriteString("\n\n")

	prompt := "What should we call you?\n\n" + m.nameInput.View()
	if m.lastErr != "" {
		prompt += "\n" + styles.ErrorText.Render(m.lastErr)
	}
	box := styles.InputBox.Width(min(m.width-4, 50)).Render(prompt)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// =============================================================================
// CHAT LAYOUT
// =============================================================================

func (m *Model) renderChat() string {
	header := styles.Header.Width(m.width).Render("Knowledge Hub")
	input := styles.InputBox.Width(m.width - 2).Render(m.composer.View())
	status := components.StatusBar{
		Viewer:       m.sess.Viewer(),
		Profile:      m.cfg.Profile,
		Conn:         m.conn,
		MessageCount: m.messageCount(),
		LoadingPage:  m.loadingPage,
		Err:          m.lastErr,
	}.Render(m.width)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		input,
		status,
	)
}

// messageCount counts real messages, excluding typing indicators.
func (m *Model) messageCount() int {
	n := 0
	for _, msg := range m.eng.Messages() {
		if !msg.IsTyping() {
			n++
		}
	}
	return n
}

// =============================================================================
// CONVERSATION LOG
// =============================================================================

// renderConversation renders the full message log for the viewport.
func (m *Model) renderConversation() string {
	msgs := m.eng.Messages()
	if m.messageCount() == 0 {
		return "\n" + components.WelcomeBanner(m.sess.Viewer(), m.contentWidth())
	}

	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		parts = append(parts, m.renderMessage(msg))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) contentWidth() int {
	if m.width > 0 {
		return m.width
	}
	return 80
}

// renderMessage renders one log entry: a typing line, or a bubble aligned by
// ownership with sender and timestamp context.
func (m *Model) renderMessage(msg model.CanonicalMessage) string {
	width := m.contentWidth()

	if msg.IsTyping() {
		return styles.Typing.Render(msg.Sender + " is typing...")
	}

	bubbleWidth := width * 2 / 3
	if bubbleWidth < 20 {
		bubbleWidth = width - 2
	}

	body := m.renderBody(msg)
	var bubble string
	if msg.IsOwn {
		bubble = styles.OwnBubble.MaxWidth(bubbleWidth).Render(body)
	} else {
		bubble = styles.PeerBubble.MaxWidth(bubbleWidth).Render(body)
	}

	var head string
	if !msg.IsOwn {
		head = styles.SenderLabel.Render(msg.Sender)
	}
	if msg.DisplayTime != "" {
		stamp := styles.Timestamp.Render(msg.DisplayTime)
		if head != "" {
			head += " " + stamp
		} else {
			head = stamp
		}
	}

	block := bubble
	if head != "" {
		block = head + "\n" + bubble
	}
	if msg.IsOwn {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}
	return block
}

// renderBody renders the bubble interior for each message kind.
func (m *Model) renderBody(msg model.CanonicalMessage) string {
	switch msg.Kind {
	case model.KindVoice:
		label := styles.MediaLabel.Render("[voice note]")
		if msg.VoiceURL != "" {
			return label + "\n" + styles.Hint.Render(msg.VoiceURL)
		}
		return label
	case model.KindFile:
		name := util.TruncateWidth(msg.Filename, maxFilenameWidth)
		if name == "" {
			name = "attachment"
		}
		label := styles.MediaLabel.Render("[file] " + name)
		if msg.FileURL != "" {
			return label + "\n" + styles.Hint.Render(msg.FileURL)
		}
		return label
	}
	return msg.Text
}

// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file holds the chat model state and construction. Update logic lives
// in update.go, rendering in view.go.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/knowhub/hubchat-tui/internal/config"
	"github.com/knowhub/hubchat-tui/internal/engine"
	"github.com/knowhub/hubchat-tui/internal/gateway"
	"github.com/knowhub/hubchat-tui/internal/live"
	"github.com/knowhub/hubchat-tui/internal/session"
	"github.com/knowhub/hubchat-tui/internal/ui/components"
)

// composerCharLimit bounds one outgoing text message.
const composerCharLimit = 2000

// Model is the top-level Bubble Tea model for the chat client.
type Model struct {
	cfg     *config.Config
	profile config.ProfileConfig

	sess *session.Manager
	eng  *engine.Engine

	viewport  viewport.Model
	composer  textinput.Model
	nameInput textinput.Model
	keys      KeyMap
	anchor    Anchor

	width  int
	height int
	ready  bool

	conn        components.ConnState
	loadingPage bool
	lastErr     string

	// typingSeen tracks when each peer's typing indicator last refreshed,
	// for expiry of indicators whose sender never followed up.
	typingSeen    map[string]time.Time
	typingTicking bool
}

// New builds the chat model from loaded configuration.
func New(cfg *config.Config) (*Model, error) {
	profile, err := cfg.ActiveProfile()
	if err != nil {
		return nil, err
	}

	gw := gateway.NewClient(profile.GatewayURL)
	ch := live.NewChannel(profile.LiveURL)

	composer := textinput.New()
	composer.Placeholder = "Message"
	composer.CharLimit = composerCharLimit
	composer.Prompt = "> "

	nameInput := textinput.New()
	nameInput.Placeholder = "Your name"
	nameInput.CharLimit = session.MaxNameLen
	nameInput.Prompt = "> "
	nameInput.Focus()

	vp := viewport.New(80, 20)

	return &Model{
		cfg:        cfg,
		profile:    profile,
		sess:       session.NewManager(),
		eng:        engine.New(gw, ch, cfg.Chat.PageSize),
		viewport:   vp,
		composer:   composer,
		nameInput:  nameInput,
		keys:       DefaultKeyMap(),
		anchor:     Anchor{Proximity: cfg.Chat.ScrollProximity},
		typingSeen: make(map[string]time.Time),
	}, nil
}

// Init starts identity resolution and cursor blinking.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		resolveSessionCmd(m.sess, m.cfg),
	)
}

// startConversation binds the engine to the authenticated viewer and kicks
// off the first history page and the live channel dial.
func (m *Model) startConversation() tea.Cmd {
	m.eng.Start(m.sess.Viewer())
	m.composer.Focus()
	m.conn = components.ConnConnecting
	m.refreshViewport(true)

	cmds := []tea.Cmd{connectLiveCmd(m.eng.Channel())}
	if req, ok := m.eng.BeginPageLoad(); ok {
		m.loadingPage = true
		cmds = append(cmds, loadPageCmd(m.eng.Gateway(), req))
	}
	return tea.Batch(cmds...)
}

// typingExpiry is how long a peer typing indicator survives without a
// follow-up frame.
func (m *Model) typingExpiry() time.Duration {
	return time.Duration(m.cfg.Chat.TypingExpirySecs) * time.Second
}

// refreshViewport re-renders the conversation into the viewport. When follow
// is set the view snaps to the bottom; otherwise the offset is left alone.
func (m *Model) refreshViewport(follow bool) {
	m.viewport.SetContent(m.renderConversation())
	if follow {
		m.viewport.GotoBottom()
	}
}

// refreshAfterPrepend re-renders after a history page was inserted at the
// head, shifting the offset so the previously visible line stays in place.
func (m *Model) refreshAfterPrepend() {
	before := m.viewport.TotalLineCount()
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.renderConversation())
	added := m.viewport.TotalLineCount() - before
	m.viewport.SetYOffset(m.anchor.AfterPrepend(offset, added))
}

// refreshAfterAppend re-renders after a message arrived at the tail,
// following to the bottom per the anchor rules.
func (m *Model) refreshAfterAppend(own bool) {
	offset := m.viewport.YOffset
	total := m.viewport.TotalLineCount()
	follow := m.anchor.ShouldFollow(offset, m.viewport.Height, total, own)
	m.refreshViewport(follow)
}

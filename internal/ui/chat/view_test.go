// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	"github.com/knowhub/hubchat-tui/internal/config"
	"github.com/knowhub/hubchat-tui/internal/model"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m, err := New(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	m.width = 80
	m.height = 24
	m.ready = true
	return m
}

func TestRenderMessage_Typing(t *testing.T) {
	m := newTestModel(t)
	out := m.renderMessage(model.CanonicalMessage{
		Sender: "Bob",
		Kind:   model.KindTyping,
	})
	if !strings.Contains(out, "Bob is typing...") {
		t.Errorf("typing line missing: %q", out)
	}
}

func TestRenderMessage_PeerShowsSenderAndTime(t *testing.T) {
	m := newTestModel(t)
	out := m.renderMessage(model.CanonicalMessage{
		Sender:      "Bob",
		DisplayTime: "14:05",
		Kind:        model.KindText,
		Text:        "hello there",
	})
	for _, want := range []string{"Bob", "14:05", "hello there"} {
		if !strings.Contains(out, want) {
			t.Errorf("peer message missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMessage_OwnOmitsSenderLabel(t *testing.T) {
	m := newTestModel(t)
	out := m.renderMessage(model.CanonicalMessage{
		Sender: "Alice",
		IsOwn:  true,
		Kind:   model.KindText,
		Text:   "mine",
	})
	if strings.Contains(out, "Alice") {
		t.Errorf("own bubble should not repeat the viewer's name:\n%s", out)
	}
	if !strings.Contains(out, "mine") {
		t.Errorf("own bubble missing body:\n%s", out)
	}
}

func TestRenderBody_MediaKinds(t *testing.T) {
	m := newTestModel(t)

	voice := m.renderBody(model.CanonicalMessage{
		Kind:     model.KindVoice,
		VoiceURL: "https://hub.example.com/media/v.ogg",
	})
	if !strings.Contains(voice, "[voice note]") {
		t.Errorf("voice body missing label: %q", voice)
	}

	file := m.renderBody(model.CanonicalMessage{
		Kind:     model.KindFile,
		Filename: "report.pdf",
		FileURL:  "https://hub.example.com/media/report.pdf",
	})
	if !strings.Contains(file, "[file] report.pdf") {
		t.Errorf("file body missing label: %q", file)
	}

	anon := m.renderBody(model.CanonicalMessage{Kind: model.KindFile})
	if !strings.Contains(anon, "attachment") {
		t.Errorf("unnamed file should fall back to attachment: %q", anon)
	}
}

func TestRenderConversation_EmptyShowsWelcome(t *testing.T) {
	m := newTestModel(t)
	m.sess.Authenticate("Alice")
	m.eng.Start("Alice")

	out := m.renderConversation()
	if !strings.Contains(out, "Welcome to Knowledge Hub") {
		t.Errorf("empty conversation should show the welcome banner:\n%s", out)
	}
}

func TestMessageCount_ExcludesTyping(t *testing.T) {
	m := newTestModel(t)
	m.sess.Authenticate("Alice")
	m.eng.Start("Alice")

	m.eng.Ingest(model.RawRecord{
		ID:         model.NewNumericID(1),
		SenderName: "Bob",
		Type:       model.KindText,
		Content:    "hi",
	})
	m.eng.Ingest(model.NewTypingRecord("t1", "Bob"))

	if got := m.messageCount(); got != 1 {
		t.Errorf("messageCount = %d, want 1", got)
	}
}

func TestView_PromptBeforeAuthentication(t *testing.T) {
	m := newTestModel(t)
	m.sess.Resolve("")

	out := m.View()
	if !strings.Contains(out, "What should we call you?") {
		t.Errorf("prompt view missing question:\n%s", out)
	}
}

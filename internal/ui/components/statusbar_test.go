// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
)

func TestConnState_String(t *testing.T) {
	tests := []struct {
		state ConnState
		want  string
	}{
		{ConnOffline, "offline"},
		{ConnConnecting, "connecting"},
		{ConnLive, "live"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStatusBar_Render(t *testing.T) {
	bar := StatusBar{
		Viewer:       "Alice",
		Profile:      "work",
		Conn:         ConnLive,
		MessageCount: 12,
	}

	out := bar.Render(80)
	for _, want := range []string{"live", "Alice", "@work", "12 messages"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar missing %q: %q", want, out)
		}
	}
}

func TestStatusBar_ErrorWinsOverCount(t *testing.T) {
	bar := StatusBar{Conn: ConnOffline, MessageCount: 3, Err: "send failed"}

	out := bar.Render(80)
	if !strings.Contains(out, "send failed") {
		t.Errorf("status bar should show the error: %q", out)
	}
	if strings.Contains(out, "3 messages") {
		t.Errorf("error should replace the message count: %q", out)
	}
}

func TestStatusBar_LoadingIndicator(t *testing.T) {
	bar := StatusBar{Conn: ConnConnecting, LoadingPage: true}

	out := bar.Render(60)
	if !strings.Contains(out, "loading history...") {
		t.Errorf("status bar should show loading marker: %q", out)
	}
}

func TestWelcomeBanner(t *testing.T) {
	out := WelcomeBanner("Alice", 80)
	if !strings.Contains(out, "Welcome to Knowledge Hub, Alice") {
		t.Errorf("banner missing greeting: %q", out)
	}

	anon := WelcomeBanner("", 80)
	if !strings.Contains(anon, "Welcome to Knowledge Hub") {
		t.Errorf("banner missing greeting: %q", anon)
	}
}

// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"testing"

	"github.com/knowhub/hubchat-tui/internal/ui/components"
)

func TestLiveError_NoRedial(t *testing.T) {
	m := newTestModel(t)
	m.sess.Authenticate("Alice")
	m.eng.Start("Alice")
	m.conn = components.ConnLive

	// A dropped connection goes offline and stays there: no timer, no
	// redial command, even while the session remains authenticated.
	_, cmd := m.Update(LiveErrorMsg{Err: errors.New("read frame: connection reset")})
	if cmd != nil {
		t.Fatal("live channel failure must not schedule a reconnect")
	}
	if m.conn != components.ConnOffline {
		t.Errorf("conn = %v, want offline", m.conn)
	}

	// Frames can no longer arrive, but the session itself is untouched.
	if !m.sess.Authenticated() {
		t.Error("losing the live channel must not tear down the session")
	}
}

func TestLiveError_RedialOnlyOnAuthTransition(t *testing.T) {
	m := newTestModel(t)
	m.sess.Authenticate("Alice")
	m.eng.Start("Alice")

	if _, cmd := m.Update(LiveErrorMsg{Err: errors.New("dial: refused")}); cmd != nil {
		t.Fatal("no command may follow a live error")
	}

	// The next transition into an authenticated session dials again.
	cmd := m.startConversation()
	if cmd == nil {
		t.Fatal("authentication transition should start the conversation")
	}
	if m.conn != components.ConnConnecting {
		t.Errorf("conn = %v, want connecting", m.conn)
	}
}

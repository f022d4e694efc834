// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file contains the Bubble Tea commands that perform network I/O for the
// chat view. Commands run in their own goroutines and re-enter the model only
// through the messages they return.
package chat

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/knowhub/hubchat-tui/internal/config"
	"github.com/knowhub/hubchat-tui/internal/engine"
	"github.com/knowhub/hubchat-tui/internal/gateway"
	"github.com/knowhub/hubchat-tui/internal/live"
	"github.com/knowhub/hubchat-tui/internal/model"
	"github.com/knowhub/hubchat-tui/internal/session"
)

// typingExpiryTickInterval is how often stale typing indicators are checked.
const typingExpiryTickInterval = time.Second

// resolveSessionCmd finishes identity loading from the stored configuration.
func resolveSessionCmd(mgr *session.Manager, cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		status := mgr.Resolve(cfg.DisplayName)
		return SessionResolvedMsg{Status: status, Viewer: mgr.Viewer()}
	}
}

// loadPageCmd fetches one history page for a claimed page request.
func loadPageCmd(gw *gateway.Client, req engine.PageRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()

		records, err := gw.FetchPage(ctx, req.Limit, req.Offset)
		if err != nil {
			return PageFailedMsg{Req: req, Err: err}
		}
		return PageLoadedMsg{Req: req, Records: records}
	}
}

// connectLiveCmd dials the live channel.
func connectLiveCmd(ch *live.Channel) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), live.DialTimeout)
		defer cancel()

		if err := ch.Connect(ctx); err != nil {
			return LiveErrorMsg{Err: err}
		}
		return LiveConnectedMsg{}
	}
}

// listenLiveCmd blocks on the next live frame. The update loop re-issues it
// after each frame so exactly one reader exists per connection.
func listenLiveCmd(ch *live.Channel) tea.Cmd {
	return func() tea.Msg {
		data, err := ch.ReadFrame()
		if err != nil {
			return LiveErrorMsg{Err: err}
		}
		return LiveFrameMsg{Data: data}
	}
}

// sendTextCmd persists a text message through the gateway.
func sendTextCmd(gw *gateway.Client, sender, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()

		rec, err := gw.SendText(ctx, sender, content)
		return SendResultMsg{Record: rec, Err: err}
	}
}

// sendVoiceCmd uploads a voice note from a local file.
func sendVoiceCmd(gw *gateway.Client, sender, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return SendResultMsg{Err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()

		rec, err := gw.SendVoice(ctx, sender, filepath.Base(path), f)
		return SendResultMsg{Record: rec, Err: err}
	}
}

// sendFileCmd uploads a file attachment from a local file.
func sendFileCmd(gw *gateway.Client, sender, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return SendResultMsg{Err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()

		rec, err := gw.SendFile(ctx, sender, filepath.Base(path), f)
		return SendResultMsg{Record: rec, Err: err}
	}
}

// publishTypingCmd broadcasts an ephemeral typing record. Best effort: a
// closed channel or write failure is silent, typing frames carry no state.
func publishTypingCmd(ch *live.Channel, rec model.RawRecord) tea.Cmd {
	return func() tea.Msg {
		_ = ch.Publish(rec)
		return nil
	}
}

// typingExpiryTickCmd drives the stale-indicator sweep.
func typingExpiryTickCmd() tea.Cmd {
	return tea.Tick(typingExpiryTickInterval, func(t time.Time) tea.Msg {
		return TypingExpiryTickMsg{Time: t}
	})
}

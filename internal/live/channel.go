// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package live implements the persistent broadcast connection to the
// Knowledge Hub websocket relay.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/knowhub/hubchat-tui/internal/model"
)

// DialTimeout bounds the websocket handshake.
const DialTimeout = 10 * time.Second

// Error variables for channel lifecycle faults.
var (
	// ErrNotOpen indicates a read or publish was attempted while the
	// connection is not in the Open state.
	ErrNotOpen = errors.New("live channel not open")

	// ErrAlreadyConnected indicates Connect was called on an open channel.
	ErrAlreadyConnected = errors.New("live channel already connected")
)

// =============================================================================
// STATE
// =============================================================================

// State is the connection lifecycle state.
type State int

const (
	StateClosed State = iota
	StateConnecting
	StateOpen
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "closed"
	}
}

// =============================================================================
// CHANNEL
// =============================================================================

// Channel is one websocket connection to the broadcast relay. A Channel is
// single-use: after it closes, dial a new one.
//
// One goroutine may block in ReadFrame while another calls Publish or Close;
// the mutex guards state and writes, never the read path.
type Channel struct {
	url string

	mu    sync.Mutex
	state State
	conn  *websocket.Conn
}

// NewChannel creates a channel for the given websocket URL in the Closed
// state. No network activity happens until Connect.
func NewChannel(url string) *Channel {
	return &Channel{url: url}
}

// URL returns the websocket URL this channel dials.
func (c *Channel) URL() string {
	return c.url
}

// State returns the current lifecycle state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect dials the relay. On success the channel is Open; on failure it
// returns to Closed. Calling Connect on an already-open channel is an error;
// tear down and dial a fresh Channel instead.
func (c *Channel) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateClosed {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.state = StateConnecting
	c.mu.Unlock()

	dialer := websocket.Dialer{HandshakeTimeout: DialTimeout}
	conn, _, err := dialer.DialContext(ctx, c.url, nil)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateClosed
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	// Close may have raced the dial; honor the teardown.
	if c.state != StateConnecting {
		conn.Close()
		return ErrNotOpen
	}
	c.conn = conn
	c.state = StateOpen
	return nil
}

// ReadFrame blocks until the next frame arrives and returns its payload.
// Any read error closes the channel; the caller must not retry.
func (c *Channel) ReadFrame() ([]byte, error) {
	c.mu.Lock()
	conn := c.conn
	open := c.state == StateOpen
	c.mu.Unlock()

	if !open || conn == nil {
		return nil, ErrNotOpen
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return data, nil
}

// Publish broadcasts a record, best-effort. When the channel is not Open the
// record is dropped silently: the record is already durably persisted via the
// gateway, so a missed publish only delays other viewers.
func (c *Channel) Publish(rec model.RawRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateOpen || c.conn == nil {
		return nil
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("publish record: %w", err)
	}
	return nil
}

// Close tears the connection down deterministically and moves the channel to
// Closed. Safe to call from any state and more than once.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateClosed
	if c.conn == nil {
		return nil
	}
	conn := c.conn
	c.conn = nil
	return conn.Close()
}

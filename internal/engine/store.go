// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine implements the message synchronization engine.
package engine

import (
	"github.com/knowhub/hubchat-tui/internal/model"
)

// =============================================================================
// DIFF TYPE
// =============================================================================

// Diff describes one store mutation step. A single step can both remove a
// superseded typing entry and append its replacement, so subscribers always
// see the two as one update.
type Diff struct {
	// Prepended is the number of messages inserted at the head of the log.
	Prepended int

	// Appended is the message added at the tail, or nil.
	Appended *model.CanonicalMessage

	// Removed is the index of the entry removed before the append took
	// place, or -1 when nothing was removed.
	Removed int
}

// Listener receives store diffs in mutation order.
type Listener func(Diff)

// =============================================================================
// STORE
// =============================================================================

// Store is the ordered message log. Placement reflects discovery order, not
// created_at order: pages of older history are prepended ahead of everything
// currently held, even live messages that arrived before the page resolved.
//
// The store is mechanical; the Engine enforces the duplicate-id and
// one-typing-entry-per-sender invariants before mutating it.
type Store struct {
	messages  []model.CanonicalMessage
	listeners map[int]Listener
	nextID    int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		listeners: make(map[int]Listener),
	}
}

// Messages returns the log in conversation order. The slice is shared with
// the store; callers must treat it as read-only and re-fetch after mutations.
func (s *Store) Messages() []model.CanonicalMessage {
	return s.messages
}

// Len returns the number of entries in the log.
func (s *Store) Len() int {
	return len(s.messages)
}

// Subscribe registers a listener for future diffs and returns a token for
// Unsubscribe.
func (s *Store) Subscribe(l Listener) int {
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return id
}

// Unsubscribe removes a listener registered with Subscribe.
func (s *Store) Unsubscribe(token int) {
	delete(s.listeners, token)
}

// notify delivers a diff to every listener.
func (s *Store) notify(d Diff) {
	for _, l := range s.listeners {
		l(d)
	}
}

// =============================================================================
// MUTATIONS
// =============================================================================

// PrependBatch inserts a batch, already in ascending conversation order, at
// the head of the log.
func (s *Store) PrependBatch(batch []model.CanonicalMessage) Diff {
	if len(batch) == 0 {
		return Diff{Removed: -1}
	}
	merged := make([]model.CanonicalMessage, 0, len(batch)+len(s.messages))
	merged = append(merged, batch...)
	merged = append(merged, s.messages...)
	s.messages = merged

	d := Diff{Prepended: len(batch), Removed: -1}
	s.notify(d)
	return d
}

// AppendReplacingTyping removes the sender's live typing entry, when one
// exists, and appends msg at the tail. This is the single mutation step for
// both typing frames (newest indicator replaces oldest) and real messages
// (a real message supersedes the sender's typing indicator).
func (s *Store) AppendReplacingTyping(sender string, msg model.CanonicalMessage) Diff {
	removed := -1
	for i := range s.messages {
		if s.messages[i].Kind == model.KindTyping && s.messages[i].Sender == sender {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			removed = i
			break
		}
	}
	s.messages = append(s.messages, msg)

	appended := s.messages[len(s.messages)-1]
	d := Diff{Appended: &appended, Removed: removed}
	s.notify(d)
	return d
}

// RemoveTyping removes the sender's typing entry without appending anything.
// Used by the UI's stale-indicator expiry; returns false when the sender has
// no live indicator.
func (s *Store) RemoveTyping(sender string) (Diff, bool) {
	for i := range s.messages {
		if s.messages[i].Kind == model.KindTyping && s.messages[i].Sender == sender {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			d := Diff{Removed: i}
			s.notify(d)
			return d, true
		}
	}
	return Diff{Removed: -1}, false
}

// TypingSenders returns the senders with a live typing indicator, in log
// order.
func (s *Store) TypingSenders() []string {
	var senders []string
	for i := range s.messages {
		if s.messages[i].Kind == model.KindTyping {
			senders = append(senders, s.messages[i].Sender)
		}
	}
	return senders
}

// Reset discards the log. Listeners are kept; the next diff they see belongs
// to the fresh conversation.
func (s *Store) Reset() {
	s.messages = nil
}

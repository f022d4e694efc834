// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine implements the message synchronization engine.
package engine

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/knowhub/hubchat-tui/internal/gateway"
	"github.com/knowhub/hubchat-tui/internal/live"
	"github.com/knowhub/hubchat-tui/internal/model"
)

// typingBroadcastInterval throttles outbound typing frames so keystrokes do
// not flood the relay.
const typingBroadcastInterval = 3

// =============================================================================
// CURSOR
// =============================================================================

// Cursor tracks backward pagination through history.
type Cursor struct {
	// Offset is the next history offset to request.
	Offset int

	// Exhausted is set once a fetch returns fewer than a full page.
	Exhausted bool
}

// PageResult reports the outcome of applying one history page.
type PageResult struct {
	FetchedCount int
	NowExhausted bool
}

// PageRequest identifies one in-flight history fetch.
type PageRequest struct {
	// Generation ties the fetch to the engine lifecycle that issued it; a
	// page resolving after Dispose carries a stale generation and is
	// discarded instead of being applied to a fresh store.
	Generation int
	Limit      int
	Offset     int
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine synchronizes one conversation view: it reconciles paginated history
// with live broadcast delivery into a single ordered, deduplicated log.
//
// All mutating methods must be called from the UI update loop; see the
// package documentation for the concurrency model.
type Engine struct {
	gateway *gateway.Client
	channel *live.Channel
	norm    *model.Normalizer

	store  *Store
	seen   map[model.ID]struct{}
	cursor Cursor

	pageSize   int
	generation int
	loading    bool
	started    bool

	typingLimiter *rate.Limiter
}

// New creates an engine bound to a gateway client and a live channel. The
// engine is inert until Start.
func New(gw *gateway.Client, ch *live.Channel, pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = gateway.DefaultPageSize
	}
	return &Engine{
		gateway:       gw,
		channel:       ch,
		store:         NewStore(),
		seen:          make(map[model.ID]struct{}),
		pageSize:      pageSize,
		typingLimiter: rate.NewLimiter(rate.Limit(1.0/typingBroadcastInterval), 1),
	}
}

// Start binds the engine to a viewer identity and resets all conversation
// state. Called when the session status transitions into authenticated.
func (e *Engine) Start(viewer string) {
	e.norm = model.NewNormalizer(viewer, e.gateway.BaseURL())
	e.store.Reset()
	e.seen = make(map[model.ID]struct{})
	e.cursor = Cursor{}
	e.loading = false
	e.generation++
	e.started = true
}

// Dispose tears the conversation down: the live channel is closed
// synchronously and any in-flight pagination result is invalidated so a late
// response cannot be applied to a stale store.
func (e *Engine) Dispose() {
	e.started = false
	e.loading = false
	e.generation++
	if e.channel != nil {
		e.channel.Close()
	}
}

// Started reports whether the engine is bound to a viewer.
func (e *Engine) Started() bool {
	return e.started
}

// Viewer returns the display name messages are attributed against, or ""
// before Start.
func (e *Engine) Viewer() string {
	if e.norm == nil {
		return ""
	}
	return e.norm.Viewer()
}

// Store returns the observable message log.
func (e *Engine) Store() *Store {
	return e.store
}

// Messages returns the current log in conversation order.
func (e *Engine) Messages() []model.CanonicalMessage {
	return e.store.Messages()
}

// Cursor returns the current pagination cursor.
func (e *Engine) Cursor() Cursor {
	return e.cursor
}

// PageSize returns the history page size.
func (e *Engine) PageSize() int {
	return e.pageSize
}

// Gateway returns the REST client, for the UI's submission commands.
func (e *Engine) Gateway() *gateway.Client {
	return e.gateway
}

// Channel returns the live channel, for the UI's connection commands.
func (e *Engine) Channel() *live.Channel {
	return e.channel
}

// =============================================================================
// PAGINATION
// =============================================================================

// BeginPageLoad claims the right to fetch the next history page. It returns
// ok=false when the caller must not fetch: the engine is not started, history
// is exhausted, or a fetch is already in flight (two scroll triggers racing
// must produce exactly one request).
func (e *Engine) BeginPageLoad() (PageRequest, bool) {
	if !e.started || e.loading || e.cursor.Exhausted {
		return PageRequest{}, false
	}
	e.loading = true
	return PageRequest{
		Generation: e.generation,
		Limit:      e.pageSize,
		Offset:     e.cursor.Offset,
	}, true
}

// ApplyPage applies a fetched page. The records arrive most-recent-first as
// the backend orders them; they are reversed to ascending order, normalized
// and prepended ahead of everything currently held, because pagination always
// represents strictly older history than whatever was first loaded.
//
// A page whose request generation is stale (the engine was disposed or
// restarted while the fetch was in flight) is discarded untouched.
func (e *Engine) ApplyPage(req PageRequest, records []model.RawRecord) PageResult {
	if req.Generation != e.generation {
		return PageResult{}
	}
	e.loading = false

	// A record already in the seen set (offset drift: a message sent after
	// the first page shifts later pages) is prepended regardless. That can
	// briefly duplicate an id in the log; known limitation, kept to match
	// the backend's offset pagination semantics.
	batch := make([]model.CanonicalMessage, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		raw := records[i]
		if !raw.ID.IsZero() {
			e.seen[raw.ID] = struct{}{}
		}
		batch = append(batch, e.norm.Normalize(raw))
	}
	e.store.PrependBatch(batch)

	e.cursor.Offset += e.pageSize
	if len(records) < req.Limit {
		e.cursor.Exhausted = true
	}
	return PageResult{FetchedCount: len(records), NowExhausted: e.cursor.Exhausted}
}

// FailPageLoad records a fetch failure. Cursor and store are left untouched;
// the user retries by scrolling again.
func (e *Engine) FailPageLoad(req PageRequest, err error) {
	if req.Generation != e.generation {
		return
	}
	e.loading = false
	log.Printf("page fetch failed (offset %d): %v", req.Offset, err)
}

// =============================================================================
// LIVE INGESTION
// =============================================================================

// IngestFrame parses one live channel frame and ingests it. Malformed frames
// are logged and discarded without affecting connection or store state.
func (e *Engine) IngestFrame(data []byte) (Diff, bool) {
	var raw model.RawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("bad live frame: %v", err)
		return Diff{Removed: -1}, false
	}
	return e.Ingest(raw)
}

// Ingest admits a record into the log. It returns the resulting store diff,
// or ok=false when the record was suppressed.
//
// Suppression rules:
//   - duplicate non-typing ids (the publisher's own echo, or a replayed
//     frame) are discarded;
//   - typing frames from the viewer are not renderable and are dropped;
//   - typing frames carry no durable identity and are never marked seen.
//
// A real message from a sender removes that sender's live typing indicator in
// the same step.
func (e *Engine) Ingest(raw model.RawRecord) (Diff, bool) {
	if !e.started {
		return Diff{Removed: -1}, false
	}

	if raw.Type == model.KindTyping {
		if raw.SenderName == e.Viewer() {
			return Diff{Removed: -1}, false
		}
		return e.store.AppendReplacingTyping(raw.SenderName, e.norm.Normalize(raw)), true
	}

	if _, dup := e.seen[raw.ID]; dup {
		return Diff{Removed: -1}, false
	}
	e.seen[raw.ID] = struct{}{}

	return e.store.AppendReplacingTyping(raw.SenderName, e.norm.Normalize(raw)), true
}

// =============================================================================
// COMPOSER
// =============================================================================

// AcceptSent ingests the record returned by a successful gateway submission
// and broadcasts it on the live channel so other viewers receive it without a
// refetch. Marking the id seen here pre-empts the relay echo; if the echo won
// the race, the local ingest is the suppressed duplicate instead.
func (e *Engine) AcceptSent(rec model.RawRecord) (Diff, bool) {
	d, ok := e.Ingest(rec)
	if e.channel != nil {
		if err := e.channel.Publish(rec); err != nil {
			log.Printf("publish after send failed: %v", err)
		}
	}
	return d, ok
}

// TypingBroadcast returns an ephemeral typing record for the viewer, rate
// limited so at most one frame leaves per few seconds of continuous typing.
// The record is never persisted through the gateway.
func (e *Engine) TypingBroadcast() (model.RawRecord, bool) {
	if !e.started || !e.typingLimiter.Allow() {
		return model.RawRecord{}, false
	}
	return model.NewTypingRecord("typing_"+uuid.NewString(), e.Viewer()), true
}

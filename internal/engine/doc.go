// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package engine implements the message synchronization engine: the component
that owns the canonical in-memory message log and reconciles backward
pagination with forward live delivery.

# Key Components

## Store (store.go)

The ordered, deduplicated message log and single source of truth for
rendering. The store is observable: subscribers receive one Diff per mutation
step (prepended range, appended item, removed item) so rendering and scroll
anchoring stay decoupled from ingestion logic.

## Engine (engine.go)

One Engine instance exists per active conversation view, created fresh on
conversation switch or re-authentication. It owns the Store, the Seen-ID Set
and the Pagination Cursor, and exposes:

  - the pagination triple BeginPageLoad / ApplyPage / FailPageLoad, with a
    re-entrancy guard and a generation counter that invalidates pages
    resolving after Dispose;
  - frame ingestion for the live channel (duplicate suppression, typing
    supersession);
  - the composer path: a record persisted via the gateway is ingested like an
    inbound live record, which marks its id seen and pre-empts the relay echo.

# Concurrency

The engine is deliberately lock-free: every mutation happens on the Bubble
Tea update loop. Network I/O runs in tea.Cmd goroutines and re-enters the
engine only through messages delivered to that loop, so frames are processed
strictly in arrival order and pagination results apply atomically.
*/
package engine

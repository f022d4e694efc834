// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package model contains the data structures shared by the gateway, the live
channel and the synchronization engine.

# Key Types

## RawRecord (record.go)

The backend's canonical persisted message representation. Records arrive from
two sources: the paged history endpoint and the live broadcast channel. Both
deliver the same JSON shape. Record ids have been observed both as JSON
numbers and as JSON strings depending on backend version, so the ID type
preserves whichever form it was decoded from.

## CanonicalMessage (message.go)

The engine's normalized, render-ready message. One CanonicalMessage exists per
RawRecord. Typing records are ephemeral pseudo-messages with no durable
identity beyond (sender, kind).

## Normalizer (normalize.go)

Deterministic mapping from RawRecord to CanonicalMessage given the viewer's
display name and the gateway base URL. Media paths are absolutized with a
three-way rule because historical and live records carry both path-absolute
and bare-relative forms.
*/
package model

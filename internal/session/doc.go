// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package session tracks who the viewer is and whether the client may talk to
the backend yet.

A session starts in StatusLoading while the stored identity is read from
configuration. Resolve moves it to StatusAuthenticated when a usable display
name exists, or to StatusUnauthenticated so the UI shows the name prompt.
History fetching and the live channel dial are both gated on
StatusAuthenticated; nothing network-facing happens before that.

The manager is safe for concurrent reads from command goroutines, but status
transitions are expected to happen on the UI update loop.
*/
package session

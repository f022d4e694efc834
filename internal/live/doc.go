// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package live implements the persistent broadcast connection to the Knowledge
Hub websocket relay.

The relay echoes every published record to all subscribers, including the
publisher itself. Each websocket text frame carries exactly one JSON-encoded
RawRecord; there is no acknowledgment protocol and delivery is at-most-once.
De-duplication of the publisher's own echo is the synchronization engine's
job, not this package's.

A Channel moves through Closed -> Connecting -> Open -> Closed. There is no
automatic reconnection: once the connection drops the channel stays Closed
until the owner dials a fresh one (in practice, on the next transition of the
session status into authenticated).
*/
package live

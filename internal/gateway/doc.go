// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package gateway implements the REST client for the Knowledge Hub backend.

The backend exposes three creation endpoints and one retrieval endpoint:

	GET  {base}/messages/?limit=n&offset=m   paged history, most-recent-first
	POST {base}/messages/                    create a text message (JSON)
	POST {base}/voice_notes/                 create a voice note (multipart)
	POST {base}/files/                       create a file message (multipart)

Every creation endpoint returns the persisted RawRecord, which the caller is
expected to mark as seen and re-broadcast on the live channel. The gateway
performs no retries: a failed call surfaces as an error and the triggering
action (scroll, resend) is the retry mechanism.
*/
package gateway

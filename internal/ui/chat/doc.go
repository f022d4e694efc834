// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat implements the conversation view of the hubchat TUI.

The package follows the standard Bubble Tea decomposition:

  - model.go: the Model struct and construction
  - update.go: the update loop; the only place engine state mutates
  - view.go: rendering of the prompt, the log, and the chrome
  - commands.go: tea.Cmd wrappers around gateway and live channel I/O
  - messages.go: the tea.Msg types those commands deliver
  - anchor.go: the scroll anchoring rules
  - keys.go: key bindings

# Flow

On startup the stored identity is resolved; an authenticated session starts
the engine, dials the live channel, and claims the first history page.
Scrolling to the top of the loaded log claims further pages. Frames read from
the live channel and records returned by gateway submissions both funnel into
the engine on the update goroutine, which keeps the log ordered and
deduplicated without locks.

Scroll behavior is split out into Anchor so it stays testable: prepended
history never moves the reading position, appends follow to the bottom only
when the viewer is near it or the message is their own.
*/
package chat

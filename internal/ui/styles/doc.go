// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles centralizes colors and lipgloss styles for the hubchat TUI.

Colors are lipgloss.AdaptiveColor pairs so the same palette works on light
and dark terminals. The chat view distinguishes the viewer's own messages
(blue, right aligned) from peer messages (neutral, left aligned) and uses a
muted italic style for ephemeral typing indicators.
*/
package styles

// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components holds small self-contained render helpers used by the chat
view: the bottom status bar with its connection indicator, and the welcome
banner shown above an empty conversation.

Components are plain value types with a Render method; they carry no Bubble
Tea state of their own.
*/
package components

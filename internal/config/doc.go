// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package config loads and validates the hubchat configuration.

Configuration is layered: built-in defaults, then ~/.hubchat/config.toml when
present, then HUBCHAT_* environment variables. The file supports named
backend profiles so one client installation can point at multiple hub
deployments:

	display_name = "Alice"
	profile = "work"

	[profiles.work]
	gateway_url = "https://hub.example.com/chat"

	[profiles.staging]
	gateway_url = "https://staging.example.com/chat"
	live_url = "wss://staging.example.com/chat/ws/input-data"

A profile's live_url is optional; when absent it is derived from gateway_url
by flipping the scheme to ws/wss and appending /ws/input-data.
*/
package config

// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/knowhub/hubchat-tui/internal/ui/styles"
)

// WelcomeBanner renders the greeting shown above an empty conversation,
// centered in the given width.
func WelcomeBanner(viewer string, width int) string {
	var b strings.Builder
	b.WriteString("Welcome to Knowledge Hub")
	if viewer != "" {
		b.WriteString(", " + viewer)
	}
	b.WriteString("\n")
	b.WriteString(styles.Hint.Render("Messages you send are shared with everyone here."))

	banner := styles.Welcome.Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, banner)
}

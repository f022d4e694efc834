// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// =============================================================================
// SCROLL ANCHORING
// =============================================================================

// Anchor decides how the viewport offset reacts to message log changes.
//
// Two rules cover every mutation:
//   - prepended history must not move what the viewer is reading, so the
//     offset shifts down by exactly the number of inserted lines;
//   - appended messages pull the view to the bottom only when the viewer is
//     already near it, or when the message is the viewer's own.
type Anchor struct {
	// Proximity is how many lines above the bottom still count as "at the
	// bottom" for follow purposes.
	Proximity int
}

// maxOffset is the largest useful YOffset for the given content and view.
func maxOffset(viewHeight, totalLines int) int {
	m := totalLines - viewHeight
	if m < 0 {
		return 0
	}
	return m
}

// NearBottom reports whether the viewport is within the proximity threshold
// of the bottom of the content.
func (a Anchor) NearBottom(yOffset, viewHeight, totalLines int) bool {
	return maxOffset(viewHeight, totalLines)-yOffset <= a.Proximity
}

// AfterPrepend returns the offset that keeps the same content line at the top
// of the view after addedLines were inserted above it.
func (a Anchor) AfterPrepend(yOffset, addedLines int) int {
	if addedLines < 0 {
		addedLines = 0
	}
	return yOffset + addedLines
}

// ShouldFollow reports whether an append should scroll the view to the
// bottom. The decision uses the geometry from before the append: a viewer
// reading scrollback stays put unless the new message is their own.
func (a Anchor) ShouldFollow(yOffset, viewHeight, totalLines int, own bool) bool {
	if own {
		return true
	}
	return a.NearBottom(yOffset, viewHeight, totalLines)
}

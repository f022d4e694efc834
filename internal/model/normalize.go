// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the gateway, the live
// channel and the synchronization engine.
package model

import (
	"net/url"
	"strings"
	"time"
)

// =============================================================================
// TIMESTAMP PARSING
// =============================================================================

// createdAtLayouts are the timestamp formats the backend has been observed to
// emit. Django's DRF default (RFC 3339 with fractional seconds) comes first.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseCreatedAt parses a record timestamp, returning the zero time when the
// field is absent or in an unknown format.
func parseCreatedAt(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// =============================================================================
// NORMALIZER
// =============================================================================

// Normalizer maps raw backend records into canonical messages for one viewer
// against one gateway. It is immutable after construction and safe to share.
type Normalizer struct {
	viewer  string
	baseURL string
	origin  string // scheme://host of baseURL, used for path-absolute media
}

// NewNormalizer creates a normalizer for the given viewer display name and
// gateway base URL. The base URL may carry a sub-path prefix (a gateway
// mounted under a path); the origin is extracted for path-absolute media so
// the prefix is not applied twice.
func NewNormalizer(viewer, baseURL string) *Normalizer {
	n := &Normalizer{
		viewer:  viewer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		n.origin = u.Scheme + "://" + u.Host
	} else {
		n.origin = n.baseURL
	}
	return n
}

// Viewer returns the display name normalization attributes own messages to.
func (n *Normalizer) Viewer() string {
	return n.viewer
}

// Normalize converts a raw record into a canonical message. It never fails:
// unknown kinds degrade to an empty text message and missing timestamps yield
// an empty display time, so a malformed record cannot break the timeline.
func (n *Normalizer) Normalize(raw RawRecord) CanonicalMessage {
	// Typing indicators carry no timestamp and are never attributed to the
	// viewer; a self-typing event is not renderable.
	if raw.Type == KindTyping {
		return CanonicalMessage{
			ID:     raw.ID,
			Sender: raw.SenderName,
			Kind:   KindTyping,
		}
	}

	msg := CanonicalMessage{
		ID:          raw.ID,
		Sender:      raw.SenderName,
		DisplayTime: n.displayTime(raw.CreatedAt),
		IsOwn:       raw.SenderName == n.viewer,
	}

	switch raw.Type {
	case KindVoice:
		if raw.MediaURL != "" {
			msg.Kind = KindVoice
			msg.VoiceURL = n.absolutize(raw.MediaURL)
			return msg
		}
	case KindFile:
		if raw.MediaURL != "" {
			msg.Kind = KindFile
			msg.FileURL = n.absolutize(raw.MediaURL)
			msg.Filename = raw.Filename
			return msg
		}
	}

	// Text, unknown kind, or a media record without a media URL. Unknown
	// kinds degrade to text rather than erroring.
	msg.Kind = KindText
	msg.Text = raw.Content
	return msg
}

// displayTime renders created_at as localized hour:minute, or "" when the
// timestamp is absent or unparseable.
func (n *Normalizer) displayTime(createdAt string) string {
	t := parseCreatedAt(createdAt)
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("15:04")
}

// absolutize resolves a media path against the gateway:
//   - full URLs pass through verbatim;
//   - path-absolute values join the gateway origin (scheme+host only, so a
//     gateway mounted under a sub-path does not get the prefix twice);
//   - bare-relative values join the full base URL.
func (n *Normalizer) absolutize(media string) string {
	if media == "" {
		return ""
	}
	if strings.Contains(media, "://") {
		return media
	}
	if strings.HasPrefix(media, "/") {
		return n.origin + media
	}
	return n.baseURL + "/" + media
}

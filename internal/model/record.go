// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the gateway, the live
// channel and the synchronization engine.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// =============================================================================
// KIND TYPE
// =============================================================================

// Kind classifies a record's payload.
type Kind string

const (
	KindText   Kind = "text"
	KindVoice  Kind = "voice"
	KindFile   Kind = "file"
	KindTyping Kind = "typing"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether the kind is one of the four known values.
func (k Kind) IsValid() bool {
	switch k {
	case KindText, KindVoice, KindFile, KindTyping:
		return true
	}
	return false
}

// =============================================================================
// ID TYPE
// =============================================================================

// ID is a record identifier. The backend has emitted ids both as JSON numbers
// and as JSON strings; ID remembers which form it was decoded from so that a
// record published back on the live channel round-trips byte-identically.
//
// The zero ID is empty and compares unequal to every decoded id.
type ID struct {
	value   string
	numeric bool
}

// NewID creates a string-form ID.
func NewID(s string) ID {
	return ID{value: s}
}

// NewNumericID creates a number-form ID.
func NewNumericID(n int64) ID {
	return ID{value: strconv.FormatInt(n, 10), numeric: true}
}

// String returns the id without JSON quoting.
func (id ID) String() string {
	return id.value
}

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool {
	return id.value == ""
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("record id: %w", err)
		}
		*id = ID{value: s}
		return nil
	}
	// Numeric ids are kept verbatim to avoid float64 precision loss.
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("record id: not a string or number: %s", data)
	}
	*id = ID{value: string(data), numeric: true}
	return nil
}

// MarshalJSON re-emits the id in the form it was decoded from.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// =============================================================================
// RAW RECORD
// =============================================================================

// RawRecord is the backend's persisted message representation, as returned by
// the history endpoint, the creation endpoints and the live channel. It is
// immutable once issued by the backend.
type RawRecord struct {
	ID         ID     `json:"id"`
	SenderName string `json:"sender_name"`
	CreatedAt  string `json:"created_at,omitempty"`
	Type       Kind   `json:"type"`
	Content    string `json:"content,omitempty"`
	MediaURL   string `json:"media_url,omitempty"`
	Filename   string `json:"filename,omitempty"`
}

// NewTypingRecord builds an ephemeral typing record for broadcast. Typing
// records are never persisted; the id only needs to be unique enough for
// logging.
func NewTypingRecord(id, sender string) RawRecord {
	return RawRecord{
		ID:         NewID(id),
		SenderName: sender,
		Type:       KindTyping,
	}
}

// PageResponse is the envelope returned by the paged history endpoint.
// Results are ordered most-recent-first.
type PageResponse struct {
	Results []RawRecord `json:"results"`
}

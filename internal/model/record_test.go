// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
)

// =============================================================================
// ID TESTS
// =============================================================================

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "string id", input: `"abc-123"`, want: "abc-123"},
		{name: "numeric id", input: `42`, want: "42"},
		{name: "large numeric id", input: `9007199254740993`, want: "9007199254740993"},
		{name: "null id", input: `null`, want: ""},
		{name: "invalid token", input: `{"x":1}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tc.input), &id)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) expected error, got %q", tc.input, id.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) unexpected error: %v", tc.input, err)
			}
			if id.String() != tc.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tc.input, id.String(), tc.want)
			}
		})
	}
}

func TestID_MarshalRoundTrip(t *testing.T) {
	// Numeric and string ids must re-encode in their original form so a
	// published echo matches what the backend issued.
	for _, input := range []string{`42`, `"42"`, `"msg_7f"`} {
		var id ID
		if err := json.Unmarshal([]byte(input), &id); err != nil {
			t.Fatalf("Unmarshal(%s): %v", input, err)
		}
		out, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", input, err)
		}
		if string(out) != input {
			t.Errorf("round trip of %s produced %s", input, out)
		}
	}
}

func TestID_Equality(t *testing.T) {
	// Number-form and string-form ids with the same digits are distinct;
	// the backend never mixes forms within one conversation.
	numeric := NewNumericID(7)
	str := NewID("7")
	if numeric == str {
		t.Error("numeric ID 7 should not equal string ID \"7\"")
	}
	if NewNumericID(7) != numeric {
		t.Error("identical numeric ids should compare equal")
	}
	if NewID("a") != NewID("a") {
		t.Error("identical string ids should compare equal")
	}
}

func TestID_IsZero(t *testing.T) {
	var id ID
	if !id.IsZero() {
		t.Error("zero ID should report IsZero")
	}
	if NewID("x").IsZero() {
		t.Error("decoded ID should not report IsZero")
	}
}

// =============================================================================
// RAW RECORD TESTS
// =============================================================================

func TestRawRecord_DecodeWireShape(t *testing.T) {
	payload := `{
		"id": 17,
		"sender_name": "Alice",
		"created_at": "2025-03-04T09:30:00Z",
		"type": "file",
		"media_url": "/media/uploads/report.pdf",
		"filename": "report.pdf"
	}`

	var rec RawRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if rec.ID.String() != "17" {
		t.Errorf("ID = %q, want 17", rec.ID.String())
	}
	if rec.SenderName != "Alice" {
		t.Errorf("SenderName = %q, want Alice", rec.SenderName)
	}
	if rec.Type != KindFile {
		t.Errorf("Type = %q, want file", rec.Type)
	}
	if rec.Filename != "report.pdf" {
		t.Errorf("Filename = %q", rec.Filename)
	}
}

func TestNewTypingRecord(t *testing.T) {
	rec := NewTypingRecord("t1", "Bob")
	if rec.Type != KindTyping {
		t.Errorf("Type = %q, want typing", rec.Type)
	}
	if rec.SenderName != "Bob" {
		t.Errorf("SenderName = %q, want Bob", rec.SenderName)
	}
	if rec.CreatedAt != "" {
		t.Error("typing records should carry no timestamp")
	}
}

func TestKind_IsValid(t *testing.T) {
	for _, k := range []Kind{KindText, KindVoice, KindFile, KindTyping} {
		if !k.IsValid() {
			t.Errorf("Kind %q should be valid", k)
		}
	}
	if Kind("sticker").IsValid() {
		t.Error("unknown kind should not be valid")
	}
}

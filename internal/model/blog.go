// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// ID identifies a post on the backend. The backend issues integers, but the
// client treats the value as opaque text and accepts JSON numbers or strings.
type ID string

// String returns the identifier as text.
func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool { return id == "" }

// UnmarshalJSON accepts a number, a string, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(n.String())
		return nil
	}
}

// MarshalJSON writes integer identifiers as JSON numbers and anything else
// as a string, so a decoded record re-encodes the way the backend sent it.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// =============================================================================
// TIMESTAMPS
// =============================================================================

// naiveLayouts are the zone-less ISO forms the backend emits for datetime
// columns. They are interpreted in local time.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp is a time.Time that decodes both RFC 3339 and zone-less ISO
// timestamps.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses s using RFC 3339 first and the naive layouts after.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	if s == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time.Format(time.RFC3339Nano))
}

// =============================================================================
// BLOG POST
// =============================================================================

// BlogPost is a generated article as stored by the backend. The client
// replaces posts wholesale and never edits their fields.
type BlogPost struct {
	ID        ID        `json:"id"`
	Topic     string    `json:"topic"`
	Tone      Tone      `json:"tone"`
	Length    Length    `json:"length"`
	Keywords  string    `json:"keywords"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	SEOScore  *float64  `json:"seo_score"`
	WordCount int       `json:"word_count"`
	CreatedAt Timestamp `json:"created_at"`

	// RawTone and RawLength hold the stored text when Tone is ToneOther or
	// Length is LengthOther. The backend accepts any string for both.
	RawTone   string `json:"-"`
	RawLength string `json:"-"`
}

// postAlias drops BlogPost's methods so the JSON hooks below do not recurse.
type postAlias BlogPost

// UnmarshalJSON decodes a stored post. Unknown tone or length values are
// kept as text instead of failing the whole record.
func (p *BlogPost) UnmarshalJSON(data []byte) error {
	var aux struct {
		postAlias
		Tone   string `json:"tone"`
		Length string `json:"length"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = BlogPost(aux.postAlias)
	p.Tone, p.RawTone = ToneOther, aux.Tone
	if t, err := ParseTone(aux.Tone); err == nil {
		p.Tone, p.RawTone = t, ""
	}
	p.Length, p.RawLength = LengthOther, aux.Length
	if l, err := ParseLength(aux.Length); err == nil {
		p.Length, p.RawLength = l, ""
	}
	return nil
}

// MarshalJSON writes the tone and length as stored, known or not.
func (p BlogPost) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		postAlias
		Tone   string `json:"tone"`
		Length string `json:"length"`
	}{postAlias(p), p.ToneText(), p.LengthText()})
}

// ToneText returns the tone's wire value, or the stored text for an
// unknown tone.
func (p *BlogPost) ToneText() string {
	if p.Tone.Valid() {
		return p.Tone.String()
	}
	return p.RawTone
}

// LengthText returns the length's wire value, or the stored text.
func (p *BlogPost) LengthText() string {
	if p.Length.Valid() {
		return p.Length.String()
	}
	return p.RawLength
}

// ToneLabel is the display name of the post's tone.
func (p *BlogPost) ToneLabel() string {
	return storedLabel(p.Tone.Valid(), p.Tone.Label(), p.RawTone)
}

// LengthLabel is the display name of the post's length.
func (p *BlogPost) LengthLabel() string {
	return storedLabel(p.Length.Valid(), p.Length.Label(), p.RawLength)
}

func storedLabel(known bool, label, raw string) string {
	if known {
		return label
	}
	if raw = strings.TrimSpace(raw); raw == "" {
		return "Unknown"
	}
	return titleCase(raw)
}

// HasSEOScore reports whether the backend scored the post. A present score
// of zero counts as scored.
func (p *BlogPost) HasSEOScore() bool {
	return p != nil && p.SEOScore != nil
}

// DisplayTitle returns the title, falling back to the topic for untitled
// posts.
func (p *BlogPost) DisplayTitle() string {
	if p == nil {
		return ""
	}
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	return strings.TrimSpace(p.Topic)
}

// BlogList is one page of the history listing.
type BlogList struct {
	Total int        `json:"total"`
	Blogs []BlogPost `json:"blogs"`
}

// Confirmation is the backend's acknowledgement of a delete.
type Confirmation struct {
	Message string `json:"message"`
}

// HealthStatus is the body of the health endpoint. Only reachability matters
// to the client; the fields are informational.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

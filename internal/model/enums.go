// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// TONE
// =============================================================================

// Tone is the writing style requested for a post.
type Tone int

const (
	ToneProfessional Tone = iota
	ToneCasual
	ToneTechnical
	ToneEducational
)

// ToneOther marks a stored post whose tone is not one of the known values.
// BlogPost keeps the stored text alongside it.
const ToneOther Tone = -1

// DefaultTone is preselected in the form.
const DefaultTone = ToneProfessional

// AllTones returns every tone in selector order.
func AllTones() []Tone {
	return []Tone{ToneProfessional, ToneCasual, ToneTechnical, ToneEducational}
}

// String returns the wire value of the tone.
func (t Tone) String() string {
	switch t {
	case ToneProfessional:
		return "professional"
	case ToneCasual:
		return "casual"
	case ToneTechnical:
		return "technical"
	case ToneEducational:
		return "educational"
	default:
		return "unknown"
	}
}

// Label returns the title-cased display name ("Professional").
func (t Tone) Label() string {
	return titleCase(t.String())
}

// Icon returns the glyph shown next to the tone in selectors.
func (t Tone) Icon() string {
	switch t {
	case ToneProfessional:
		return "💼"
	case ToneCasual:
		return "😊"
	case ToneTechnical:
		return "🔧"
	case ToneEducational:
		return "📚"
	default:
		return "?"
	}
}

// Valid reports whether t is one of the declared tones.
func (t Tone) Valid() bool {
	return t >= ToneProfessional && t <= ToneEducational
}

// Next returns the following tone, wrapping around.
func (t Tone) Next() Tone {
	tones := AllTones()
	return tones[(int(t)+1)%len(tones)]
}

// Prev returns the preceding tone, wrapping around.
func (t Tone) Prev() Tone {
	tones := AllTones()
	return tones[(int(t)+len(tones)-1)%len(tones)]
}

// ParseTone maps a wire value to a Tone. Matching ignores case and
// surrounding whitespace.
func ParseTone(s string) (Tone, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllTones() {
		if t.String() == v {
			return t, nil
		}
	}
	return DefaultTone, fmt.Errorf("invalid tone %q: must be one of professional, casual, technical, educational", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tone) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tone %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It is strict; stored
// posts decode through BlogPost, which tolerates unknown values.
func (t *Tone) UnmarshalText(text []byte) error {
	v, err := ParseTone(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// =============================================================================
// LENGTH
// =============================================================================

// Length is the target size of a post. Each value implies a word-count band
// that the backend is responsible for honoring.
type Length int

const (
	LengthShort Length = iota
	LengthMedium
	LengthLong
)

// LengthOther marks a stored post whose length is not one of the known
// values.
const LengthOther Length = -1

// DefaultLength is preselected in the form.
const DefaultLength = LengthMedium

// AllLengths returns every length in selector order.
func AllLengths() []Length {
	return []Length{LengthShort, LengthMedium, LengthLong}
}

// String returns the wire value of the length.
func (l Length) String() string {
	switch l {
	case LengthShort:
		return "short"
	case LengthMedium:
		return "medium"
	case LengthLong:
		return "long"
	default:
		return "unknown"
	}
}

// Label returns the title-cased display name ("Medium").
func (l Length) Label() string {
	return titleCase(l.String())
}

// Description returns the word-count band for the length.
func (l Length) Description() string {
	switch l {
	case LengthShort:
		return "600-800 words"
	case LengthMedium:
		return "1000-1500 words"
	case LengthLong:
		return "1800-2500 words"
	default:
		return ""
	}
}

// Valid reports whether l is one of the declared lengths.
func (l Length) Valid() bool {
	return l >= LengthShort && l <= LengthLong
}

// Next returns the following length, wrapping around.
func (l Length) Next() Length {
	lengths := AllLengths()
	return lengths[(int(l)+1)%len(lengths)]
}

// Prev returns the preceding length, wrapping around.
func (l Length) Prev() Length {
	lengths := AllLengths()
	return lengths[(int(l)+len(lengths)-1)%len(lengths)]
}

// ParseLength maps a wire value to a Length.
func ParseLength(s string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, l := range AllLengths() {
		if l.String() == v {
			return l, nil
		}
	}
	return DefaultLength, fmt.Errorf("invalid length %q: must be one of short, medium, long", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Length) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid length %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Length) UnmarshalText(text []byte) error {
	v, err := ParseLength(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// titleCase builds a fresh Caser per call; Casers carry state and are not
// safe to share.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

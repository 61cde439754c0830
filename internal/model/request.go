// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinTopicLength is the shortest topic accepted for generation, counted in
// characters after trimming.
const MinTopicLength = 5

// Validation messages shown next to the topic field.
const (
	MsgTopicRequired = "Topic is required"
	MsgTopicTooShort = "Topic must be at least 5 characters"
)

// ValidationError reports a field that failed client-side validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// GenerationRequest is the body of a generate call. Keywords is nil when the
// user left the field blank and encodes as JSON null.
type GenerationRequest struct {
	Topic    string  `json:"topic"`
	Tone     Tone    `json:"tone"`
	Length   Length  `json:"length"`
	Keywords *string `json:"keywords"`
}

// ValidateTopic checks the topic rule: non-empty and at least MinTopicLength
// characters once surrounding whitespace is removed.
func ValidateTopic(topic string) error {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" {
		return &ValidationError{Field: "topic", Message: MsgTopicRequired}
	}
	if utf8.RuneCountInString(trimmed) < MinTopicLength {
		return &ValidationError{Field: "topic", Message: MsgTopicTooShort}
	}
	return nil
}

// NormalizeKeywords trims the keyword input and returns nil when nothing is
// left.
func NormalizeKeywords(keywords string) *string {
	trimmed := strings.TrimSpace(keywords)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NewGenerationRequest validates raw form input and builds a request from it.
func NewGenerationRequest(topic string, tone Tone, length Length, keywords string) (GenerationRequest, error) {
	if err := ValidateTopic(topic); err != nil {
		return GenerationRequest{}, err
	}
	if !tone.Valid() {
		return GenerationRequest{}, &ValidationError{Field: "tone", Message: fmt.Sprintf("unknown tone %d", int(tone))}
	}
	if !length.Valid() {
		return GenerationRequest{}, &ValidationError{Field: "length", Message: fmt.Sprintf("unknown length %d", int(length))}
	}
	return GenerationRequest{
		Topic:    strings.TrimSpace(topic),
		Tone:     tone,
		Length:   length,
		Keywords: NormalizeKeywords(keywords),
	}, nil
}

// KeywordsValue returns the keywords or "" when absent.
func (r GenerationRequest) KeywordsValue() string {
	if r.Keywords == nil {
		return ""
	}
	return *r.Keywords
}

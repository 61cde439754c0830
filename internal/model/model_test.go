// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ENUM TESTS
// =============================================================================

func TestToneMappings(t *testing.T) {
	tests := []struct {
		tone  Tone
		wire  string
		label string
		icon  string
	}{
		{ToneProfessional, "professional", "Professional", "💼"},
		{ToneCasual, "casual", "Casual", "😊"},
		{ToneTechnical, "technical", "Technical", "🔧"},
		{ToneEducational, "educational", "Educational", "📚"},
		{Tone(99), "unknown", "Unknown", "?"},
	}

	for _, tc := range tests {
		if got := tc.tone.String(); got != tc.wire {
			t.Errorf("Tone(%d).String() = %q, want %q", tc.tone, got, tc.wire)
		}
		if got := tc.tone.Label(); got != tc.label {
			t.Errorf("Tone(%d).Label() = %q, want %q", tc.tone, got, tc.label)
		}
		if got := tc.tone.Icon(); got != tc.icon {
			t.Errorf("Tone(%d).Icon() = %q, want %q", tc.tone, got, tc.icon)
		}
	}
}

func TestLengthMappings(t *testing.T) {
	tests := []struct {
		length Length
		wire   string
		label  string
		desc   string
	}{
		{LengthShort, "short", "Short", "600-800 words"},
		{LengthMedium, "medium", "Medium", "1000-1500 words"},
		{LengthLong, "long", "Long", "1800-2500 words"},
	}

	for _, tc := range tests {
		if got := tc.length.String(); got != tc.wire {
			t.Errorf("Length(%d).String() = %q, want %q", tc.length, got, tc.wire)
		}
		if got := tc.length.Label(); got != tc.label {
			t.Errorf("Length(%d).Label() = %q, want %q", tc.length, got, tc.label)
		}
		if got := tc.length.Description(); got != tc.desc {
			t.Errorf("Length(%d).Description() = %q, want %q", tc.length, got, tc.desc)
		}
	}
}

func TestEnumDefaultsAndCycling(t *testing.T) {
	assert.Equal(t, ToneProfessional, DefaultTone)
	assert.Equal(t, LengthMedium, DefaultLength)

	assert.Equal(t, ToneCasual, ToneProfessional.Next())
	assert.Equal(t, ToneProfessional, ToneEducational.Next())
	assert.Equal(t, ToneEducational, ToneProfessional.Prev())
	assert.Equal(t, LengthShort, LengthLong.Next())
	assert.Equal(t, LengthLong, LengthShort.Prev())
}

func TestParseEnums(t *testing.T) {
	tone, err := ParseTone(" Technical ")
	require.NoError(t, err)
	assert.Equal(t, ToneTechnical, tone)

	_, err = ParseTone("sarcastic")
	assert.Error(t, err)

	length, err := ParseLength("LONG")
	require.NoError(t, err)
	assert.Equal(t, LengthLong, length)

	_, err = ParseLength("epic")
	assert.Error(t, err)
}

func TestEnumMarshalRejectsUnknown(t *testing.T) {
	if _, err := json.Marshal(Tone(42)); err == nil {
		t.Error("expected error marshaling unknown tone")
	}
	if _, err := json.Marshal(Length(-1)); err == nil {
		t.Error("expected error marshaling unknown length")
	}
}

// =============================================================================
// REQUEST TESTS
// =============================================================================

func TestValidateTopic(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		wantMsg string
	}{
		{"empty", "", MsgTopicRequired},
		{"whitespace", "   \t ", MsgTopicRequired},
		{"one char", "a", MsgTopicTooShort},
		{"four chars", "abcd", MsgTopicTooShort},
		{"four chars padded", "  abcd  ", MsgTopicTooShort},
		{"four multibyte", "日本語文", MsgTopicTooShort},
		{"five chars", "abcde", ""},
		{"sentence", "AI in healthcare", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTopic(tc.topic)
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("ValidateTopic(%q) = %v, want nil", tc.topic, err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("ValidateTopic(%q) = %v, want *ValidationError", tc.topic, err)
			}
			if vErr.Message != tc.wantMsg {
				t.Errorf("ValidateTopic(%q) message = %q, want %q", tc.topic, vErr.Message, tc.wantMsg)
			}
		})
	}
}

func TestNormalizeKeywords(t *testing.T) {
	assert.Nil(t, NormalizeKeywords(""))
	assert.Nil(t, NormalizeKeywords("   \n\t"))

	got := NormalizeKeywords("  ai, health  ")
	require.NotNil(t, got)
	assert.Equal(t, "ai, health", *got)
}

func TestGenerationRequestWireShape(t *testing.T) {
	req, err := NewGenerationRequest(" AI in healthcare ", ToneTechnical, LengthShort, "ai, health")
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"topic":"AI in healthcare","tone":"technical","length":"short","keywords":"ai, health"}`, string(data))

	req, err = NewGenerationRequest("Quantum computing", ToneCasual, LengthLong, "   ")
	require.NoError(t, err)
	data, err = json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"topic":"Quantum computing","tone":"casual","length":"long","keywords":null}`, string(data))
}

func TestNewGenerationRequestRejectsShortTopic(t *testing.T) {
	_, err := NewGenerationRequest("abc", DefaultTone, DefaultLength, "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "topic", vErr.Field)
}

// =============================================================================
// DECODING TESTS
// =============================================================================

func TestBlogPostDecodesBackendRecord(t *testing.T) {
	body := `{
		"id": 42,
		"topic": "AI in healthcare",
		"tone": "technical",
		"length": "short",
		"keywords": null,
		"title": "Machines That Heal",
		"content": "## Intro\nText",
		"seo_score": 0,
		"word_count": 712,
		"created_at": "2024-03-05T14:07:09.123456"
	}`

	var p BlogPost
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.Equal(t, ID("42"), p.ID)
	assert.Equal(t, ToneTechnical, p.Tone)
	assert.Equal(t, LengthShort, p.Length)
	assert.Equal(t, "", p.Keywords)
	assert.Equal(t, 712, p.WordCount)
	require.True(t, p.HasSEOScore(), "a zero score is still a score")
	assert.Equal(t, 0.0, *p.SEOScore)

	want := time.Date(2024, 3, 5, 14, 7, 9, 123456000, time.Local)
	assert.True(t, p.CreatedAt.Equal(want), "CreatedAt = %v, want %v", p.CreatedAt.Time, want)
}

func TestBlogPostNullFields(t *testing.T) {
	var p BlogPost
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","title":null,"seo_score":null,"created_at":null}`), &p))
	assert.Equal(t, ID("abc"), p.ID)
	assert.False(t, p.HasSEOScore())
	assert.True(t, p.CreatedAt.IsZero())
	assert.Equal(t, "", p.Title)
}

func TestBlogPostUnknownToneAndLength(t *testing.T) {
	var p BlogPost
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"tone":"Persuasive","length":" epic "}`), &p))
	assert.Equal(t, ToneOther, p.Tone)
	assert.Equal(t, "Persuasive", p.ToneText())
	assert.Equal(t, "Persuasive", p.ToneLabel())
	assert.Equal(t, LengthOther, p.Length)
	assert.Equal(t, "Epic", p.LengthLabel())

	data, err := json.Marshal(&p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tone":"Persuasive"`)
	assert.Contains(t, string(data), `"length":" epic "`)

	var missing BlogPost
	require.NoError(t, json.Unmarshal([]byte(`{"id":4}`), &missing))
	assert.Equal(t, "Unknown", missing.ToneLabel())
}

func TestBlogPostKnownToneRoundTrip(t *testing.T) {
	in := BlogPost{ID: "5", Tone: ToneEducational, Length: LengthLong}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tone":"educational"`)
	assert.NotContains(t, string(data), "RawTone")

	var out BlogPost
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, ToneEducational, out.Tone)
	assert.Equal(t, LengthLong, out.Length)
	assert.Empty(t, out.RawTone)
}

func TestIDRoundTrip(t *testing.T) {
	data, err := json.Marshal(ID("7"))
	require.NoError(t, err)
	assert.Equal(t, "7", string(data))

	data, err = json.Marshal(ID("a-7"))
	require.NoError(t, err)
	assert.Equal(t, `"a-7"`, string(data))
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2024-03-05T14:07:09Z")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ts.Location())

	_, err = ParseTimestamp("2024-03-05 14:07:09")
	require.NoError(t, err)

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}

// =============================================================================
// FORMAT TESTS
// =============================================================================

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.January, 2, 15, 4, 0, 0, time.Local)
	assert.Equal(t, "January 2, 2024 at 03:04 PM", FormatDate(ts))
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestSEOTier(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{100, TierFavorable},
		{80, TierFavorable},
		{79.9, TierCautionary},
		{60, TierCautionary},
		{59, TierUnfavorable},
		{0, TierUnfavorable},
	}
	for _, tc := range tests {
		if got := SEOTier(tc.score); got != tc.want {
			t.Errorf("SEOTier(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
	assert.Equal(t, "73/100", ScoreText(72.6))
}

func TestMarkdownDocumentAndDownloadName(t *testing.T) {
	p := &BlogPost{Title: "AI & You: 2025 Edition", Content: "Body text"}

	assert.Equal(t, "# AI & You: 2025 Edition\n\nBody text", MarkdownDocument(p))
	assert.Equal(t, "ai---you--2025-edition.md", DownloadName(p, ".md"))

	untitled := &BlogPost{Topic: "Remote Work"}
	assert.Equal(t, "remote-work.md", DownloadName(untitled, ".md"))
	assert.Equal(t, "blog-post.json", DownloadName(&BlogPost{}, ".json"))
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World": "hello-world",
		"ABC123":      "abc123",
		"Café":        "caf-",
		"a/b\\c":      "a-b-c",
		"":            "",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKeywordList(t *testing.T) {
	assert.Equal(t, []string{"ai", "health", "ml"}, KeywordList(" ai, health ,,ml "))
	assert.Empty(t, KeywordList(""))
	assert.Empty(t, KeywordList(" , "))
}

func TestStripMarkdown(t *testing.T) {
	got := StripMarkdown("# Title\n## Section\nSome #hashtag text")
	assert.Equal(t, "Title Section Some #hashtag text", got)
	assert.False(t, strings.Contains(got, "\n"))
}

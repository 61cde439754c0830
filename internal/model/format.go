// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// DateLayout renders timestamps as "January 2, 2006 at 03:04 PM".
const DateLayout = "January 2, 2006 at 03:04 PM"

// FormatDate renders t in local time using DateLayout. The zero time renders
// as an empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

// =============================================================================
// SEO SCORE
// =============================================================================

// Tier buckets an SEO score for display.
type Tier int

const (
	TierUnfavorable Tier = iota
	TierCautionary
	TierFavorable
)

// Score thresholds, inclusive.
const (
	FavorableScore  = 80
	CautionaryScore = 60
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierFavorable:
		return "favorable"
	case TierCautionary:
		return "cautionary"
	case TierUnfavorable:
		return "unfavorable"
	default:
		return "unknown"
	}
}

// SEOTier maps a score to its display tier.
func SEOTier(score float64) Tier {
	switch {
	case score >= FavorableScore:
		return TierFavorable
	case score >= CautionaryScore:
		return TierCautionary
	default:
		return TierUnfavorable
	}
}

// ScoreText renders a score as "72/100", rounded to an integer.
func ScoreText(score float64) string {
	return fmt.Sprintf("%d/100", int(math.Round(score)))
}

// =============================================================================
// MARKDOWN EXPORT
// =============================================================================

// MarkdownDocument joins a post's title and body into one markdown file.
func MarkdownDocument(p *BlogPost) string {
	return "# " + p.Title + "\n\n" + p.Content
}

// Slugify replaces every character outside [A-Za-z0-9] with '-' and
// lowercases the result. Runs of separators are kept as-is.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// DownloadName returns the export filename for a post with the given
// extension (".md" for the markdown download). Untitled posts fall back to
// the topic, then to "blog-post".
func DownloadName(p *BlogPost, ext string) string {
	base := p.Title
	if strings.TrimSpace(base) == "" {
		base = p.Topic
	}
	slug := Slugify(base)
	if strings.Trim(slug, "-") == "" {
		slug = "blog-post"
	}
	return slug + ext
}

// =============================================================================
// KEYWORDS AND PREVIEWS
// =============================================================================

// KeywordList splits the comma-separated keywords, dropping blanks.
func KeywordList(keywords string) []string {
	var out []string
	for _, k := range strings.Split(keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

var headingMarker = regexp.MustCompile(`#{1,6}\s`)

// StripMarkdown removes heading markers and folds newlines into spaces, for
// one-line previews of a post body.
func StripMarkdown(content string) string {
	content = headingMarker.ReplaceAllString(content, "")
	return strings.ReplaceAll(content, "\n", " ")
}

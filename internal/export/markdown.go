// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/blogsmith-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes "# <title>\n\n<content>", optionally preceded by
// YAML front matter.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a post to Markdown.
func (e *MarkdownExporter) Export(post *model.BlogPost) ([]byte, error) {
	if post == nil {
		return nil, ErrNilPost
	}

	var sb strings.Builder
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(post.Title)))
		sb.WriteString(fmt.Sprintf("topic: %s\n", escapeYAML(post.Topic)))
		sb.WriteString(fmt.Sprintf("tone: %s\n", escapeYAML(post.ToneText())))
		sb.WriteString(fmt.Sprintf("length: %s\n", escapeYAML(post.LengthText())))
		if kws := model.KeywordList(post.Keywords); len(kws) > 0 {
			sb.WriteString("keywords:\n")
			for _, k := range kws {
				sb.WriteString(fmt.Sprintf("  - %s\n", escapeYAML(k)))
			}
		}
		sb.WriteString(fmt.Sprintf("seo_score: %s\n", scoreLabel(post)))
		sb.WriteString(fmt.Sprintf("word_count: %d\n", post.WordCount))
		if !post.CreatedAt.IsZero() {
			sb.WriteString(fmt.Sprintf("date: %s\n", post.CreatedAt.Format(time.RFC3339)))
		}
		sb.WriteString("generator: blogsmith\n")
		sb.WriteString("---\n\n")
	}

	sb.WriteString(model.MarkdownDocument(post))
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// escapeYAML quotes a scalar when it contains characters YAML would
// interpret.
func escapeYAML(s string) string {
	if s == "" {
		return `""`
	}
	if !strings.ContainsAny(s, ":#\n\r\"'[]{}&*!|>%@`,") && strings.TrimSpace(s) == s {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}

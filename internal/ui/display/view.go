// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package display

import (
	"fmt"
	"strings"

	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/jeranaias/blogsmith-tui/internal/ui/components"
	"github.com/jeranaias/blogsmith-tui/internal/util"
)

// Placeholder texts for the empty display.
const (
	EmptyTitle = "No Content Yet"
	EmptyHint  = "Fill out the form and generate your first AI-powered blog post"
)

// chromeHeight is the number of lines rendered above the content viewport:
// title, metadata, badges, actions, notice and a blank separator.
func (m Model) chromeHeight() int {
	return 6
}

// View renders the post, or the placeholder when there is none.
func (m Model) View() string {
	if m.post == nil {
		return m.theme.PaneTitle.Render(EmptyTitle) + "\n" +
			m.theme.EmptyState.Render(EmptyHint)
	}

	p := m.post
	var b strings.Builder

	b.WriteString(m.theme.Title.Render(util.TruncateWidth(p.DisplayTitle(), m.width)))
	b.WriteString("\n")
	b.WriteString(m.theme.Meta.Render(util.TruncateWidth(m.metaLine(), m.width)))
	b.WriteString("\n")
	b.WriteString(m.badgeLine())
	b.WriteString("\n")
	b.WriteString(m.actionsLine())
	b.WriteString("\n")
	b.WriteString(m.noticeLine())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())

	return b.String()
}

func (m Model) metaLine() string {
	p := m.post
	parts := make([]string, 0, 5)
	if d := model.FormatDate(p.CreatedAt.Time); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts,
		components.Plural(p.WordCount, "word", "words"),
		p.Tone.Icon()+" "+p.ToneLabel(),
		p.LengthLabel(),
	)
	if p.Topic != "" {
		parts = append(parts, "Topic: "+p.Topic)
	}
	return strings.Join(parts, " | ")
}

// badgeLine renders the SEO badge and keyword chips. A present score of
// zero still gets a badge.
func (m Model) badgeLine() string {
	p := m.post
	var parts []string
	if p.HasSEOScore() {
		score := *p.SEOScore
		parts = append(parts, m.theme.SEOBadge(model.SEOTier(score)).Render("SEO "+model.ScoreText(score)))
	}
	kws := model.KeywordList(p.Keywords)
	if len(kws) > 0 {
		parts = append(parts, m.theme.Meta.Render(fmt.Sprintf("# %d keywords", len(kws))))
		for _, k := range kws {
			parts = append(parts, m.theme.KeywordChip.Render(k))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ")
}

func (m Model) actionsLine() string {
	copyLabel := m.theme.ActionKey.Render("c") + " " + m.theme.ActionDesc.Render("Copy")
	if m.copied {
		copyLabel = m.theme.ActionDone.Render("Copied!")
	}
	return strings.Join([]string{
		copyLabel,
		m.theme.ActionKey.Render("s") + " " + m.theme.ActionDesc.Render("Download"),
		m.theme.ActionKey.Render("S") + " " + m.theme.ActionDesc.Render("Export "+m.opts.AltFormat),
	}, "   ")
}

func (m Model) noticeLine() string {
	if m.notice == "" {
		return ""
	}
	text := util.TruncateWidth(m.notice, m.width)
	if m.noticeErr {
		return m.theme.FieldError.Render(text)
	}
	return m.theme.ActionDone.Render(text)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"fmt"
	"strings"

	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/jeranaias/blogsmith-tui/internal/ui/components"
	"github.com/jeranaias/blogsmith-tui/internal/util"
)

// rowHeight is the number of lines one post takes: title, preview, meta and
// a separator.
const rowHeight = 4

// headerHeight covers the pane title and the confirm/alert line.
const headerHeight = 3

func (m Model) visibleRows() int {
	n := (m.height - headerHeight) / rowHeight
	if n < 1 {
		return 1
	}
	return n
}

// View renders the list in its current state.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.titleLine())
	b.WriteString("\n")

	switch m.posts.Status() {
	case components.FetchIdle, components.FetchLoading:
		if len(m.posts.Value()) == 0 {
			b.WriteString("\n")
			b.WriteString(m.spinner.View())
			return b.String()
		}
	case components.FetchError:
		b.WriteString("\n")
		b.WriteString(components.RenderBanner(m.theme, components.BannerError, MsgLoadFailed, "press r to retry", m.width))
		return b.String()
	}

	posts := m.posts.Value()
	if len(posts) == 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.PaneTitle.Render(MsgEmptyTitle))
		b.WriteString("\n")
		b.WriteString(m.theme.EmptyState.Render(MsgEmptyHint))
		return b.String()
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	end := m.offset + m.visibleRows()
	if end > len(posts) {
		end = len(posts)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(&posts[i], i == m.cursor))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) titleLine() string {
	if m.posts.IsLoaded() {
		return m.theme.PaneTitle.Render(fmt.Sprintf("History (%d)", m.total))
	}
	return m.theme.PaneTitle.Render("Blog History")
}

// statusLine shows the alert, the confirmation prompt or the post count.
func (m Model) statusLine() string {
	switch {
	case m.alert != "":
		return components.RenderBanner(m.theme, components.BannerError, m.alert, "enter to dismiss", m.width)
	case m.confirming != "":
		return m.theme.Confirm.Render(MsgConfirmDelete + " (y/n)")
	default:
		return m.theme.Muted.Render(components.Plural(m.total, "post", "posts") + " generated")
	}
}

func (m Model) renderRow(p *model.BlogPost, selected bool) string {
	inner := m.width - 2
	if inner < 10 {
		inner = 10
	}

	title := util.TruncateWidth(p.DisplayTitle(), inner-2)
	if m.deleting[p.ID] {
		title = m.spinner.Frame() + " " + title
	}
	preview := util.TruncateWidth(util.Truncate(model.StripMarkdown(p.Content), m.previewLength), inner)
	meta := util.TruncateWidth(metaLine(p), inner)

	body := m.theme.HistoryTitle.Render(title) + "\n" +
		m.theme.HistoryPreview.Render(preview) + "\n" +
		m.theme.HistoryMeta.Render(meta)

	style := m.theme.HistoryItem
	if selected && m.active {
		style = m.theme.HistoryItemSelected
	}
	return style.Render(body)
}

func metaLine(p *model.BlogPost) string {
	parts := make([]string, 0, 5)
	if d := model.FormatDate(p.CreatedAt.Time); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts,
		components.Plural(p.WordCount, "word", "words"),
		p.ToneLabel(),
		p.LengthLabel(),
	)
	if p.HasSEOScore() {
		parts = append(parts, "SEO: "+model.ScoreText(*p.SEOScore))
	}
	return strings.Join(parts, " | ")
}

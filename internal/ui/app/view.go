// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/blogsmith-tui/internal/ui/components"
	"github.com/jeranaias/blogsmith-tui/internal/ui/styles"
)

// Banner texts.
const (
	MsgGenerated = "Blog post generated successfully!"
	msgOffline   = "Cannot connect to the API server. Make sure the backend is running at %s"
)

// minHistoryHeight keeps a few rows of history visible under the form.
const minHistoryHeight = 8

// OfflineMessage returns the disconnected banner text for baseURL.
func OfflineMessage(baseURL string) string {
	return fmt.Sprintf(msgOffline, baseURL)
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout recomputes pane sizes after any change that affects chrome height.
func (m *Model) layout() {
	m.header.SetWidth(m.width)
	m.help.Width = m.width

	frameW, frameH := m.theme.Pane.GetFrameSize()
	body := m.bodyHeight()

	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		innerW := m.width - frameW
		innerH := body - frameH - 1 // tab strip
		m.form.SetWidth(innerW)
		m.display.SetSize(innerW, innerH)
		m.history.SetSize(innerW, innerH)
		return
	}

	leftW := m.width * 2 / 5
	rightW := m.width - leftW
	m.form.SetWidth(leftW - frameW)
	formH := lipgloss.Height(m.form.View()) + frameH
	histH := body - formH
	if histH < minHistoryHeight {
		histH = minHistoryHeight
	}
	m.history.SetSize(leftW-frameW, histH-frameH)
	m.display.SetSize(rightW-frameW, body-frameH)
}

func (m *Model) bodyHeight() int {
	h := m.height - lipgloss.Height(m.header.View()) - lipgloss.Height(m.help.View(m.helpKeys()))
	if b := m.bannersView(); b != "" {
		h -= lipgloss.Height(b)
	}
	if h < 10 {
		h = 10
	}
	return h
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole screen.
func (m *Model) View() string {
	parts := []string{m.header.View()}
	if b := m.bannersView(); b != "" {
		parts = append(parts, b)
	}
	parts = append(parts, m.bodyView(), m.help.View(m.helpKeys()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// bannersView stacks the offline, error and success banners.
func (m *Model) bannersView() string {
	var lines []string
	if m.state.Connectivity() == components.ConnDisconnected {
		lines = append(lines, components.RenderBanner(m.theme, components.BannerWarning,
			OfflineMessage(m.opts.BaseURL), "alt+r to retry", m.width))
	}
	if m.state.Error != "" {
		lines = append(lines, components.RenderBanner(m.theme, components.BannerError,
			m.state.Error, "alt+e to dismiss", m.width))
	}
	if m.state.Success {
		lines = append(lines, components.RenderBanner(m.theme, components.BannerSuccess,
			MsgGenerated, "alt+s to dismiss", m.width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) bodyView() string {
	body := m.bodyHeight()

	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		var content string
		switch m.focus {
		case PaneForm:
			content = m.form.View()
		case PaneDisplay:
			content = m.display.View()
		case PaneHistory:
			content = m.history.View()
		}
		pane := m.pane(m.focus, m.width).Height(body - 3).Render(content)
		return lipgloss.JoinVertical(lipgloss.Left, m.tabStrip(), pane)
	}

	leftW := m.width * 2 / 5
	rightW := m.width - leftW

	formPane := m.pane(PaneForm, leftW).Render(m.form.View())
	histH := body - lipgloss.Height(formPane)
	if histH < minHistoryHeight {
		histH = minHistoryHeight
	}
	histPane := m.pane(PaneHistory, leftW).Height(histH - 2).Render(m.history.View())
	left := lipgloss.JoinVertical(lipgloss.Left, formPane, histPane)

	right := m.pane(PaneDisplay, rightW).Height(body - 2).Render(m.display.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// pane returns the border style for p at the given outer width.
func (m *Model) pane(p Pane, outer int) lipgloss.Style {
	style := m.theme.Pane
	if p == m.focus {
		style = m.theme.PaneFocused
	}
	frameW, _ := style.GetFrameSize()
	return style.Width(outer - frameW + style.GetHorizontalPadding())
}

// tabStrip names the panes in narrow mode, highlighting the focused one.
func (m *Model) tabStrip() string {
	names := []string{"Generate", "Post", "History"}
	tabs := make([]string, len(names))
	for i, n := range names {
		if Pane(i) == m.focus {
			tabs[i] = m.theme.OptionSelected.Render(n)
		} else {
			tabs[i] = m.theme.Option.Render(n)
		}
	}
	return strings.Join(tabs, "  ")
}

// helpKeys merges the focused pane's bindings with the global ones.
func (m *Model) helpKeys() paneKeys {
	var short []key.Binding
	var full [][]key.Binding
	switch m.focus {
	case PaneForm:
		short, full = m.form.Keys().ShortHelp(), m.form.Keys().FullHelp()
	case PaneDisplay:
		short, full = m.display.Keys().ShortHelp(), m.display.Keys().FullHelp()
	case PaneHistory:
		short, full = m.history.Keys().ShortHelp(), m.history.Keys().FullHelp()
	}
	global := m.keys.globalHelp()
	if m.state.Error != "" {
		global = append(global, m.keys.DismissError)
	}
	if m.state.Success {
		global = append(global, m.keys.DismissSuccess)
	}
	return paneKeys{
		short: append(append([]key.Binding{}, short...), global...),
		full:  append(append([][]key.Binding{}, full...), global),
	}
}

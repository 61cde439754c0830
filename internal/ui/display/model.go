// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package display

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/blogsmith-tui/internal/export"
	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/jeranaias/blogsmith-tui/internal/ui/components"
	"github.com/jeranaias/blogsmith-tui/internal/ui/styles"
)

// Default indicator lifetimes.
const (
	DefaultCopiedTTL = 2 * time.Second
	DefaultNoticeTTL = 2 * time.Second
)

// =============================================================================
// CLIPBOARD
// =============================================================================

// ClipboardWriter writes text to the system clipboard.
type ClipboardWriter interface {
	WriteAll(text string) error
}

// ClipboardFunc adapts a function to ClipboardWriter.
type ClipboardFunc func(text string) error

// WriteAll calls f(text).
func (f ClipboardFunc) WriteAll(text string) error { return f(text) }

// SystemClipboard writes through atotto/clipboard.
var SystemClipboard ClipboardWriter = ClipboardFunc(clipboard.WriteAll)

// =============================================================================
// OPTIONS AND MESSAGES
// =============================================================================

// Options configures a display.
type Options struct {
	// ExportDir receives downloads.
	ExportDir string
	// AltFormat is the format of the secondary export ("html" or "json").
	AltFormat string
	// Appearance selects the markdown style ("dark", "light", "auto").
	Appearance string
	// WordWrap fixes the wrap width (0 = fit the pane).
	WordWrap int
	// Clipboard defaults to SystemClipboard.
	Clipboard ClipboardWriter
	// CopiedTTL and NoticeTTL default to two seconds.
	CopiedTTL time.Duration
	NoticeTTL time.Duration
}

type copiedMsg struct {
	seq int
	err error
}

type copyResetMsg struct{ seq int }

type savedMsg struct {
	seq  int
	path string
	err  error
}

type noticeResetMsg struct{ seq int }

// =============================================================================
// MODEL
// =============================================================================

// Model renders one post. Its content is a pure function of the post; the
// copy and download indicators are the only local state.
type Model struct {
	theme    *styles.Theme
	keys     KeyMap
	opts     Options
	markdown *components.Markdown

	post     *model.BlogPost
	viewport viewport.Model
	width    int
	height   int
	active   bool

	copied    bool
	copySeq   int
	notice    string
	noticeErr bool
	noticeSeq int
}

// New creates an empty display.
func New(theme *styles.Theme, opts Options) Model {
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard
	}
	if opts.CopiedTTL <= 0 {
		opts.CopiedTTL = DefaultCopiedTTL
	}
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = DefaultNoticeTTL
	}
	if opts.AltFormat == "" {
		opts.AltFormat = "html"
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	vp := viewport.New(60, 10)
	vp.KeyMap = viewport.KeyMap{}

	return Model{
		theme:    theme,
		keys:     DefaultKeyMap(),
		opts:     opts,
		markdown: components.NewMarkdown(opts.Appearance),
		viewport: vp,
		width:    60,
		height:   20,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Keys returns the key map, for the help view.
func (m Model) Keys() KeyMap { return m.keys }

// Post returns the displayed post.
func (m Model) Post() *model.BlogPost { return m.post }

// Copied reports whether the copied indicator is showing.
func (m Model) Copied() bool { return m.copied }

// Notice returns the transient download notice.
func (m Model) Notice() string { return m.notice }

// ScrollOffset returns the viewport's vertical offset.
func (m Model) ScrollOffset() int { return m.viewport.YOffset }

// Focus marks the display as the active pane.
func (m *Model) Focus() { m.active = true }

// Blur marks the display as inactive.
func (m *Model) Blur() { m.active = false }

// Focused reports whether the display is the active pane.
func (m Model) Focused() bool { return m.active }

// SetPost replaces the post and scrolls back to the top. Indicators tied
// to the previous post are cleared.
func (m *Model) SetPost(p *model.BlogPost) {
	m.post = p
	m.copied = false
	m.copySeq++
	m.notice = ""
	m.noticeSeq++
	m.refreshContent()
	m.viewport.GotoTop()
}

// SetSize sets the outer size of the pane.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refreshContent()
}

// ScrollToTop resets the viewport.
func (m *Model) ScrollToTop() {
	m.viewport.GotoTop()
}

func (m *Model) refreshContent() {
	m.viewport.Width = m.width
	vh := m.height - m.chromeHeight()
	if vh < 3 {
		vh = 3
	}
	m.viewport.Height = vh

	if m.post == nil {
		m.viewport.SetContent("")
		return
	}
	wrap := m.opts.WordWrap
	if wrap <= 0 || wrap > m.width {
		wrap = m.width
	}
	m.viewport.SetContent(m.markdown.Render(m.post.Content, wrap))
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles action keys, scroll keys and indicator timers.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case copiedMsg:
		if msg.seq != m.copySeq {
			return m, nil
		}
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("failed to copy blog post to clipboard")
			m.copied = false
			return m, nil
		}
		m.copied = true
		seq := msg.seq
		return m, tea.Tick(m.opts.CopiedTTL, func(time.Time) tea.Msg {
			return copyResetMsg{seq: seq}
		})

	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil

	case savedMsg:
		if msg.seq != m.noticeSeq {
			return m, nil
		}
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("failed to save blog post")
			m.notice = "Save failed: " + msg.err.Error()
			m.noticeErr = true
		} else {
			log.Info().Str("path", msg.path).Msg("blog post saved")
			m.notice = "Saved to " + msg.path
			m.noticeErr = false
		}
		seq := msg.seq
		return m, tea.Tick(m.opts.NoticeTTL, func(time.Time) tea.Msg {
			return noticeResetMsg{seq: seq}
		})

	case noticeResetMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		return m.copy()
	case key.Matches(msg, m.keys.Download):
		return m.save(export.NewMarkdownExporter(nil))
	case key.Matches(msg, m.keys.ExportAlt):
		exp, err := export.ForFormat(m.opts.AltFormat, &export.Options{Theme: themeName(m.theme), IncludeMetadata: true})
		if err != nil {
			log.Error().Err(err).Msg("alternate export format unavailable")
			return m, nil
		}
		return m.save(exp)
	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	}
	return m, nil
}

// copy writes the markdown document to the clipboard off the event loop.
func (m Model) copy() (Model, tea.Cmd) {
	if m.post == nil {
		return m, nil
	}
	m.copySeq++
	seq := m.copySeq
	doc := model.MarkdownDocument(m.post)
	cb := m.opts.Clipboard
	return m, func() tea.Msg {
		return copiedMsg{seq: seq, err: cb.WriteAll(doc)}
	}
}

// save writes the post through exp into the export directory.
func (m Model) save(exp export.Exporter) (Model, tea.Cmd) {
	if m.post == nil {
		return m, nil
	}
	m.noticeSeq++
	seq := m.noticeSeq
	post := *m.post
	opts := &export.Options{OutputDir: m.opts.ExportDir}
	return m, func() tea.Msg {
		path, err := export.ExportToFile(&post, exp, opts)
		return savedMsg{seq: seq, path: path, err: err}
	}
}

func themeName(t *styles.Theme) string {
	if t != nil && t.IsDark {
		return "dark"
	}
	return "light"
}

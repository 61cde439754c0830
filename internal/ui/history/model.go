// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/blogsmith-tui/internal/api"
	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/jeranaias/blogsmith-tui/internal/ui/components"
	"github.com/jeranaias/blogsmith-tui/internal/ui/styles"
)

// User-facing messages.
const (
	MsgLoadFailed    = "Failed to load blog history"
	MsgDeleteFailed  = "Failed to delete blog post"
	MsgConfirmDelete = "Are you sure you want to delete this blog post?"
	MsgEmptyTitle    = "No Blogs Yet"
	MsgEmptyHint     = "Generate your first blog post to see it here"
)

// Backend is the part of the API client the history list needs.
type Backend interface {
	ListBlogs(ctx context.Context, skip, limit int) (*model.BlogList, error)
	DeleteBlog(ctx context.Context, id model.ID) (*model.Confirmation, error)
}

// =============================================================================
// MESSAGES
// =============================================================================

// SelectMsg asks the owner to display a post.
type SelectMsg struct {
	Post model.BlogPost
}

type loadedMsg struct {
	seq  uint64
	list *model.BlogList
	err  error
}

type deletedMsg struct {
	id  model.ID
	err error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the history list.
type Model struct {
	theme   *styles.Theme
	keys    KeyMap
	backend Backend

	posts   components.Fetch[[]model.BlogPost]
	total   int
	trigger int
	limit   int

	cursor     int
	offset     int
	confirming model.ID
	deleting   map[model.ID]bool
	// removed holds ids deleted since the last fetch started; the
	// in-flight list may predate those deletes.
	removed map[model.ID]bool
	alert   string

	previewLength int
	width         int
	height        int
	active        bool
	spinner       components.Spinner
}

// Options configures the list.
type Options struct {
	// PreviewLength is the preview size in characters (default 150).
	PreviewLength int
	// Limit is the page size requested from the backend (default 20).
	Limit int
}

// New creates a history list backed by b.
func New(theme *styles.Theme, b Backend, opts Options) Model {
	if opts.PreviewLength <= 0 {
		opts.PreviewLength = 150
	}
	if opts.Limit <= 0 {
		opts.Limit = api.DefaultLimit
	}
	return Model{
		theme:         theme,
		keys:          DefaultKeyMap(),
		backend:       b,
		limit:         opts.Limit,
		deleting:      make(map[model.ID]bool),
		removed:       make(map[model.ID]bool),
		previewLength: opts.PreviewLength,
		width:         60,
		height:        20,
		spinner:       components.NewSpinner(theme, styles.LineSpinner, "Loading history..."),
	}
}

// Init starts the first fetch.
func (m *Model) Init() tea.Cmd {
	return m.fetch()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Keys returns the key map, for the help view.
func (m Model) Keys() KeyMap { return m.keys }

// Status returns the fetch status.
func (m Model) Status() components.FetchStatus { return m.posts.Status() }

// Posts returns the loaded posts.
func (m Model) Posts() []model.BlogPost { return m.posts.Value() }

// Total returns the backend's total count, adjusted for local deletes.
func (m Model) Total() int { return m.total }

// Cursor returns the selected row index.
func (m Model) Cursor() int { return m.cursor }

// Confirming returns the id awaiting delete confirmation, if any.
func (m Model) Confirming() model.ID { return m.confirming }

// Deleting reports whether a delete for id is outstanding.
func (m Model) Deleting(id model.ID) bool { return m.deleting[id] }

// Spinning reports whether the busy spinner is animating.
func (m Model) Spinning() bool { return m.spinner.IsActive() }

// Alert returns the blocking alert text, if any.
func (m Model) Alert() string { return m.alert }

// RefreshTrigger returns the last trigger value seen.
func (m Model) RefreshTrigger() int { return m.trigger }

// Focus marks the list as the active pane.
func (m *Model) Focus() { m.active = true }

// Blur marks the list as inactive.
func (m *Model) Blur() { m.active = false }

// Focused reports whether the list is the active pane.
func (m Model) Focused() bool { return m.active }

// SetSize sets the pane size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampCursor()
}

// SetRefreshTrigger refetches when n differs from the last value seen.
func (m *Model) SetRefreshTrigger(n int) tea.Cmd {
	if n == m.trigger {
		return nil
	}
	m.trigger = n
	return m.fetch()
}

// Refresh refetches unconditionally.
func (m *Model) Refresh() tea.Cmd {
	return m.fetch()
}

// fetch starts a list request tagged with a fresh sequence token.
func (m *Model) fetch() tea.Cmd {
	seq := m.posts.Start()
	clear(m.removed)
	backend := m.backend
	limit := m.limit
	spin := m.spinner.Start()
	return tea.Batch(spin, func() tea.Msg {
		list, err := backend.ListBlogs(context.Background(), api.DefaultSkip, limit)
		return loadedMsg{seq: seq, list: list, err: err}
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles list results, delete results, keys and spinner ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		var posts []model.BlogPost
		total := 0
		if msg.list != nil {
			posts = msg.list.Blogs
			total = msg.list.Total
		}
		if posts == nil {
			posts = []model.BlogPost{}
		}
		if msg.seq == m.posts.Seq() && len(m.removed) > 0 {
			posts, total = m.dropRemoved(posts, total)
		}
		if !m.posts.Resolve(msg.seq, posts, msg.err) {
			log.Debug().Uint64("seq", msg.seq).Msg("dropping stale history result")
			return m, nil
		}
		if len(m.deleting) == 0 {
			m.spinner.Stop()
		}
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("error fetching blogs")
			return m, nil
		}
		if total < len(posts) {
			total = len(posts)
		}
		m.total = total
		if m.confirming != "" && indexOf(posts, m.confirming) < 0 {
			m.confirming = ""
		}
		m.clampCursor()
		return m, nil

	case deletedMsg:
		delete(m.deleting, msg.id)
		if len(m.deleting) == 0 && !m.posts.IsLoading() {
			m.spinner.Stop()
		}
		if msg.err != nil {
			log.Error().Err(msg.err).Str("id", msg.id.String()).Msg("error deleting blog")
			m.alert = MsgDeleteFailed
			return m, nil
		}
		m.removed[msg.id] = true
		m.removeLocal(msg.id)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// A blocking alert swallows everything until dismissed.
	if m.alert != "" {
		if key.Matches(msg, m.keys.Dismiss) {
			m.alert = ""
		}
		return m, nil
	}

	if m.confirming != "" {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			id := m.confirming
			m.confirming = ""
			return m, m.startDelete(id)
		case key.Matches(msg, m.keys.Cancel):
			m.confirming = ""
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Refresh) {
		return m, m.fetch()
	}

	if !m.posts.IsLoaded() {
		return m, nil
	}
	posts := m.posts.Value()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(posts)-1 {
			m.cursor++
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.Select):
		if len(posts) == 0 || m.deleting[posts[m.cursor].ID] {
			return m, nil
		}
		post := posts[m.cursor]
		return m, func() tea.Msg { return SelectMsg{Post: post} }
	case key.Matches(msg, m.keys.Delete):
		if len(posts) == 0 || m.deleting[posts[m.cursor].ID] {
			return m, nil
		}
		m.confirming = posts[m.cursor].ID
	}
	return m, nil
}

// startDelete marks id busy and issues the delete call.
func (m *Model) startDelete(id model.ID) tea.Cmd {
	m.deleting[id] = true
	backend := m.backend
	var spin tea.Cmd
	if !m.spinner.IsActive() {
		spin = m.spinner.Start()
	}
	return tea.Batch(spin, func() tea.Msg {
		_, err := backend.DeleteBlog(context.Background(), id)
		return deletedMsg{id: id, err: err}
	})
}

// removeLocal drops the row with id and decrements the total.
func (m *Model) removeLocal(id model.ID) {
	posts := m.posts.Value()
	i := indexOf(posts, id)
	if i < 0 {
		return
	}
	next := make([]model.BlogPost, 0, len(posts)-1)
	next = append(next, posts[:i]...)
	next = append(next, posts[i+1:]...)
	m.posts.Set(next)
	if m.total > 0 {
		m.total--
	}
	if i < m.cursor {
		m.cursor--
	}
	m.clampCursor()
}

// dropRemoved filters rows deleted after the list request was issued.
func (m *Model) dropRemoved(posts []model.BlogPost, total int) ([]model.BlogPost, int) {
	kept := make([]model.BlogPost, 0, len(posts))
	for _, p := range posts {
		if m.removed[p.ID] {
			total--
			continue
		}
		kept = append(kept, p)
	}
	if total < 0 {
		total = 0
	}
	return kept, total
}

func (m *Model) clampCursor() {
	n := len(m.posts.Value())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func indexOf(posts []model.BlogPost, id model.ID) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}

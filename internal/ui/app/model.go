// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/blogsmith-tui/internal/api"
	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/jeranaias/blogsmith-tui/internal/ui/components"
	"github.com/jeranaias/blogsmith-tui/internal/ui/display"
	"github.com/jeranaias/blogsmith-tui/internal/ui/form"
	"github.com/jeranaias/blogsmith-tui/internal/ui/history"
	"github.com/jeranaias/blogsmith-tui/internal/ui/styles"
)

// DefaultSuccessTTL is how long the generated banner stays up.
const DefaultSuccessTTL = 3 * time.Second

// Backend is the API surface the application drives.
type Backend interface {
	history.Backend
	Generate(ctx context.Context, req model.GenerationRequest) (*model.BlogPost, error)
	GetBlog(ctx context.Context, id model.ID) (*model.BlogPost, error)
	CheckHealth(ctx context.Context) (*model.HealthStatus, error)
}

// Options configures the application.
type Options struct {
	// BaseURL is shown in the header and the offline banner.
	BaseURL string
	// SuccessTTL defaults to DefaultSuccessTTL.
	SuccessTTL time.Duration
	Display    display.Options
	History    history.Options
}

// =============================================================================
// MESSAGES
// =============================================================================

type healthMsg struct {
	seq    uint64
	status *model.HealthStatus
	err    error
}

type generatedMsg struct {
	post *model.BlogPost
	err  error
}

type successResetMsg struct{ seq int }

type refreshedMsg struct {
	id   model.ID
	post *model.BlogPost
	err  error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	state State

	theme   *styles.Theme
	keys    KeyMap
	backend Backend
	opts    Options

	header  *components.Header
	form    form.Model
	display display.Model
	history history.Model
	help    help.Model

	focus      Pane
	successSeq int
	width      int
	height     int
}

// New creates the application model.
func New(theme *styles.Theme, backend Backend, opts Options) *Model {
	if opts.SuccessTTL <= 0 {
		opts.SuccessTTL = DefaultSuccessTTL
	}
	m := &Model{
		theme:   theme,
		keys:    DefaultKeyMap(),
		backend: backend,
		opts:    opts,
		header:  components.NewHeader(theme, opts.BaseURL),
		form:    form.New(theme),
		display: display.New(theme, opts.Display),
		history: history.New(theme, backend, opts.History),
		help:    help.New(),
		width:   100,
		height:  40,
	}
	m.help.Styles.ShortKey = theme.ShortcutKey
	m.help.Styles.ShortDesc = theme.ShortcutDesc
	m.help.Styles.FullKey = theme.ShortcutKey
	m.help.Styles.FullDesc = theme.ShortcutDesc
	m.setFocus(PaneForm)
	m.layout()
	return m
}

// Init probes the backend once, loads the history and starts the cursor.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.probe(),
		m.history.Init(),
		m.form.Init(),
	)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns a copy of the application state.
func (m *Model) State() State { return m.state }

// Focus returns the focused pane.
func (m *Model) Focus() Pane { return m.focus }

// Form returns the form component.
func (m *Model) Form() form.Model { return m.form }

// Display returns the display component.
func (m *Model) Display() display.Model { return m.display }

// History returns the history component.
func (m *Model) History() history.Model { return m.history }

// =============================================================================
// UPDATE
// =============================================================================

// Update is the only writer of State.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case healthMsg:
		var status model.HealthStatus
		if msg.status != nil {
			status = *msg.status
		}
		if !m.state.Health.Resolve(msg.seq, status, msg.err) {
			return m, nil
		}
		if msg.err != nil {
			log.Warn().Err(msg.err).Str("base_url", m.opts.BaseURL).Msg("backend health check failed")
		}
		m.header.SetConnectivity(m.state.Connectivity())
		m.layout()
		return m, nil

	case form.SubmitMsg:
		return m.generate(msg.Request)

	case generatedMsg:
		return m.handleGenerated(msg)

	case successResetMsg:
		if msg.seq == m.successSeq && m.state.Success {
			m.state.Success = false
			m.layout()
		}
		return m, nil

	case history.SelectMsg:
		return m.selectPost(msg.Post)

	case refreshedMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Str("id", msg.id.String()).Msg("failed to refresh selected blog post")
			return m, nil
		}
		cur := m.state.Current
		if cur == nil || cur.ID != msg.id || msg.post == nil || samePost(cur, msg.post) {
			return m, nil
		}
		m.state.Current = msg.post
		m.display.SetPost(msg.post)
		return m, nil
	}

	return m, m.forward(msg)
}

// forward hands a non-key message to every child. Children ignore messages
// that are not theirs; spinner ticks carry their own ids.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	cmds = append(cmds, cmd)
	m.display, cmd = m.display.Update(msg)
	cmds = append(cmds, cmd)
	m.history, cmd = m.history.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextPane):
		m.setFocus((m.focus + 1) % paneCount)
		return m, nil
	case key.Matches(msg, m.keys.PrevPane):
		m.setFocus((m.focus + paneCount - 1) % paneCount)
		return m, nil
	case key.Matches(msg, m.keys.DismissError):
		m.state.Error = ""
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.DismissSuccess):
		m.state.Success = false
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Reprobe):
		return m, m.probe()
	case key.Matches(msg, m.keys.Help) && !m.typing():
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case PaneForm:
		m.form, cmd = m.form.Update(msg)
	case PaneDisplay:
		m.display, cmd = m.display.Update(msg)
	case PaneHistory:
		m.history, cmd = m.history.Update(msg)
	}
	return m, cmd
}

// typing reports whether keys go to a text input, where "?" is a character.
func (m *Model) typing() bool {
	if m.focus != PaneForm || m.form.Submitting() {
		return false
	}
	f := m.form.FocusedField()
	return f == form.FieldTopic || f == form.FieldKeywords
}

func (m *Model) setFocus(p Pane) {
	m.focus = p
	m.form.Blur()
	m.display.Blur()
	m.history.Blur()
	switch p {
	case PaneForm:
		m.form.Focus()
	case PaneDisplay:
		m.display.Focus()
	case PaneHistory:
		m.history.Focus()
	}
	m.layout()
}

// =============================================================================
// FLOWS
// =============================================================================

// probe starts a health check. It runs at startup and on alt+r only.
func (m *Model) probe() tea.Cmd {
	seq := m.state.Health.Start()
	m.header.SetConnectivity(m.state.Connectivity())
	backend := m.backend
	return func() tea.Msg {
		status, err := backend.CheckHealth(context.Background())
		return healthMsg{seq: seq, status: status, err: err}
	}
}

func (m *Model) generate(req model.GenerationRequest) (tea.Model, tea.Cmd) {
	if m.state.Generating {
		return m, nil
	}
	m.state.Generating = true
	m.state.Error = ""
	m.state.Success = false
	m.layout()

	spin := m.form.SetSubmitting(true)
	backend := m.backend
	log.Debug().Str("topic", req.Topic).Str("tone", req.Tone.String()).Str("length", req.Length.String()).Msg("generating blog post")
	return m, tea.Batch(spin, func() tea.Msg {
		post, err := backend.Generate(context.Background(), req)
		return generatedMsg{post: post, err: err}
	})
}

func (m *Model) handleGenerated(msg generatedMsg) (tea.Model, tea.Cmd) {
	m.state.Generating = false
	m.form.SetSubmitting(false)

	if msg.err != nil || msg.post == nil {
		log.Error().Err(msg.err).Msg("error generating blog")
		m.state.Error = api.UserMessage(msg.err, MsgGenerateFailed)
		m.layout()
		return m, nil
	}

	log.Info().Str("id", msg.post.ID.String()).Int("words", msg.post.WordCount).Msg("blog post generated")
	m.state.Current = msg.post
	m.display.SetPost(msg.post)
	m.state.Success = true
	m.successSeq++
	seq := m.successSeq
	m.state.RefreshCounter++
	m.layout()

	return m, tea.Batch(
		tea.Tick(m.opts.SuccessTTL, func(time.Time) tea.Msg { return successResetMsg{seq: seq} }),
		m.history.SetRefreshTrigger(m.state.RefreshCounter),
	)
}

// selectPost shows a history item and refreshes it from the backend.
func (m *Model) selectPost(p model.BlogPost) (tea.Model, tea.Cmd) {
	post := p
	m.state.Current = &post
	m.state.Error = ""
	m.state.Success = false
	m.display.SetPost(&post)
	m.display.ScrollToTop()
	m.setFocus(PaneDisplay)

	id := post.ID
	backend := m.backend
	return m, func() tea.Msg {
		fresh, err := backend.GetBlog(context.Background(), id)
		return refreshedMsg{id: id, post: fresh, err: err}
	}
}

func samePost(a, b *model.BlogPost) bool {
	if a.Title != b.Title || a.Content != b.Content || a.Keywords != b.Keywords ||
		a.WordCount != b.WordCount || a.ToneText() != b.ToneText() || a.LengthText() != b.LengthText() {
		return false
	}
	if a.HasSEOScore() != b.HasSEOScore() {
		return false
	}
	return !a.HasSEOScore() || *a.SEOScore == *b.SEOScore
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package form

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/jeranaias/blogsmith-tui/internal/ui/components"
	"github.com/jeranaias/blogsmith-tui/internal/ui/styles"
)

// =============================================================================
// STATE
// =============================================================================

// State is the form's submission state.
type State int

const (
	StateEditing State = iota
	StateSubmitting
)

// Field identifies a focusable row, in focus order.
type Field int

const (
	FieldTopic Field = iota
	FieldTone
	FieldLength
	FieldKeywords
	FieldSubmit

	fieldCount
)

const (
	topicPlaceholder    = "e.g., The Future of Artificial Intelligence in Healthcare"
	keywordsPlaceholder = "e.g., AI, machine learning, healthcare technology"
)

// SubmitMsg carries a validated request to the owner of the form.
type SubmitMsg struct {
	Request model.GenerationRequest
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the form component.
type Model struct {
	theme *styles.Theme
	keys  KeyMap

	topic    textinput.Model
	keywords textinput.Model
	tone     model.Tone
	length   model.Length

	focus    Field
	active   bool
	state    State
	topicErr string
	width    int
	spinner  components.Spinner
}

// New creates a form with the default tone and length, focused on the
// topic field.
func New(theme *styles.Theme) Model {
	topic := textinput.New()
	topic.Placeholder = topicPlaceholder
	topic.Prompt = ""
	topic.CharLimit = 500

	keywords := textinput.New()
	keywords.Placeholder = keywordsPlaceholder
	keywords.Prompt = ""
	keywords.CharLimit = 500

	m := Model{
		theme:    theme,
		keys:     DefaultKeyMap(),
		topic:    topic,
		keywords: keywords,
		tone:     model.DefaultTone,
		length:   model.DefaultLength,
		focus:    FieldTopic,
		active:   true,
		width:    60,
		spinner:  components.NewSpinner(theme, styles.DotsSpinner, "Generating Content..."),
	}
	m.spinner.SetShowTimer(true)
	m.syncFocus()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Keys returns the form's key map, for the help view.
func (m Model) Keys() KeyMap { return m.keys }

// State returns the submission state.
func (m Model) State() State { return m.state }

// Submitting reports whether a generate call is outstanding.
func (m Model) Submitting() bool { return m.state == StateSubmitting }

// FocusedField returns the focused row.
func (m Model) FocusedField() Field { return m.focus }

// TopicError returns the field-level validation message, if any.
func (m Model) TopicError() string { return m.topicErr }

// Topic returns the raw topic input.
func (m Model) Topic() string { return m.topic.Value() }

// Keywords returns the raw keywords input.
func (m Model) Keywords() string { return m.keywords.Value() }

// Tone returns the selected tone.
func (m Model) Tone() model.Tone { return m.tone }

// Length returns the selected length.
func (m Model) Length() model.Length { return m.length }

// =============================================================================
// MUTATORS
// =============================================================================

// SetSubmitting enters or leaves the submitting state. Entering it blurs
// the inputs and starts the button spinner.
func (m *Model) SetSubmitting(submitting bool) tea.Cmd {
	if submitting {
		m.state = StateSubmitting
		m.topic.Blur()
		m.keywords.Blur()
		return m.spinner.Start()
	}
	m.state = StateEditing
	m.spinner.Stop()
	m.syncFocus()
	return nil
}

// Focus marks the form as the active pane.
func (m *Model) Focus() {
	m.active = true
	m.syncFocus()
}

// Blur marks the form as inactive.
func (m *Model) Blur() {
	m.active = false
	m.syncFocus()
}

// Focused reports whether the form is the active pane.
func (m Model) Focused() bool { return m.active }

// SetWidth sets the render width.
func (m *Model) SetWidth(width int) {
	m.width = width
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	m.topic.Width = inner
	m.keywords.Width = inner
}

// SetTopic replaces the topic input.
func (m *Model) SetTopic(s string) {
	m.topic.SetValue(s)
	m.topicErr = ""
}

// SetKeywords replaces the keywords input.
func (m *Model) SetKeywords(s string) {
	m.keywords.SetValue(s)
}

// SetTone selects a tone. Invalid values are ignored.
func (m *Model) SetTone(t model.Tone) {
	if t.Valid() {
		m.tone = t
	}
}

// SetLength selects a length. Invalid values are ignored.
func (m *Model) SetLength(l model.Length) {
	if l.Valid() {
		m.length = l
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles key presses and input messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateNonKey(msg)
	}
	if m.state == StateSubmitting {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Submit):
		return m.submit()

	case key.Matches(keyMsg, m.keys.Next):
		if m.focus == FieldSubmit {
			return m.submit()
		}
		m.moveFocus(1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		m.moveFocus(1)
		return m, nil

	case m.focus == FieldTone && key.Matches(keyMsg, m.keys.Left):
		m.tone = m.tone.Prev()
		return m, nil
	case m.focus == FieldTone && key.Matches(keyMsg, m.keys.Right):
		m.tone = m.tone.Next()
		return m, nil
	case m.focus == FieldLength && key.Matches(keyMsg, m.keys.Left):
		m.length = m.length.Prev()
		return m, nil
	case m.focus == FieldLength && key.Matches(keyMsg, m.keys.Right):
		m.length = m.length.Next()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case FieldTopic:
		before := m.topic.Value()
		m.topic, cmd = m.topic.Update(msg)
		if m.topic.Value() != before {
			m.topicErr = ""
		}
	case FieldKeywords:
		m.keywords, cmd = m.keywords.Update(msg)
	}
	return m, cmd
}

// updateNonKey forwards blink and spinner ticks.
func (m Model) updateNonKey(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	switch m.focus {
	case FieldTopic:
		m.topic, cmd = m.topic.Update(msg)
		cmds = append(cmds, cmd)
	case FieldKeywords:
		m.keywords, cmd = m.keywords.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// submit validates the draft. On failure it sets the field error, moves
// focus to the topic and emits nothing.
func (m Model) submit() (Model, tea.Cmd) {
	req, err := model.NewGenerationRequest(m.topic.Value(), m.tone, m.length, m.keywords.Value())
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) && verr.Field == "topic" {
			m.topicErr = verr.Message
		} else {
			m.topicErr = err.Error()
		}
		m.focus = FieldTopic
		m.syncFocus()
		log.Debug().Str("reason", m.topicErr).Msg("form submission rejected")
		return m, nil
	}

	m.topicErr = ""
	return m, func() tea.Msg {
		return SubmitMsg{Request: req}
	}
}

func (m *Model) moveFocus(delta int) {
	next := int(m.focus) + delta
	if next < 0 {
		next = 0
	}
	if next >= int(fieldCount) {
		next = int(fieldCount) - 1
	}
	m.focus = Field(next)
	m.syncFocus()
}

// syncFocus gives the cursor to the focused text input, if any.
func (m *Model) syncFocus() {
	m.topic.Blur()
	m.keywords.Blur()
	if !m.active || m.state == StateSubmitting {
		return
	}
	switch m.focus {
	case FieldTopic:
		m.topic.Focus()
	case FieldKeywords:
		m.keywords.Focus()
	}
}

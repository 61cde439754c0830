// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package form

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/blogsmith-tui/internal/model"
)

// View renders the form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.PaneTitle.Render("Generate Blog Post"))
	b.WriteString("\n")
	b.WriteString(m.theme.Hint.Render("Create AI-powered content in seconds"))
	b.WriteString("\n\n")

	// Topic
	b.WriteString(m.label(FieldTopic, "Blog Topic *"))
	b.WriteString("\n")
	b.WriteString(m.inputView(m.topic.View(), m.topic.Value(), topicPlaceholder))
	b.WriteString("\n")
	if m.topicErr != "" {
		b.WriteString(m.theme.FieldError.Render(m.topicErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Tone
	b.WriteString(m.label(FieldTone, "Writing Tone"))
	b.WriteString("\n")
	tones := make([]string, 0, len(model.AllTones()))
	for _, t := range model.AllTones() {
		tones = append(tones, m.option(t.Icon()+" "+t.Label(), t == m.tone))
	}
	b.WriteString(wrapRow(tones, m.width))
	b.WriteString("\n\n")

	// Length
	b.WriteString(m.label(FieldLength, "Content Length"))
	b.WriteString("\n")
	lengths := make([]string, 0, len(model.AllLengths()))
	for _, l := range model.AllLengths() {
		lengths = append(lengths, m.option(l.Label()+" "+l.Description(), l == m.length))
	}
	b.WriteString(wrapRow(lengths, m.width))
	b.WriteString("\n\n")

	// Keywords
	b.WriteString(m.label(FieldKeywords, "Keywords (Optional)"))
	b.WriteString("\n")
	b.WriteString(m.inputView(m.keywords.View(), m.keywords.Value(), keywordsPlaceholder))
	b.WriteString("\n")
	b.WriteString(m.theme.Hint.Render("Separate keywords with commas for better SEO optimization"))
	b.WriteString("\n\n")

	// Submit
	b.WriteString(m.button())

	return b.String()
}

func (m Model) label(f Field, text string) string {
	if m.active && m.focus == f && m.state == StateEditing {
		return m.theme.LabelFocused.Render("> " + text)
	}
	return m.theme.Label.Render("  " + text)
}

// inputView renders a text input; while submitting the value is shown
// dimmed instead of the live input.
func (m Model) inputView(live, value, placeholder string) string {
	if m.state == StateSubmitting {
		if value == "" {
			value = placeholder
		}
		return "  " + m.theme.Muted.Render(value)
	}
	return "  " + live
}

func (m Model) option(text string, selected bool) string {
	switch {
	case m.state == StateSubmitting && selected:
		return m.theme.ButtonDisabled.Render(text)
	case m.state == StateSubmitting:
		return m.theme.Muted.Render(text)
	case selected:
		return m.theme.OptionSelected.Render(text)
	default:
		return m.theme.Option.Render(text)
	}
}

func (m Model) button() string {
	if m.state == StateSubmitting {
		return "  " + m.theme.ButtonDisabled.Render(m.spinner.View())
	}
	if m.active && m.focus == FieldSubmit {
		return "  " + m.theme.ButtonFocused.Render("Generate Blog Post")
	}
	return "  " + m.theme.Button.Render("Generate Blog Post")
}

// wrapRow lays options out horizontally, breaking lines to fit width.
func wrapRow(items []string, width int) string {
	if width <= 0 {
		width = 80
	}
	var lines []string
	line := " "
	for _, it := range items {
		if lipgloss.Width(line)+lipgloss.Width(it)+1 > width && strings.TrimSpace(line) != "" {
			lines = append(lines, line)
			line = " "
		}
		line += " " + it
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

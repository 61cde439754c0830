// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// Markdown renders post bodies for the terminal through glamour. The
// renderer is rebuilt only when the wrap width changes.
type Markdown struct {
	appearance string
	width      int
	renderer   *glamour.TermRenderer
}

// NewMarkdown creates a renderer. appearance is "dark", "light", or
// anything else to detect the terminal background.
func NewMarkdown(appearance string) *Markdown {
	return &Markdown{appearance: strings.ToLower(appearance)}
}

// Render renders content wrapped to width. When glamour fails the raw
// markdown is returned.
func (m *Markdown) Render(content string, width int) string {
	if width < 20 {
		width = 20
	}
	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(m.styleOption(), glamour.WithWordWrap(width))
		if err != nil {
			log.Warn().Err(err).Msg("markdown renderer unavailable, showing raw content")
			return content
		}
		m.renderer = r
		m.width = width
	}

	out, err := m.renderer.Render(content)
	if err != nil {
		log.Warn().Err(err).Msg("markdown render failed, showing raw content")
		return content
	}
	return strings.Trim(out, "\n")
}

func (m *Markdown) styleOption() glamour.TermRendererOption {
	switch m.appearance {
	case "dark", "light":
		return glamour.WithStandardStyle(m.appearance)
	case "notty":
		return glamour.WithStandardStyle("notty")
	default:
		return glamour.WithAutoStyle()
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/blogsmith-tui/internal/ui/styles"
)

// =============================================================================
// BANNERS
// =============================================================================

// BannerKind selects the banner palette.
type BannerKind int

const (
	BannerError BannerKind = iota
	BannerSuccess
	BannerWarning
)

// RenderBanner renders a full-width banner. hint is the dismiss key hint
// shown at the right ("" for banners that cannot be dismissed).
func RenderBanner(theme *styles.Theme, kind BannerKind, message, hint string, width int) string {
	var style lipgloss.Style
	var indicator string
	switch kind {
	case BannerSuccess:
		style = theme.SuccessBanner
		indicator = styles.StatusIndicators.Success
	case BannerWarning:
		style = theme.ErrorBanner.Foreground(styles.Amber)
		indicator = styles.StatusIndicators.Warning
	default:
		style = theme.ErrorBanner
		indicator = styles.StatusIndicators.Error
	}

	text := indicator + " " + message
	if hint != "" {
		text += "  (" + hint + ")"
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(text)
}

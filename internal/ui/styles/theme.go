// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/blogsmith-tui/internal/model"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header         lipgloss.Style
	HeaderBrand    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	Online         lipgloss.Style
	Offline        lipgloss.Style
	Probing        lipgloss.Style

	// ==========================================================================
	// PANES
	// ==========================================================================

	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	PaneTitle   lipgloss.Style
	EmptyState  lipgloss.Style

	// ==========================================================================
	// FORM
	// ==========================================================================

	Label          lipgloss.Style
	LabelFocused   lipgloss.Style
	Hint           lipgloss.Style
	FieldError     lipgloss.Style
	Option         lipgloss.Style
	OptionSelected lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style

	// ==========================================================================
	// DISPLAY
	// ==========================================================================

	Title       lipgloss.Style
	Meta        lipgloss.Style
	KeywordChip lipgloss.Style
	Badge       lipgloss.Style
	ActionKey   lipgloss.Style
	ActionDesc  lipgloss.Style
	ActionDone  lipgloss.Style

	// ==========================================================================
	// HISTORY
	// ==========================================================================

	HistoryItem         lipgloss.Style
	HistoryItemSelected lipgloss.Style
	HistoryTitle        lipgloss.Style
	HistoryPreview      lipgloss.Style
	HistoryMeta         lipgloss.Style
	Confirm             lipgloss.Style

	// ==========================================================================
	// BANNERS AND STATUS
	// ==========================================================================

	ErrorBanner   lipgloss.Style
	SuccessBanner lipgloss.Style
	StatusBar     lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style
	Spinner       lipgloss.Style
	Muted         lipgloss.Style
}

// NewTheme creates a theme for the given appearance: "dark", "light", or
// anything else to follow the terminal background.
func NewTheme(appearance string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(appearance) {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Online = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.Offline = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.Probing = lipgloss.NewStyle().Foreground(Amber)

	// Panes
	t.Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PaneFocused = t.Pane.
		BorderForeground(Purple)

	t.PaneTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		MarginBottom(1)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 0)

	// Form
	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.LabelFocused = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.Hint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.FieldError = lipgloss.NewStyle().
		Foreground(Rose)

	t.Option = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.OptionSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.Button = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Padding(0, 2)

	t.ButtonFocused = t.Button.
		Background(Purple).
		Bold(true)

	t.ButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 2)

	// Display
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.Meta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.KeywordChip = lipgloss.NewStyle().
		Foreground(Cyan).
		Background(ChipBg).
		Padding(0, 1)

	t.Badge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.ActionKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ActionDesc = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ActionDone = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	// History
	t.HistoryItem = lipgloss.NewStyle().
		PaddingLeft(2)

	t.HistoryItemSelected = lipgloss.NewStyle().
		Background(SelectionBg).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(Purple).
		PaddingLeft(1)

	t.HistoryTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.HistoryPreview = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.HistoryMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Confirm = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Banners and status
	t.ErrorBanner = lipgloss.NewStyle().
		Foreground(Rose).
		Background(RoseDeep).
		Padding(0, 1)

	t.SuccessBanner = lipgloss.NewStyle().
		Foreground(Emerald).
		Background(EmeraldDeep).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SEOBadge returns the badge style for an SEO tier.
func (t *Theme) SEOBadge(tier model.Tier) lipgloss.Style {
	return t.Badge.Background(TierColor(tier))
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 90 {
		return LayoutNarrow
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 90 columns: panes stacked, one visible
	LayoutWide                     // >= 90 columns: form and display side by side
)

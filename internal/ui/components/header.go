// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/blogsmith-tui/internal/ui/styles"
	"github.com/jeranaias/blogsmith-tui/internal/util"
)

// =============================================================================
// CONNECTIVITY
// =============================================================================

// Connectivity is the backend reachability shown in the header.
type Connectivity int

const (
	ConnChecking Connectivity = iota
	ConnConnected
	ConnDisconnected
)

// String returns the display label.
func (c Connectivity) String() string {
	switch c {
	case ConnChecking:
		return "checking"
	case ConnConnected:
		return "connected"
	case ConnDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// ConnectivityOf derives connectivity from a fetch status.
func ConnectivityOf(s FetchStatus) Connectivity {
	switch s {
	case FetchLoaded:
		return ConnConnected
	case FetchError:
		return ConnDisconnected
	default:
		return ConnChecking
	}
}

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: brand on the left, backend status on the right.
type Header struct {
	Title        string
	Subtitle     string
	BaseURL      string
	Connectivity Connectivity
	Width        int
	theme        *styles.Theme
}

// NewHeader creates a header for the given backend.
func NewHeader(theme *styles.Theme, baseURL string) *Header {
	return &Header{
		Title:    "blogsmith",
		Subtitle: "AI blog generator",
		BaseURL:  baseURL,
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetConnectivity updates the status indicator.
func (h *Header) SetConnectivity(c Connectivity) {
	h.Connectivity = c
}

// View renders the header on one line.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	left := h.theme.HeaderBrand.Render(h.Title)
	if h.Subtitle != "" {
		left += " " + h.theme.HeaderSubtitle.Render(h.Subtitle)
	}

	right := h.statusView()

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Drop the subtitle before squeezing the status.
		left = h.theme.HeaderBrand.Render(h.Title)
		gap = width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	}
	if gap < 1 {
		gap = 1
	}

	line := left + util.PadWidth("", gap) + right
	return h.theme.Header.Width(width).Render(line)
}

func (h *Header) statusView() string {
	switch h.Connectivity {
	case ConnConnected:
		return h.theme.Online.Render(styles.StatusIndicators.Online+" connected") +
			h.theme.Muted.Render(" "+h.BaseURL)
	case ConnDisconnected:
		return h.theme.Offline.Render(styles.StatusIndicators.Offline + " disconnected")
	default:
		return h.theme.Probing.Render("checking connection...")
	}
}

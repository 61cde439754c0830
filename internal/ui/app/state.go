// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/jeranaias/blogsmith-tui/internal/ui/components"
)

// MsgGenerateFailed is shown when a generate error carries no detail.
const MsgGenerateFailed = "Failed to generate blog post"

// State is the application state. Only Model.Update writes to it.
type State struct {
	// Current is the post on display, nil before the first generate or
	// selection.
	Current *model.BlogPost
	// Generating is true while a generate call is outstanding.
	Generating bool
	// Error is the generate error banner text, "" when hidden.
	Error string
	// Success shows the generated banner.
	Success bool
	// Health is the result of the last connectivity probe.
	Health components.Fetch[model.HealthStatus]
	// RefreshCounter increments after every successful generate. History
	// refetches when it changes.
	RefreshCounter int
}

// Connectivity derives the header indicator from the health probe.
func (s *State) Connectivity() components.Connectivity {
	return components.ConnectivityOf(s.Health.Status())
}

// Pane identifies a focusable pane, in tab order.
type Pane int

const (
	PaneForm Pane = iota
	PaneDisplay
	PaneHistory

	paneCount
)

// String returns the pane name.
func (p Pane) String() string {
	switch p {
	case PaneForm:
		return "form"
	case PaneDisplay:
		return "display"
	case PaneHistory:
		return "history"
	default:
		return "unknown"
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/blogsmith-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is a bubbles spinner with a message and an optional elapsed timer.
type Spinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	isActive  bool
	showTimer bool
}

// NewSpinner creates a spinner with the given frames and message.
func NewSpinner(theme *styles.Theme, cfg styles.SpinnerConfig, message string) Spinner {
	s := spinner.New()
	s.Spinner = cfg.Bubbles()
	s.Style = theme.Spinner
	return Spinner{spinner: s, message: message}
}

// SetMessage updates the message.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// SetShowTimer enables the elapsed-time suffix.
func (s *Spinner) SetShowTimer(show bool) {
	s.showTimer = show
}

// Start activates the spinner and returns the first tick.
func (s *Spinner) Start() tea.Cmd {
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner. Pending ticks are ignored afterwards.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive reports whether the spinner is running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Tick returns the tick command of the underlying spinner.
func (s Spinner) Tick() tea.Msg {
	return s.spinner.Tick()
}

// Update advances the animation on tick messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the frame, the message and, when enabled, elapsed time.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}
	out := s.spinner.View() + " " + s.message
	if s.showTimer && !s.startTime.IsZero() {
		out += " " + formatElapsed(time.Since(s.startTime))
	}
	return out
}

// Frame renders only the current frame, for inline use in list rows.
func (s Spinner) Frame() string {
	return s.spinner.View()
}

// formatElapsed formats a duration as "5s" or "1m 05s".
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm %02ds", secs/60, secs%60)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/jeranaias/blogsmith-tui/internal/ui/styles"
)

// =============================================================================
// FETCH TESTS
// =============================================================================

func TestFetch_Lifecycle(t *testing.T) {
	var f Fetch[[]string]
	if !f.IsIdle() {
		t.Fatalf("zero Fetch status = %v, want idle", f.Status())
	}

	seq := f.Start()
	if !f.IsLoading() {
		t.Errorf("after Start status = %v, want loading", f.Status())
	}
	if !f.Resolve(seq, []string{"a"}, nil) {
		t.Fatal("Resolve() with current seq = false, want true")
	}
	if !f.IsLoaded() || len(f.Value()) != 1 {
		t.Errorf("after Resolve status = %v value = %v", f.Status(), f.Value())
	}

	seq = f.Start()
	boom := errors.New("boom")
	f.Resolve(seq, nil, boom)
	if !f.IsError() || !errors.Is(f.Err(), boom) {
		t.Errorf("after failed Resolve status = %v err = %v", f.Status(), f.Err())
	}
	if len(f.Value()) != 1 {
		t.Error("a failed fetch should keep the previous value")
	}
}

func TestFetch_StaleResultDropped(t *testing.T) {
	var f Fetch[int]
	first := f.Start()
	second := f.Start()

	if f.Resolve(first, 1, nil) {
		t.Error("Resolve() with stale seq = true, want false")
	}
	if !f.IsLoading() {
		t.Errorf("stale result changed status to %v", f.Status())
	}
	f.Resolve(second, 2, nil)
	if f.Value() != 2 {
		t.Errorf("Value() = %d, want 2", f.Value())
	}

	// A duplicate delivery of the accepted result is ignored too.
	if f.Resolve(second, 3, nil) {
		t.Error("second Resolve() for the same seq = true, want false")
	}
}

func TestFetch_Set(t *testing.T) {
	var f Fetch[int]
	f.Set(5)
	if f.Value() != 0 {
		t.Error("Set() on an idle fetch should be a no-op")
	}
	f.Resolve(f.Start(), 1, nil)
	f.Set(5)
	if f.Value() != 5 {
		t.Errorf("Value() = %d, want 5", f.Value())
	}

	// A refetch in flight still accepts local edits.
	seq := f.Start()
	f.Set(6)
	if f.Value() != 6 {
		t.Errorf("Value() while loading = %d, want 6", f.Value())
	}
	f.Resolve(seq, 0, errors.New("boom"))
	f.Set(7)
	if f.Value() != 6 {
		t.Errorf("Set() on a failed fetch should be a no-op, Value() = %d", f.Value())
	}
}

func TestConnectivityOf(t *testing.T) {
	tests := []struct {
		status FetchStatus
		want   Connectivity
	}{
		{FetchIdle, ConnChecking},
		{FetchLoading, ConnChecking},
		{FetchLoaded, ConnConnected},
		{FetchError, ConnDisconnected},
	}
	for _, tt := range tests {
		if got := ConnectivityOf(tt.status); got != tt.want {
			t.Errorf("ConnectivityOf(%v) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestHeader_View(t *testing.T) {
	theme := styles.NewTheme("dark")
	h := NewHeader(theme, "http://localhost:8000")
	h.SetWidth(100)

	if out := h.View(); !strings.Contains(out, "checking") {
		t.Errorf("View() = %q, want checking indicator", out)
	}

	h.SetConnectivity(ConnConnected)
	out := h.View()
	if !strings.Contains(out, "connected") || !strings.Contains(out, "http://localhost:8000") {
		t.Errorf("View() = %q, want connected with base URL", out)
	}

	h.SetConnectivity(ConnDisconnected)
	if out := h.View(); !strings.Contains(out, "disconnected") {
		t.Errorf("View() = %q, want disconnected", out)
	}
}

func TestHeader_NarrowKeepsStatus(t *testing.T) {
	h := NewHeader(styles.NewTheme("dark"), "http://localhost:8000")
	h.SetWidth(20)
	h.SetConnectivity(ConnDisconnected)
	if out := h.View(); !strings.Contains(out, "disconnected") {
		t.Errorf("narrow View() = %q, want status kept", out)
	}
}

// =============================================================================
// BANNER AND SPINNER TESTS
// =============================================================================

func TestRenderBanner(t *testing.T) {
	theme := styles.NewTheme("dark")
	out := RenderBanner(theme, BannerError, "Failed to generate blog post", "alt+e dismiss", 80)
	if !strings.Contains(out, "Failed to generate blog post") || !strings.Contains(out, "alt+e dismiss") {
		t.Errorf("RenderBanner() = %q", out)
	}
	out = RenderBanner(theme, BannerSuccess, "Blog post generated successfully!", "", 0)
	if !strings.Contains(out, "[OK]") {
		t.Errorf("success banner = %q, want [OK] indicator", out)
	}
}

func TestSpinner(t *testing.T) {
	s := NewSpinner(styles.NewTheme("dark"), styles.LineSpinner, "Loading history...")
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}
	if cmd := s.Start(); cmd == nil {
		t.Fatal("Start() returned nil cmd")
	}
	if out := s.View(); !strings.Contains(out, "Loading history...") {
		t.Errorf("View() = %q", out)
	}

	s.Stop()
	s, cmd := s.Update(spinner.TickMsg{})
	if cmd != nil {
		t.Error("stopped spinner should not schedule ticks")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{65 * time.Second, "1m 05s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4321, "-4,321"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
	if got := Plural(1, "word", "words"); got != "1 word" {
		t.Errorf("Plural(1) = %q", got)
	}
	if got := Plural(1500, "word", "words"); got != "1,500 words" {
		t.Errorf("Plural(1500) = %q", got)
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/blogsmith-tui/internal/api"
	"github.com/jeranaias/blogsmith-tui/internal/mockapi"
	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/jeranaias/blogsmith-tui/internal/ui/components"
	"github.com/jeranaias/blogsmith-tui/internal/ui/display"
	"github.com/jeranaias/blogsmith-tui/internal/ui/form"
	"github.com/jeranaias/blogsmith-tui/internal/ui/history"
	"github.com/jeranaias/blogsmith-tui/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

const testTTL = 20 * time.Millisecond

type harness struct {
	srv *mockapi.Server
	url string
	app *Model
}

func newHarness(t *testing.T, configure func(*mockapi.Server)) *harness {
	t.Helper()
	srv := mockapi.New()
	if configure != nil {
		configure(srv)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client := api.NewClient(&api.ClientConfig{BaseURL: ts.URL})
	m := New(styles.NewTheme("dark"), client, Options{
		BaseURL:    ts.URL,
		SuccessTTL: testTTL,
		Display: display.Options{
			ExportDir:  t.TempDir(),
			Appearance: "notty",
			Clipboard:  display.ClipboardFunc(func(string) error { return nil }),
		},
	})
	h := &harness{srv: srv, url: ts.URL, app: m}
	h.send(tea.WindowSizeMsg{Width: 240, Height: 60})
	h.run(m.Init())
	return h
}

// collect runs cmd and flattens batches, dropping spinner and blink ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case spinner.TickMsg, nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.app.Update(msg)
	return cmd
}

// run executes cmd and feeds its messages back, one level deep.
func (h *harness) run(cmd tea.Cmd) []tea.Msg {
	msgs := collect(cmd)
	for _, msg := range msgs {
		h.send(msg)
	}
	return msgs
}

// drive executes cmd and keeps executing the commands its messages
// produce until nothing but timers and spinners remain.
func (h *harness) drive(cmd tea.Cmd) {
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		next := h.send(msg)
		if _, ok := msg.(successResetMsg); ok {
			continue
		}
		queue = append(queue, collectNoTimers(next)...)
	}
}

// collectNoTimers is collect without the success timer, so assertions can
// observe the banner before it clears.
func collectNoTimers(cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	for _, msg := range collect(cmd) {
		if _, ok := msg.(successResetMsg); ok {
			continue
		}
		out = append(out, msg)
	}
	return out
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func alt(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Alt: true}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// fillForm types a topic and keywords and picks the tone and length.
func (h *harness) fillForm(topic string, tone model.Tone, length model.Length, keywords string) {
	h.send(keyRunes(topic))
	h.send(keyType(tea.KeyDown))
	for h.app.Form().Tone() != tone {
		h.send(keyType(tea.KeyRight))
	}
	h.send(keyType(tea.KeyDown))
	for h.app.Form().Length() != length {
		h.send(keyType(tea.KeyRight))
	}
	h.send(keyType(tea.KeyDown))
	if keywords != "" {
		h.send(keyRunes(keywords))
	}
}

// submit presses ctrl+s and returns the generate command.
func (h *harness) submit(t *testing.T) tea.Cmd {
	t.Helper()
	msgs := collect(h.send(keyType(tea.KeyCtrlS)))
	require.Len(t, msgs, 1)
	_, ok := msgs[0].(form.SubmitMsg)
	require.True(t, ok, "ctrl+s emits SubmitMsg, got %T", msgs[0])
	return h.send(msgs[0])
}

// =============================================================================
// STARTUP AND CONNECTIVITY
// =============================================================================

func TestInit_ProbesAndLoadsHistory(t *testing.T) {
	h := newHarness(t, func(s *mockapi.Server) {
		s.Seed(model.BlogPost{Topic: "first", Title: "First Post"})
	})

	st := h.app.State()
	assert.Equal(t, components.ConnConnected, st.Connectivity())
	assert.Len(t, h.srv.Requests(mockapi.RouteHealth), 1)
	assert.Len(t, h.srv.Requests(mockapi.RouteList), 1)
	assert.Equal(t, components.FetchLoaded, h.app.History().Status())
	assert.Nil(t, st.Current)
	assert.Equal(t, PaneForm, h.app.Focus())

	out := h.app.View()
	assert.Contains(t, out, "connected")
	assert.Contains(t, out, "First Post")
	assert.Contains(t, out, display.EmptyTitle)
	assert.NotContains(t, out, "Cannot connect")
}

// A failed probe shows disconnected and names the backend URL.
func TestHealthFailure_ShowsOfflineBanner(t *testing.T) {
	h := newHarness(t, func(s *mockapi.Server) { s.SetHealthy(false) })

	assert.Equal(t, components.ConnDisconnected, connectivity(h.app))
	out := h.app.View()
	assert.Contains(t, out, "disconnected")
	assert.Contains(t, out, OfflineMessage(h.url))
	assert.Len(t, h.srv.Requests(mockapi.RouteHealth), 1, "no automatic re-probe")

	h.srv.SetHealthy(true)
	cmd := h.send(alt("r"))
	assert.Equal(t, components.ConnChecking, connectivity(h.app))
	h.run(cmd)

	assert.Equal(t, components.ConnConnected, connectivity(h.app))
	assert.NotContains(t, h.app.View(), "Cannot connect")
	assert.Len(t, h.srv.Requests(mockapi.RouteHealth), 2)
}

// =============================================================================
// GENERATE
// =============================================================================

func TestGenerate_ExactPayloadAndRefresh(t *testing.T) {
	h := newHarness(t, nil)
	before := h.app.State().RefreshCounter
	listCalls := len(h.srv.Requests(mockapi.RouteList))

	h.fillForm("AI in healthcare", model.ToneTechnical, model.LengthShort, "ai, health")
	cmd := h.submit(t)
	assert.True(t, h.app.State().Generating)
	assert.True(t, h.app.Form().Submitting())

	h.drive(cmd)

	reqs := h.srv.Requests(mockapi.RouteGenerate)
	require.Len(t, reqs, 1)
	assert.JSONEq(t,
		`{"topic":"AI in healthcare","tone":"technical","length":"short","keywords":"ai, health"}`,
		string(reqs[0].Body))

	st := h.app.State()
	assert.False(t, st.Generating)
	assert.False(t, h.app.Form().Submitting())
	assert.Equal(t, before+1, st.RefreshCounter)
	assert.Len(t, h.srv.Requests(mockapi.RouteList), listCalls+1, "history refetched once")
	assert.Len(t, h.app.History().Posts(), 1)
}

func TestGenerate_BlankKeywordsSentAsNull(t *testing.T) {
	h := newHarness(t, nil)
	h.fillForm("Rust ownership", model.ToneCasual, model.LengthLong, "   ")
	h.drive(h.submit(t))

	reqs := h.srv.Requests(mockapi.RouteGenerate)
	require.Len(t, reqs, 1)
	assert.JSONEq(t,
		`{"topic":"Rust ownership","tone":"casual","length":"long","keywords":null}`,
		string(reqs[0].Body))
}

// The displayed post is the backend record and the success banner clears
// after its timer.
func TestGenerate_SuccessShowsRecordThenClears(t *testing.T) {
	h := newHarness(t, nil)
	h.fillForm("Go generics in practice", model.ToneEducational, model.LengthMedium, "")
	cmd := h.submit(t)

	var generated tea.Msg
	for _, msg := range collect(cmd) {
		if _, ok := msg.(generatedMsg); ok {
			generated = msg
		}
	}
	require.NotNil(t, generated)
	after := h.send(generated)

	stored := h.srv.Posts()
	require.Len(t, stored, 1)
	st := h.app.State()
	require.NotNil(t, st.Current)
	assert.Equal(t, stored[0].ID, st.Current.ID)
	assert.Equal(t, stored[0].Title, st.Current.Title)
	assert.Equal(t, stored[0].Content, st.Current.Content)
	assert.Equal(t, stored[0].WordCount, st.Current.WordCount)
	assert.Same(t, st.Current, h.app.Display().Post())
	assert.True(t, st.Success)
	assert.Contains(t, h.app.View(), MsgGenerated)

	h.run(after)
	assert.False(t, h.app.State().Success)
	assert.NotContains(t, h.app.View(), MsgGenerated)
}

// A stale success timer does not hide the banner of a later generate.
func TestGenerate_StaleSuccessTimerIgnored(t *testing.T) {
	h := newHarness(t, nil)
	h.app.state.Success = true
	h.app.successSeq = 2
	h.send(successResetMsg{seq: 1})
	assert.True(t, h.app.State().Success)
	h.send(successResetMsg{seq: 2})
	assert.False(t, h.app.State().Success)
}

func TestGenerate_FailureKeepsPostAndShowsDetail(t *testing.T) {
	tests := []struct {
		name   string
		detail any
		want   string
	}{
		{name: "backend detail", detail: "OpenAI quota exceeded", want: "OpenAI quota exceeded"},
		{name: "no detail", detail: nil, want: MsgGenerateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			h.fillForm("A first successful post", model.ToneProfessional, model.LengthShort, "")
			h.drive(h.submit(t))
			prev := h.app.State().Current
			require.NotNil(t, prev)

			h.srv.Fail(mockapi.RouteGenerate, http.StatusInternalServerError, tt.detail)
			h.drive(h.submit(t))

			st := h.app.State()
			assert.Same(t, prev, st.Current, "failed generate leaves the post alone")
			assert.False(t, st.Success)
			assert.False(t, st.Generating)
			if st.Error != tt.want {
				t.Errorf("Error = %q, want %q", st.Error, tt.want)
			}
			assert.Contains(t, h.app.View(), tt.want)
			assert.Equal(t, 1, st.RefreshCounter, "only the successful generate counts")

			h.send(alt("e"))
			assert.Empty(t, h.app.State().Error)
		})
	}
}

func TestGenerate_ShortTopicNeverCallsBackend(t *testing.T) {
	h := newHarness(t, nil)
	h.send(keyRunes("  AI "))
	cmd := h.send(keyType(tea.KeyCtrlS))
	assert.Empty(t, collect(cmd))
	assert.NotEmpty(t, h.app.Form().TopicError())
	assert.Empty(t, h.srv.Requests(mockapi.RouteGenerate))
	assert.False(t, h.app.State().Generating)
}

func TestGenerate_SecondSubmitIgnoredWhileGenerating(t *testing.T) {
	h := newHarness(t, nil)
	h.fillForm("Concurrency patterns", model.ToneTechnical, model.LengthShort, "")
	_ = h.submit(t)

	cmd := h.send(form.SubmitMsg{})
	assert.Nil(t, cmd)
}

// =============================================================================
// BANNERS
// =============================================================================

// A dismissed success banner stays hidden when its timer fires later.
func TestDismissSuccess_TimerLeavesItHidden(t *testing.T) {
	h := newHarness(t, nil)
	h.fillForm("Dismissable banners", model.ToneCasual, model.LengthShort, "")
	var after tea.Cmd
	for _, msg := range collect(h.submit(t)) {
		if _, ok := msg.(generatedMsg); ok {
			after = h.send(msg)
		}
	}
	require.True(t, h.app.State().Success)

	h.send(alt("s"))
	assert.False(t, h.app.State().Success)
	assert.NotContains(t, h.app.View(), MsgGenerated)

	msgs := h.run(after)
	var fired bool
	for _, msg := range msgs {
		if _, ok := msg.(successResetMsg); ok {
			fired = true
		}
	}
	require.True(t, fired, "the pending timer was delivered")
	assert.False(t, h.app.State().Success)
	assert.NotContains(t, h.app.View(), MsgGenerated)
}

// Each dismiss key hides only its own banner.
func TestDismiss_OneBannerLeavesTheOther(t *testing.T) {
	tests := []struct {
		name        string
		key         tea.KeyMsg
		wantError   bool
		wantSuccess bool
	}{
		{name: "alt+e", key: alt("e"), wantError: false, wantSuccess: true},
		{name: "alt+s", key: alt("s"), wantError: true, wantSuccess: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			h.app.state.Error = "quota exceeded"
			h.app.state.Success = true
			h.send(tt.key)

			st := h.app.State()
			assert.Equal(t, tt.wantError, st.Error != "")
			assert.Equal(t, tt.wantSuccess, st.Success)

			out := h.app.View()
			if tt.wantError {
				assert.Contains(t, out, "quota exceeded")
			} else {
				assert.NotContains(t, out, "quota exceeded")
			}
			if tt.wantSuccess {
				assert.Contains(t, out, MsgGenerated)
			} else {
				assert.NotContains(t, out, MsgGenerated)
			}
		})
	}
}

// alt+r re-probes from either side and the banner follows the result.
func TestReprobe_FollowsBackend(t *testing.T) {
	h := newHarness(t, nil)
	require.Equal(t, components.ConnConnected, connectivity(h.app))

	h.srv.SetHealthy(false)
	h.run(h.send(alt("r")))
	assert.Equal(t, components.ConnDisconnected, connectivity(h.app))
	assert.Contains(t, h.app.View(), OfflineMessage(h.url))

	h.srv.SetHealthy(true)
	h.run(h.send(alt("r")))
	assert.Equal(t, components.ConnConnected, connectivity(h.app))
	assert.NotContains(t, h.app.View(), OfflineMessage(h.url))
	assert.Len(t, h.srv.Requests(mockapi.RouteHealth), 3)
}

// =============================================================================
// SELECTION AND FOCUS
// =============================================================================

func TestSelect_ShowsPostAndRefreshes(t *testing.T) {
	h := newHarness(t, func(s *mockapi.Server) {
		s.Seed(model.BlogPost{ID: "7", Topic: "t", Title: "Server Title", Content: "server body"})
	})
	h.app.state.Error = "old error"
	h.app.state.Success = true

	listed := h.app.History().Posts()[0]
	listed.Title = "Listed Title"
	cmd := h.send(history.SelectMsg{Post: listed})

	st := h.app.State()
	require.NotNil(t, st.Current)
	assert.Equal(t, "Listed Title", st.Current.Title)
	assert.Empty(t, st.Error)
	assert.False(t, st.Success)
	assert.Equal(t, PaneDisplay, h.app.Focus())
	assert.Equal(t, 0, h.app.Display().ScrollOffset())

	h.run(cmd)
	assert.Equal(t, "Server Title", h.app.State().Current.Title)
	assert.Len(t, h.srv.Requests(mockapi.RouteGet), 1)
}

func TestSelect_RefreshFailureKeepsListCopy(t *testing.T) {
	h := newHarness(t, func(s *mockapi.Server) {
		s.Seed(model.BlogPost{ID: "7", Topic: "t", Title: "Kept"})
	})
	h.srv.Fail(mockapi.RouteGet, http.StatusNotFound, "Blog not found")

	h.run(h.send(history.SelectMsg{Post: h.app.History().Posts()[0]}))
	st := h.app.State()
	require.NotNil(t, st.Current)
	assert.Equal(t, "Kept", st.Current.Title)
	assert.Empty(t, st.Error, "refresh failures are only logged")
}

func TestFocusCycle(t *testing.T) {
	h := newHarness(t, nil)
	order := []Pane{PaneDisplay, PaneHistory, PaneForm}
	for _, want := range order {
		h.send(keyType(tea.KeyTab))
		assert.Equal(t, want, h.app.Focus())
	}
	h.send(keyType(tea.KeyShiftTab))
	assert.Equal(t, PaneHistory, h.app.Focus())
	assert.True(t, h.app.History().Focused())
	assert.False(t, h.app.Form().Focused())
}

func TestHelpToggle(t *testing.T) {
	h := newHarness(t, nil)

	h.send(keyRunes("?"))
	assert.False(t, h.app.help.ShowAll, "? is typed into the topic")
	assert.Equal(t, "?", h.app.Form().Topic())

	h.send(keyType(tea.KeyTab))
	h.send(keyRunes("?"))
	assert.True(t, h.app.help.ShowAll)
}

func TestQuit(t *testing.T) {
	h := newHarness(t, nil)
	cmd := h.send(keyType(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestNarrowLayoutShowsFocusedPane(t *testing.T) {
	h := newHarness(t, nil)
	h.send(tea.WindowSizeMsg{Width: 70, Height: 40})

	out := h.app.View()
	assert.Contains(t, out, "Generate Blog Post")
	assert.NotContains(t, out, display.EmptyTitle)

	h.send(keyType(tea.KeyTab))
	out = h.app.View()
	assert.Contains(t, out, display.EmptyTitle)
	assert.NotContains(t, out, "Generate Blog Post")
}

// connectivity reads Connectivity from an addressable copy of the state.
func connectivity(m *Model) components.Connectivity {
	s := m.State()
	return s.Connectivity()
}

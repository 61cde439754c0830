// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package display

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/jeranaias/blogsmith-tui/internal/ui/styles"
)

type fakeClipboard struct {
	writes []string
	err    error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.writes = append(f.writes, text)
	return f.err
}

func newDisplay(t *testing.T, cb ClipboardWriter) Model {
	t.Helper()
	m := New(styles.NewTheme("dark"), Options{
		ExportDir:  t.TempDir(),
		Appearance: "notty",
		Clipboard:  cb,
		CopiedTTL:  10 * time.Millisecond,
		NoticeTTL:  10 * time.Millisecond,
	})
	m.SetSize(80, 30)
	return m
}

func samplePost(score *float64) *model.BlogPost {
	return &model.BlogPost{
		ID:        "3",
		Topic:     "Testing in Go",
		Tone:      model.ToneEducational,
		Length:    model.LengthLong,
		Keywords:  "testing, go",
		Title:     "Testing in Go",
		Content:   strings.Repeat("A paragraph about table tests.\n\n", 60),
		SEOScore:  score,
		WordCount: 1900,
		CreatedAt: model.NewTimestamp(time.Date(2024, 5, 2, 14, 5, 0, 0, time.Local)),
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func TestView_Empty(t *testing.T) {
	m := newDisplay(t, &fakeClipboard{})
	out := m.View()
	assert.Contains(t, out, EmptyTitle)
	assert.Contains(t, out, EmptyHint)

	_, cmd := m.Update(keyMsg("c"))
	assert.Nil(t, cmd, "copy without a post is a no-op")
	_, cmd = m.Update(keyMsg("s"))
	assert.Nil(t, cmd, "download without a post is a no-op")
}

func TestView_Post(t *testing.T) {
	score := 73.4
	m := newDisplay(t, &fakeClipboard{})
	m.SetPost(samplePost(&score))
	out := m.View()

	for _, want := range []string{
		"Testing in Go",
		"May 2, 2024 at 02:05 PM",
		"1,900 words",
		"Educational",
		"Long",
		"SEO 73/100",
		"2 keywords",
		"testing",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestView_SEOBadge(t *testing.T) {
	zero := 0.0
	m := newDisplay(t, &fakeClipboard{})

	m.SetPost(samplePost(&zero))
	if !strings.Contains(m.View(), "SEO 0/100") {
		t.Error("a present zero score should render a badge")
	}

	m.SetPost(samplePost(nil))
	if strings.Contains(m.View(), "SEO ") {
		t.Error("an absent score should not render a badge")
	}
}

func TestSetPost_ResetsScroll(t *testing.T) {
	m := newDisplay(t, &fakeClipboard{})
	m.SetPost(samplePost(nil))

	for i := 0; i < 5; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	}
	require.Greater(t, m.ScrollOffset(), 0)

	m.SetPost(samplePost(nil))
	assert.Equal(t, 0, m.ScrollOffset())
}

func TestCopy(t *testing.T) {
	cb := &fakeClipboard{}
	m := newDisplay(t, cb)
	post := samplePost(nil)
	m.SetPost(post)

	m, cmd := m.Update(keyMsg("c"))
	require.NotNil(t, cmd)
	assert.False(t, m.Copied(), "indicator waits for the clipboard write")

	m, tick := m.Update(cmd())
	require.Len(t, cb.writes, 1)
	assert.Equal(t, model.MarkdownDocument(post), cb.writes[0])
	assert.True(t, m.Copied())
	assert.Contains(t, m.View(), "Copied!")

	m = run(t, m, tick)
	assert.False(t, m.Copied(), "indicator reverts after the TTL")
}

func TestCopy_OlderTickIgnored(t *testing.T) {
	m := newDisplay(t, &fakeClipboard{})
	m.SetPost(samplePost(nil))

	m, first := m.Update(keyMsg("c"))
	m, firstTick := m.Update(first())
	m, second := m.Update(keyMsg("c"))
	m, _ = m.Update(second())

	m = run(t, m, firstTick)
	assert.True(t, m.Copied(), "an older reset must not clear a newer copy")
}

func TestCopy_Failure(t *testing.T) {
	m := newDisplay(t, &fakeClipboard{err: errors.New("no clipboard")})
	m.SetPost(samplePost(nil))

	m, cmd := m.Update(keyMsg("c"))
	m, tick := m.Update(cmd())
	assert.False(t, m.Copied())
	assert.Nil(t, tick)
}

// Results of a copy or save started for the previous post are dropped
// once another post is shown.
func TestSetPost_DropsPendingIndicators(t *testing.T) {
	m := newDisplay(t, &fakeClipboard{})
	m.SetPost(samplePost(nil))

	m, copyCmd := m.Update(keyMsg("c"))
	m, saveCmd := m.Update(keyMsg("s"))
	require.NotNil(t, copyCmd)
	require.NotNil(t, saveCmd)

	next := samplePost(nil)
	next.ID = "4"
	next.Title = "Another Post"
	m.SetPost(next)

	m, tick := m.Update(copyCmd())
	assert.Nil(t, tick)
	assert.False(t, m.Copied())
	assert.NotContains(t, m.View(), "Copied!")

	m, tick = m.Update(saveCmd())
	assert.Nil(t, tick)
	assert.Empty(t, m.Notice())
}

func TestDownload(t *testing.T) {
	m := newDisplay(t, &fakeClipboard{})
	post := samplePost(nil)
	m.SetPost(post)

	m, cmd := m.Update(keyMsg("s"))
	require.NotNil(t, cmd)
	msg := cmd()
	saved, ok := msg.(savedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	assert.Equal(t, "testing-in-go.md", filepath.Base(saved.path))

	data, err := os.ReadFile(saved.path)
	require.NoError(t, err)
	assert.Equal(t, model.MarkdownDocument(post), string(data))

	m, tick := m.Update(msg)
	assert.Contains(t, m.Notice(), "Saved to")
	m = run(t, m, tick)
	assert.Empty(t, m.Notice())
}

func TestExportAlt(t *testing.T) {
	m := newDisplay(t, &fakeClipboard{})
	m.SetPost(samplePost(nil))

	_, cmd := m.Update(keyMsg("S"))
	require.NotNil(t, cmd)
	saved := cmd().(savedMsg)
	require.NoError(t, saved.err)
	assert.Equal(t, ".html", filepath.Ext(saved.path))
}

func TestDownload_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	m := New(styles.NewTheme("dark"), Options{ExportDir: filepath.Join(blocker, "sub"), Appearance: "notty"})
	m.SetPost(samplePost(nil))

	m, cmd := m.Update(keyMsg("s"))
	m, _ = m.Update(cmd())
	assert.Contains(t, m.Notice(), "Save failed")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGenerateStoresNewestFirst(t *testing.T) {
	backend := New()
	h := backend.Handler()

	rec := do(t, h, http.MethodPost, "/api/v1/generate", `{"topic":"First topic","tone":"casual","length":"short","keywords":null}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/v1/generate", `{"topic":"Second topic","tone":"technical","length":"long","keywords":"go, tui"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var post model.BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Equal(t, model.ID("2"), post.ID)
	assert.Equal(t, "go, tui", post.Keywords)
	assert.True(t, post.HasSEOScore())
	assert.Contains(t, post.Content, "```go")

	posts := backend.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "Second topic", posts[0].Topic)
}

func TestGenerateValidation(t *testing.T) {
	h := New().Handler()
	rec := do(t, h, http.MethodPost, "/api/v1/generate", `{"topic":"abc","tone":"sarcastic","length":"short"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"topic"`)
	assert.Contains(t, rec.Body.String(), `"tone"`)
}

func TestListPagination(t *testing.T) {
	backend := New()
	for i := 0; i < 5; i++ {
		backend.Seed(model.BlogPost{Title: "post", Topic: "topic"})
	}

	rec := do(t, backend.Handler(), http.MethodGet, "/api/v1/blogs?skip=3&limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list model.BlogList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 5, list.Total)
	assert.Len(t, list.Blogs, 2)

	rec = do(t, backend.Handler(), http.MethodGet, "/api/v1/blogs?limit=0", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetAndDelete(t *testing.T) {
	backend := New()
	backend.Seed(model.BlogPost{Title: "keep"}, model.BlogPost{Title: "drop"})
	h := backend.Handler()

	rec := do(t, h, http.MethodGet, "/api/v1/blogs/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"drop"`)

	rec = do(t, h, http.MethodDelete, "/api/v1/blogs/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Blog deleted successfully"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/blogs/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Blog not found"}`, rec.Body.String())

	require.Len(t, backend.Posts(), 1)
	assert.Equal(t, "keep", backend.Posts()[0].Title)
}

func TestFailureInjectionAndRecording(t *testing.T) {
	backend := New()
	backend.Fail(RouteList, http.StatusInternalServerError, "database offline")
	h := backend.Handler()

	rec := do(t, h, http.MethodGet, "/api/v1/blogs", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"database offline"}`, rec.Body.String())

	backend.Recover(RouteList)
	rec = do(t, h, http.MethodGet, "/api/v1/blogs", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Len(t, backend.Requests(RouteList), 2)
	assert.Empty(t, backend.Requests(RouteGenerate))
}

func TestHealthToggle(t *testing.T) {
	backend := New()
	h := backend.Handler()

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code)
	backend.SetHealthy(false)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/health", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	h := New(WithCORSOrigins("http://localhost:5173")).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/blogs", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

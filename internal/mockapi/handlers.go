// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/jeranaias/blogsmith-tui/internal/model"
)

// Messages matching the real backend.
const (
	msgNotFound = "Blog not found"
	msgDeleted  = "Blog deleted successfully"
)

type issue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	healthy := s.healthy
	s.mu.Unlock()

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, model.HealthStatus{Status: "healthy", Environment: "mock"})
}

// generateBody mirrors model.GenerationRequest with plain strings so that
// bad enum values surface as 422 issues instead of decode errors.
type generateBody struct {
	Topic    string  `json:"topic"`
	Tone     string  `json:"tone"`
	Length   string  `json:"length"`
	Keywords *string `json:"keywords"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var body generateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, []issue{{
			Loc: []string{"body"}, Msg: "Input should be a valid dictionary", Type: "model_attributes_type",
		}})
		return
	}

	var issues []issue
	if n := utf8.RuneCountInString(body.Topic); n < model.MinTopicLength || n > 500 {
		issues = append(issues, issue{
			Loc: []string{"body", "topic"}, Msg: "String should have at least 5 characters", Type: "string_too_short",
		})
	}
	tone, err := model.ParseTone(body.Tone)
	if err != nil {
		issues = append(issues, issue{
			Loc: []string{"body", "tone"}, Msg: "String should match pattern '^(professional|casual|technical|educational)$'", Type: "string_pattern_mismatch",
		})
	}
	length, err := model.ParseLength(body.Length)
	if err != nil {
		issues = append(issues, issue{
			Loc: []string{"body", "length"}, Msg: "String should match pattern '^(short|medium|long)$'", Type: "string_pattern_mismatch",
		})
	}
	if len(issues) > 0 {
		writeDetail(w, http.StatusUnprocessableEntity, issues)
		return
	}

	keywords := ""
	if body.Keywords != nil {
		keywords = *body.Keywords
	}
	title, content := compose(body.Topic, tone, length, keywords)
	score := seoScore(body.Topic, keywords)

	s.mu.Lock()
	post := model.BlogPost{
		ID:        model.ID(strconv.Itoa(s.nextID)),
		Topic:     body.Topic,
		Tone:      tone,
		Length:    length,
		Keywords:  keywords,
		Title:     title,
		Content:   content,
		SEOScore:  &score,
		WordCount: len(strings.Fields(content)),
		CreatedAt: model.NewTimestamp(s.now()),
	}
	s.nextID++
	s.posts = append([]model.BlogPost{post}, s.posts...)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	skip, skipErr := queryInt(r, "skip", 0)
	limit, limitErr := queryInt(r, "limit", 20)
	if skipErr != nil || limitErr != nil || skip < 0 || limit < 1 || limit > 100 {
		writeDetail(w, http.StatusUnprocessableEntity, []issue{{
			Loc: []string{"query"}, Msg: "Invalid pagination parameters", Type: "value_error",
		}})
		return
	}

	s.mu.Lock()
	total := len(s.posts)
	page := []model.BlogPost{}
	if skip < total {
		end := skip + limit
		if end > total {
			end = total
		}
		page = append(page, s.posts[skip:end]...)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, model.BlogList{Total: total, Blogs: page})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := model.ID(chi.URLParam(r, "id"))

	s.mu.Lock()
	idx := s.indexOf(id)
	var post model.BlogPost
	if idx >= 0 {
		post = s.posts[idx]
	}
	s.mu.Unlock()

	if idx < 0 {
		writeDetail(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := model.ID(chi.URLParam(r, "id"))

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx >= 0 {
		s.posts = append(s.posts[:idx:idx], s.posts[idx+1:]...)
	}
	s.mu.Unlock()

	if idx < 0 {
		writeDetail(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.Confirmation{Message: msgDeleted})
}

// indexOf must be called with s.mu held.
func (s *Server) indexOf(id model.ID) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// =============================================================================
// CANNED CONTENT
// =============================================================================

var sectionsByLength = map[model.Length]int{
	model.LengthShort:  2,
	model.LengthMedium: 3,
	model.LengthLong:   5,
}

// compose writes a deterministic placeholder article for a request.
func compose(topic string, tone model.Tone, length model.Length, keywords string) (string, string) {
	title := fmt.Sprintf("%s: A %s Guide", strings.TrimSpace(topic), tone.Label())

	var b strings.Builder
	fmt.Fprintf(&b, "## Introduction\n\n%s is changing how teams work. This %s overview covers the essentials.\n\n",
		strings.TrimSpace(topic), strings.ToLower(tone.Label()))
	for i := 1; i <= sectionsByLength[length]; i++ {
		fmt.Fprintf(&b, "## Key Point %d\n\nA closer look at one aspect of %s, with practical takeaways.\n\n", i, topic)
	}
	if tone == model.ToneTechnical {
		b.WriteString("```go\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n```\n\n")
	}
	if kws := model.KeywordList(keywords); len(kws) > 0 {
		fmt.Fprintf(&b, "**Keywords:** %s\n\n", strings.Join(kws, ", "))
	}
	b.WriteString("## Conclusion\n\nStart small, measure results, and iterate.")
	return title, b.String()
}

// seoScore returns a stable pseudo-score in [40, 99].
func seoScore(topic, keywords string) float64 {
	score := 40 + (len(topic)*7+len(model.KeywordList(keywords))*11)%60
	return float64(score)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mockapi is an in-memory stand-in for the blog generation backend.
//
// It serves the same REST contract as the real service (health, generate,
// list, get, delete) from a chi router, writes FastAPI-style {"detail": ...}
// error bodies, and records every request it receives. Tests mount it with
// httptest; `blogsmith mock-server` serves it for offline demos.
//
// # Usage
//
//	backend := mockapi.New()
//	srv := httptest.NewServer(backend.Handler())
//	defer srv.Close()
//
//	backend.Fail(mockapi.RouteGenerate, http.StatusInternalServerError, "model overloaded")
//	reqs := backend.Requests(mockapi.RouteGenerate)
package mockapi

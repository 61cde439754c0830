// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the blog generation backend.
//
// The backend exposes four resource operations under /api/v1 and an
// unversioned health probe:
//
//	GET    /health                 connectivity probe
//	POST   /api/v1/generate        generate a post
//	GET    /api/v1/blogs           list posts (skip, limit)
//	GET    /api/v1/blogs/{id}      fetch one post
//	DELETE /api/v1/blogs/{id}      delete a post
//
// Every call is a single round trip. The client never retries and never
// caches. Failures are returned as *ClientError, which carries the backend's
// "detail" message when the response had one.
//
// # Usage
//
//	client := api.NewClient(&api.ClientConfig{BaseURL: "http://localhost:8000"})
//	post, err := client.Generate(ctx, req)
//	if err != nil {
//	    msg := api.UserMessage(err, "Failed to generate blog post")
//	}
package api

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes blog posts to files.
//
// # Key Types
//
//   - Exporter: converts a post into bytes of one format
//   - Options: output directory, theme and metadata switches
//
// # Supported Formats
//
//   - Markdown: "# <title>\n\n<content>", the plain download
//   - HTML: standalone page rendered with goldmark, code fences highlighted by chroma
//   - JSON: the post record as returned by the backend
//
// # Usage
//
//	exp, err := export.ForFormat("html", opts)
//	if err != nil {
//	    return err
//	}
//	path, err := export.ExportToFile(post, exp, opts)
package export

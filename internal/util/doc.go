// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small string and file helpers shared by the
// blogsmith packages.
//
// # Key Functions
//
// String Utilities:
//   - Truncate: rune-based truncation that appends "..." past the limit
//   - TruncateWidth: display-width truncation for table cells and rows
//   - StringWidth: terminal cell width of a string
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	// Preview text for a history row
//	preview := util.Truncate(text, 150)
//
//	// Fit a title into a 40-column cell
//	cell := util.TruncateWidth(title, 40)
//
//	// Write an export atomically
//	err := util.AtomicWriteFile(path, data, 0644)
package util

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared UI building blocks of blogsmith.
//
// # Key Types
//
//   - Fetch: generic idle/loading/loaded/error state with stale-result
//     protection, used by the history list and the health probe
//   - Header: title bar with the backend connectivity indicator
//   - Spinner: a bubbles spinner with a message and elapsed timer
//
// Banners are rendered by RenderBanner.
package components

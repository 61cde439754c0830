// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app provides the root Bubble Tea model.
//
// The root owns State, the single source of truth for the displayed post,
// the generate lifecycle, the banners and backend connectivity. It composes
// the header, form, display and history components, routes keys to the
// focused pane, and turns their messages into API calls.
//
// Layout:
//
//	+--------------------------------------------------+
//	| blogsmith  AI blog generator        [*] connected |
//	| [X] error / [OK] success / [!] offline banners    |
//	+------------------+-------------------------------+
//	| form             | display                       |
//	+------------------+                               |
//	| history          |                               |
//	+------------------+-------------------------------+
//	| help                                              |
//	+--------------------------------------------------+
//
// Narrow terminals show only the focused pane.
package app

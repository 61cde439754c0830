// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides the list of previously generated posts.
//
// The list is fetched on Init, whenever the owner's refresh trigger changes,
// and on demand. Rows can be selected (SelectMsg) or deleted after a y/n
// confirmation. A successful delete removes the row locally without a
// refetch; a failed one raises a blocking alert.
package history

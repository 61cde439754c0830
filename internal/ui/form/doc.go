// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package form provides the blog generation form.
//
// The form owns the draft (topic, tone, length, keywords) and validates it
// when the user submits. A valid draft is emitted as a SubmitMsg; the form
// never talks to the backend. The owner flips it into the submitting state
// with SetSubmitting while a request is outstanding, which disables every
// edit and submit key.
package form

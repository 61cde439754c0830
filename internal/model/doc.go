// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures exchanged with the blog
// generation backend, plus the pure helpers that derive display values from
// them.
//
// # Key Types
//
//   - BlogPost: a generated article as returned by the backend
//   - GenerationRequest: the parameters submitted to generate a post
//   - Tone, Length: closed enumerations for requests; stored posts keep
//     values outside them as ToneOther/LengthOther plus the raw text
//   - ID, Timestamp: lenient decoders for backend identifiers and dates
//
// # Usage
//
// Build a request from raw form input:
//
//	req, err := model.NewGenerationRequest(topic, model.ToneCasual, model.LengthShort, keywords)
//	if err != nil {
//	    // err is a *model.ValidationError
//	}
//
// Derive display values:
//
//	doc := model.MarkdownDocument(post)
//	name := model.DownloadName(post, ".md")
//	tier := model.SEOTier(*post.SEOScore)
package model

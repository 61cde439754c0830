// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/jeranaias/blogsmith-tui/internal/ui/components"
)

// HandleGenerate generates one post without the terminal UI.
//
//	blogsmith generate "topic words" [--tone T] [--length L] [--keywords K]
//	blogsmith generate --topic "topic words" [--raw]
func HandleGenerate(ctx context.Context, env *Env, args Args) error {
	p := NewArgParser(args.Raw, "raw")

	topic := p.Flag("topic")
	if topic == "" && p.HasFlag("topic") {
		return NewValidationErrorWithExample("topic", "", "--topic needs a value", `--topic "The future of AI in healthcare"`)
	}
	if topic == "" {
		topic = JoinPositionalArgs(p, 0)
	}
	if strings.TrimSpace(topic) == "" {
		return ErrMissingArgument("topic", `blogsmith generate "The future of AI in healthcare"`)
	}

	tone := model.DefaultTone
	if v := p.Flag("tone"); v != "" {
		t, err := model.ParseTone(v)
		if err != nil {
			return NewValidationErrorWithExample("tone", v, "unknown tone", "--tone technical")
		}
		tone = t
	}
	length := model.DefaultLength
	if v := p.Flag("length"); v != "" {
		l, err := model.ParseLength(v)
		if err != nil {
			return NewValidationErrorWithExample("length", v, "unknown length", "--length short")
		}
		length = l
	}

	req, err := model.NewGenerationRequest(topic, tone, length, p.Flag("keywords"))
	if err != nil {
		return err
	}

	return OutputJSON(env.Out, args.JSON, "generate", func() (any, error) {
		if !args.JSON && !args.Quiet {
			fmt.Fprintf(env.Err, "%s\n", DimStyle.Render(fmt.Sprintf("Generating a %s %s post...",
				strings.ToLower(length.Label()), strings.ToLower(tone.Label()))))
		}
		start := time.Now()
		post, err := env.Client.Generate(ctx, req)
		if err != nil {
			return nil, err
		}
		log.Info().
			Str("id", post.ID.String()).
			Dur("elapsed", time.Since(start)).
			Msg("blog post generated")
		if args.JSON {
			return post, nil
		}

		if p.BoolFlag("raw") {
			fmt.Fprintln(env.Out, model.MarkdownDocument(post))
			return post, nil
		}
		env.printf(args, "%s %s\n", RenderStatus(true), SuccessStyle.Render("Blog post generated successfully!"))
		env.printf(args, "%s%s\n", RenderLabel("ID", 0), ValueStyle.Render(post.ID.String()))
		env.printf(args, "%s%s\n", RenderLabel("Title", 0), ValueStyle.Render(post.DisplayTitle()))
		env.printf(args, "%s%s\n", RenderLabel("Words", 0), ValueStyle.Render(components.FormatNumber(post.WordCount)))
		env.printf(args, "%s%s\n", RenderLabel("SEO score", 0), renderScore(post))
		env.printf(args, "\n%s\n", DimStyle.Render(fmt.Sprintf("blogsmith show %s to read it", post.ID)))
		return post, nil
	})
}

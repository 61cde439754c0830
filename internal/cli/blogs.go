// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/blogsmith-tui/internal/api"
	"github.com/jeranaias/blogsmith-tui/internal/export"
	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/jeranaias/blogsmith-tui/internal/ui/components"
	"github.com/jeranaias/blogsmith-tui/internal/util"
)

// =============================================================================
// LIST
// =============================================================================

// HandleList prints one page of the history.
//
//	blogsmith list [--skip N] [--limit N] [--json]
func HandleList(ctx context.Context, env *Env, args Args) error {
	p := NewArgParser(args.Raw)
	skip, err := p.FlagInt("skip", api.DefaultSkip)
	if err != nil {
		return err
	}
	limit, err := p.FlagInt("limit", api.DefaultLimit)
	if err != nil {
		return err
	}
	if err := requireNonNegative("skip", skip); err != nil {
		return err
	}
	if limit <= 0 {
		return NewValidationError("limit", fmt.Sprint(limit), "must be positive")
	}

	return OutputJSON(env.Out, args.JSON, "list", func() (any, error) {
		list, err := env.Client.ListBlogs(ctx, skip, limit)
		if err != nil {
			return nil, err
		}
		if !args.JSON {
			printList(env, args, list, skip)
		}
		return list, nil
	})
}

func printList(env *Env, args Args, list *model.BlogList, skip int) {
	if len(list.Blogs) == 0 {
		env.printf(args, "%s\n%s\n", TitleStyle.Render("No Blogs Yet"),
			DimStyle.Render("Generate your first blog post to see it here"))
		return
	}

	width := GetTerminalWidth()
	titleW := width - 44
	if titleW < 20 {
		titleW = 20
	}

	env.printf(args, "%s\n", TitleStyle.Render(fmt.Sprintf("Blog History (%d)", list.Total)))
	env.printf(args, "%s %s %s %s %s\n",
		DimStyle.Render(util.PadWidth("ID", 6)),
		DimStyle.Render(util.PadWidth("CREATED", 14)),
		DimStyle.Render(util.PadWidth("WORDS", 7)),
		DimStyle.Render(util.PadWidth("SEO", 7)),
		DimStyle.Render("TITLE"))
	for i := range list.Blogs {
		b := &list.Blogs[i]
		env.printf(args, "%s %s %s %s %s\n",
			ValueStyle.Render(util.PadWidth(util.TruncateWidth(b.ID.String(), 6), 6)),
			DimStyle.Render(util.PadWidth(util.TruncateWidth(model.FormatDate(b.CreatedAt.Time), 14), 14)),
			ValueStyle.Render(util.PadWidth(components.FormatNumber(b.WordCount), 7)),
			renderScore(b)+strings.Repeat(" ", max(0, 7-util.StringWidth(scoreWidthText(b)))),
			ValueStyle.Render(util.TruncateWidth(b.DisplayTitle(), titleW)))
	}
	env.printf(args, "\n%s\n", DimStyle.Render(fmt.Sprintf("Showing %d-%d of %s",
		skip+1, skip+len(list.Blogs), components.Plural(list.Total, "post", "posts"))))
}

func scoreWidthText(p *model.BlogPost) string {
	if !p.HasSEOScore() {
		return "n/a"
	}
	return model.ScoreText(*p.SEOScore)
}

// =============================================================================
// SHOW
// =============================================================================

// HandleShow renders one post with glamour, or prints its markdown source.
//
//	blogsmith show <id> [--raw] [--json]
func HandleShow(ctx context.Context, env *Env, args Args) error {
	p := NewArgParser(args.Raw, "raw")
	id := p.Positional(0)
	if id == "" {
		return ErrMissingArgument("id", "blogsmith show 42")
	}

	return OutputJSON(env.Out, args.JSON, "show", func() (any, error) {
		post, err := env.Client.GetBlog(ctx, model.ID(id))
		if err != nil {
			return nil, err
		}
		if args.JSON {
			return post, nil
		}
		if p.BoolFlag("raw") {
			fmt.Fprintln(env.Out, model.MarkdownDocument(post))
			return post, nil
		}

		env.printf(args, "%s\n", TitleStyle.Render(post.DisplayTitle()))
		env.printf(args, "%s\n", DimStyle.Render(postMeta(post)))
		if kws := model.KeywordList(post.Keywords); len(kws) > 0 {
			env.printf(args, "%s%s\n", RenderLabel("Keywords", 0), ValueStyle.Render(strings.Join(kws, ", ")))
		}
		env.printf(args, "%s%s\n", RenderLabel("SEO score", 0), renderScore(post))
		env.printf(args, "%s\n", RenderSeparator(GetTerminalWidth()-2))

		md := components.NewMarkdown(markdownStyle(env.Config.UI.Theme))
		width := GetTerminalWidth()
		if ww := env.Config.UI.WordWrap; ww > 0 && ww < width {
			width = ww
		}
		fmt.Fprintln(env.Out, md.Render(post.Content, width))
		return post, nil
	})
}

func postMeta(p *model.BlogPost) string {
	parts := []string{"#" + p.ID.String()}
	if d := model.FormatDate(p.CreatedAt.Time); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts,
		components.Plural(p.WordCount, "word", "words"),
		p.ToneLabel(),
		p.LengthLabel(),
	)
	return strings.Join(parts, " | ")
}

// =============================================================================
// DELETE
// =============================================================================

// DeleteData is the --json payload of the delete command.
type DeleteData struct {
	ID      model.ID `json:"id"`
	Message string   `json:"message"`
}

// HandleDelete deletes a post after confirmation.
//
//	blogsmith delete <id> [--confirm] [--json]
func HandleDelete(ctx context.Context, env *Env, args Args) error {
	p := NewArgParser(args.Raw, "confirm", "yes", "y")
	id := model.ID(p.Positional(0))
	if id.IsZero() {
		return ErrMissingArgument("id", "blogsmith delete 42 --confirm")
	}
	confirmFlag := p.BoolFlag("confirm") || p.BoolFlag("yes") || p.BoolFlag("y")

	return OutputJSON(env.Out, args.JSON, "delete", func() (any, error) {
		details := map[string]string{"ID": id.String()}
		if !confirmFlag && !args.JSON && env.Interactive {
			post, err := env.Client.GetBlog(ctx, id)
			if err != nil {
				return nil, err
			}
			details["Title"] = post.DisplayTitle()
			details["Created"] = model.FormatDate(post.CreatedAt.Time)
		}
		if err := RequireConfirmation(env, "delete this blog post", details, ConfirmationOptions{
			ConfirmFlag: confirmFlag,
			JSONMode:    args.JSON,
		}); err != nil {
			return nil, err
		}

		conf, err := env.Client.DeleteBlog(ctx, id)
		if err != nil {
			return nil, err
		}
		log.Info().Str("id", id.String()).Msg("blog post deleted")
		data := DeleteData{ID: id, Message: conf.Message}
		if !args.JSON {
			env.printf(args, "%s %s\n", RenderStatus(true), conf.Message)
		}
		return data, nil
	})
}

// =============================================================================
// EXPORT
// =============================================================================

// ExportData is the --json payload of the export command.
type ExportData struct {
	ID     model.ID `json:"id"`
	Format string   `json:"format"`
	Path   string   `json:"path"`
}

// HandleExport writes a post to a file.
//
//	blogsmith export <id> [--format md|html|json] [--output DIR] [--meta] [--open]
func HandleExport(ctx context.Context, env *Env, args Args) error {
	p := NewArgParser(args.Raw, "meta", "open")
	id := model.ID(p.Positional(0))
	if id.IsZero() {
		return ErrMissingArgument("id", "blogsmith export 42 --format html")
	}
	format := p.FlagOrDefault("format", "md")
	opts := &export.Options{
		OutputDir:       p.FlagOrDefault("output", env.Config.ExportDir()),
		OpenAfterExport: p.BoolFlag("open"),
		IncludeMetadata: p.BoolFlag("meta"),
		Theme:           htmlTheme(env.Config.UI.Theme),
	}
	exp, err := export.ForFormat(format, opts)
	if err != nil {
		return ErrUnsupportedFormat(format, export.Formats())
	}

	return OutputJSON(env.Out, args.JSON, "export", func() (any, error) {
		post, err := env.Client.GetBlog(ctx, id)
		if err != nil {
			return nil, err
		}
		path, err := export.ExportToFile(post, exp, opts)
		if err != nil && path == "" {
			return nil, NewCommandError("export", "write", "could not save the post", err)
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("exported file could not be opened")
		}
		if !args.JSON {
			env.printf(args, "%s Saved to %s\n", RenderStatus(true), path)
		}
		return ExportData{ID: id, Format: strings.TrimPrefix(exp.FileExtension(), "."), Path: path}, nil
	})
}

func htmlTheme(theme string) string {
	if theme == "dark" {
		return "dark"
	}
	return "light"
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmutil "github.com/yuin/goldmark/util"

	"github.com/jeranaias/blogsmith-tui/internal/model"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter renders a post as a standalone HTML page with embedded CSS.
// Raw HTML inside the post body is dropped, not passed through.
type HTMLExporter struct {
	options *Options
	md      goldmark.Markdown
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	style := "github"
	if opts.Theme == "dark" {
		style = "monokai"
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(gmutil.Prioritized(&codeRenderer{style: style}, 200)),
		),
	)
	return &HTMLExporter{options: opts, md: md}
}

// Export converts a post to HTML.
func (e *HTMLExporter) Export(post *model.BlogPost) ([]byte, error) {
	if post == nil {
		return nil, ErrNilPost
	}

	var body bytes.Buffer
	if err := e.md.Convert([]byte(post.Content), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	theme := e.options.Theme
	if theme != "dark" {
		theme = "light"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(post.DisplayTitle())))
	sb.WriteString("    <meta name=\"generator\" content=\"blogsmith\">\n")
	if kws := model.KeywordList(post.Keywords); len(kws) > 0 {
		sb.WriteString(fmt.Sprintf("    <meta name=\"keywords\" content=\"%s\">\n", html.EscapeString(strings.Join(kws, ", "))))
	}
	if !post.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=\"%s\">\n", post.CreatedAt.Format(time.RFC3339)))
	}
	sb.WriteString(css)
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", theme))
	sb.WriteString("    <article class=\"post\">\n")
	sb.WriteString(fmt.Sprintf("        <h1>%s</h1>\n", html.EscapeString(post.Title)))

	if e.options.IncludeMetadata {
		sb.WriteString(e.renderDetails(post))
	}

	sb.Write(body.Bytes())
	sb.WriteString("    </article>\n")
	sb.WriteString("    <footer class=\"footer\">Generated with blogsmith</footer>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

func (e *HTMLExporter) renderDetails(post *model.BlogPost) string {
	var sb strings.Builder
	sb.WriteString("        <dl class=\"details\">\n")
	row := func(k, v string) {
		sb.WriteString(fmt.Sprintf("            <dt>%s</dt><dd>%s</dd>\n", k, html.EscapeString(v)))
	}
	row("Topic", post.Topic)
	row("Tone", post.ToneLabel())
	row("Length", post.LengthLabel())
	row("SEO score", scoreLabel(post))
	row("Words", fmt.Sprintf("%d", post.WordCount))
	if !post.CreatedAt.IsZero() {
		row("Created", model.FormatDate(post.CreatedAt.Time))
	}
	sb.WriteString("        </dl>\n")

	if kws := model.KeywordList(post.Keywords); len(kws) > 0 {
		sb.WriteString("        <ul class=\"keywords\">")
		for _, k := range kws {
			sb.WriteString(fmt.Sprintf("<li>%s</li>", html.EscapeString(k)))
		}
		sb.WriteString("</ul>\n")
	}
	return sb.String()
}

// =============================================================================
// CODE FENCE HIGHLIGHTING
// =============================================================================

// codeRenderer replaces goldmark's fenced code output with chroma markup
// using inline styles.
type codeRenderer struct {
	style string
}

func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

func (r *codeRenderer) renderFencedCode(w gmutil.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	lang := string(n.Language(source))
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code.String())
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(r.style)
	if style == nil {
		style = chromaStyles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code.String())
	if err != nil {
		_, _ = w.WriteString("<pre><code>")
		_, _ = w.WriteString(html.EscapeString(code.String()))
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkSkipChildren, nil
	}

	formatter := chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4))
	if err := formatter.Format(w, style, iterator); err != nil {
		return ast.WalkStop, err
	}
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

const css = `    <style>
        * { box-sizing: border-box; }
        body {
            margin: 0;
            padding: 2rem 1rem;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            line-height: 1.65;
        }
        .light-theme { background: #fafafa; color: #1f2328; }
        .dark-theme { background: #1e1e2e; color: #cdd6f4; }
        .post { max-width: 760px; margin: 0 auto; }
        .post h1 { font-size: 2.2rem; line-height: 1.2; }
        .post pre { padding: 1rem; border-radius: 6px; overflow-x: auto; }
        .post code { font-family: "JetBrains Mono", Menlo, Consolas, monospace; font-size: 0.9em; }
        .post blockquote { margin: 0; padding-left: 1rem; border-left: 4px solid #8b949e; }
        .details { display: grid; grid-template-columns: max-content 1fr; gap: 0.25rem 1rem; font-size: 0.9rem; }
        .details dt { font-weight: 600; }
        .details dd { margin: 0; }
        .keywords { list-style: none; padding: 0; display: flex; flex-wrap: wrap; gap: 0.5rem; }
        .keywords li { padding: 0.1rem 0.6rem; border-radius: 999px; background: #dbeafe; color: #1e3a8a; font-size: 0.85rem; }
        .footer { max-width: 760px; margin: 3rem auto 0; font-size: 0.8rem; opacity: 0.6; }
    </style>
`

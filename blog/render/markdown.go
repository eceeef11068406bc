package render

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

type markdownOptions struct {
	highlight bool
	linkBase  string
}

// MarkdownOption configures a MarkdownRenderer.
type MarkdownOption func(*markdownOptions)

// WithHighlighting toggles chroma syntax highlighting of fenced code blocks.
func WithHighlighting(enabled bool) MarkdownOption {
	return func(o *markdownOptions) {
		o.highlight = enabled
	}
}

// WithLinkBase rewrites relative link and image destinations against base.
// An empty base leaves destinations untouched.
func WithLinkBase(base string) MarkdownOption {
	return func(o *markdownOptions) {
		o.linkBase = strings.TrimSuffix(base, "/")
	}
}

type relativeLinkTransformer struct {
	domain string
}

func (t *relativeLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		link, linkOk := n.(*ast.Link)
		img, imgOk := n.(*ast.Image)
		if !linkOk && !imgOk {
			return ast.WalkContinue, nil
		}

		dest := ""
		if linkOk {
			dest = string(link.Destination)
		} else if imgOk {
			dest = string(img.Destination)
		}

		if dest == "" || strings.HasPrefix(dest, "#") || !isRelativeLink(dest) {
			return ast.WalkContinue, nil
		}

		destFile := path.Base(dest)
		if imgOk {
			img.Destination = []byte(t.domain + "/images/" + destFile)
		} else if linkOk {
			// Strip .md and .html extensions from links
			destFile = strings.TrimSuffix(destFile, ".md")
			destFile = strings.TrimSuffix(destFile, ".html")
			link.Destination = []byte(t.domain + "/" + destFile)
		}

		return ast.WalkContinue, nil
	})
}

func isRelativeLink(dest string) bool {
	// Absolute path check
	if strings.HasPrefix(dest, "/") {
		return !strings.HasPrefix(dest, "//")
	}

	if strings.HasPrefix(dest, "./") || strings.HasPrefix(dest, "../") {
		return true
	}

	return !strings.Contains(dest, ":")
}

// escapedHTMLRenderer renders raw HTML found in Markdown source as visible, escaped text.
// Post authors are untrusted, so their markup must never reach the page verbatim.
type escapedHTMLRenderer struct{}

func (r *escapedHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
}

func (r *escapedHTMLRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.HTMLBlock)
	if entering {
		_, _ = w.WriteString("<p>")
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			_, _ = w.WriteString(EscapeHTML(string(line.Value(source))))
		}
		return ast.WalkContinue, nil
	}

	if n.HasClosure() {
		_, _ = w.WriteString(EscapeHTML(string(n.ClosureLine.Value(source))))
	}
	_, _ = w.WriteString("</p>\n")
	return ast.WalkContinue, nil
}

func (r *escapedHTMLRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)
	for i := 0; i < n.Segments.Len(); i++ {
		segment := n.Segments.At(i)
		_, _ = w.WriteString(EscapeHTML(string(segment.Value(source))))
	}
	return ast.WalkSkipChildren, nil
}

// MarkdownRenderer converts Markdown documents into HTML fragments.
// It is safe for concurrent use.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdownRenderer(opts ...MarkdownOption) *MarkdownRenderer {
	o := markdownOptions{highlight: true}
	for _, opt := range opts {
		opt(&o)
	}

	extensions := []goldmark.Extender{
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	}
	if o.highlight {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	parserOpts := []parser.Option{
		parser.WithAutoHeadingID(),
	}
	if o.linkBase != "" {
		parserOpts = append(parserOpts, parser.WithASTTransformers(
			util.Prioritized(&relativeLinkTransformer{domain: o.linkBase}, 100),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			// WithUnsafe() is not used: raw HTML goes through escapedHTMLRenderer and
			// goldmark drops dangerous link destinations.
			renderer.WithNodeRenderers(
				util.Prioritized(&escapedHTMLRenderer{}, 100),
			),
		),
	)

	return &MarkdownRenderer{md: md}
}

// Render converts markdown into an HTML fragment. Empty input renders to "".
func (r *MarkdownRenderer) Render(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	return buf.String(), nil
}

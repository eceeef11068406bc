package render

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/dfryer1193/blogify/blog/domain"
)

// ExcerptLength is the preview length used for post listings.
const ExcerptLength = 180

const ellipsis = "..."

// textPolicy reduces an html post to its text, keeping words from adjacent elements apart.
var textPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// excerptParser only parses; it never renders, so no renderer options are needed.
var excerptParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// Excerpt returns the readable text of a Markdown document, without markup, code or
// images, truncated at a word boundary to at most max characters.
// Headings are skipped unless the document has no other text.
func Excerpt(markdown string, max int) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}

	source := []byte(markdown)
	doc := excerptParser.Parse(text.NewReader(source))

	excerpt := collectText(doc, source, false)
	if excerpt == "" {
		excerpt = collectText(doc, source, true)
	}

	return Truncate(excerpt, max)
}

// TextExcerpt returns a single-line preview of content of any type, at most max characters.
// html posts are reduced to their text before whitespace is collapsed.
func TextExcerpt(content string, ct domain.ContentType, max int) string {
	switch ct {
	case domain.ContentTypeMarkdown:
		return Excerpt(content, max)
	case domain.ContentTypeHTML:
		content = html.UnescapeString(textPolicy.Sanitize(content))
	}
	return Truncate(strings.Join(strings.Fields(content), " "), max)
}

func collectText(doc ast.Node, source []byte, includeHeadings bool) string {
	var sb strings.Builder

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				sb.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.RawHTML, *ast.CodeSpan, *ast.Image:
			return ast.WalkSkipChildren, nil
		case *ast.Heading:
			if !includeHeadings {
				return ast.WalkSkipChildren, nil
			}
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(sb.String()), " ")
}

// Truncate cuts s at a word boundary so that, ellipsis included, it is at most max characters.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}

	limit := max - len(ellipsis)
	if limit <= 0 {
		return string(runes[:max])
	}

	cut := string(runes[:limit])
	if !unicode.IsSpace(runes[limit]) {
		if lastSpace := strings.LastIndexFunc(cut, unicode.IsSpace); lastSpace > 0 {
			cut = cut[:lastSpace]
		}
	}
	return strings.TrimRightFunc(cut, unicode.IsSpace) + ellipsis
}

// ExtractTitle returns the text of a leading "# " heading, or "" when the
// document does not start with one.
func ExtractTitle(markdown string) string {
	lines := strings.SplitN(markdown, "\n", 2)
	if len(lines) == 0 {
		return ""
	}

	firstLine := strings.TrimSpace(lines[0])
	title, found := strings.CutPrefix(firstLine, "# ")
	if !found {
		return ""
	}

	return strings.TrimSpace(title)
}

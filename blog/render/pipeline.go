// Package render turns stored post content into HTML that a view can insert as-is.
//
// Every path either escapes its input or parses it into a tree before producing markup,
// so text written by a post author never reaches the page as live HTML.
package render

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"

	"github.com/dfryer1193/blogify/blog/domain"
)

// PipelineConfig controls how the pipeline treats content.
type PipelineConfig struct {
	Highlight bool
	// TrustHTML renders html posts as sanitized markup instead of escaped text.
	TrustHTML bool
	LinkBase  string
}

// Pipeline dispatches post content to the escaper or the Markdown renderer.
// It holds no mutable state and may be shared between goroutines.
type Pipeline struct {
	markdown  *MarkdownRenderer
	policy    *bluemonday.Policy
	trustHTML bool
}

func NewPipeline(cfg PipelineConfig) *Pipeline {
	return &Pipeline{
		markdown:  NewMarkdownRenderer(WithHighlighting(cfg.Highlight), WithLinkBase(cfg.LinkBase)),
		policy:    bluemonday.UGCPolicy(),
		trustHTML: cfg.TrustHTML,
	}
}

// Render produces trusted HTML for a post body. It never fails: content that cannot be
// rendered as Markdown falls back to escaped text.
func (p *Pipeline) Render(content string, contentType domain.ContentType, title string) string {
	if content == "" {
		return ""
	}

	switch contentType {
	case domain.ContentTypeMarkdown:
		out, err := p.markdown.Render(content)
		if err != nil {
			log.Warn().Err(err).Str("title", title).Msg("Falling back to plain text rendering")
			return PlainToHTML(content)
		}
		return StripDuplicateTitle(out, title)
	case domain.ContentTypeHTML:
		if p.trustHTML {
			return p.policy.Sanitize(content)
		}
		return PlainToHTML(content)
	default:
		return PlainToHTML(content)
	}
}

package application

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/dfryer1193/blogify/shared/llm"
	"github.com/rs/zerolog/log"
)

const (
	descriptionTemperature = 0.5
	descriptionMaxTokens   = 100
	contentTemperature     = 0.7
	contentMaxTokens       = 1024
)

var extraBlankLines = regexp.MustCompile(`\n{3,}`)

// GenerationService asks an LLM for post descriptions and bodies. Provider
// failures never reach the caller; a fallback text is returned instead.
type GenerationService struct {
	completer llm.Completer
	timeout   time.Duration
}

func NewGenerationService(completer llm.Completer, timeout time.Duration) *GenerationService {
	if completer == nil {
		completer = llm.None{}
	}
	if timeout <= 0 {
		timeout = llm.DefaultTimeout
	}
	return &GenerationService{completer: completer, timeout: timeout}
}

// Configured reports whether a real provider is behind the service.
func (s *GenerationService) Configured() bool {
	return llm.IsConfigured(s.completer)
}

func (s *GenerationService) GenerateDescription(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}

	answer, err := s.complete(ctx, llm.Request{
		Prompt:      "Write a short 2-3 sentence description about: " + title,
		Temperature: descriptionTemperature,
		MaxTokens:   descriptionMaxTokens,
	})
	answer = strings.TrimSpace(answer)
	if err != nil || answer == "" {
		log.Warn().Err(err).Str("provider", s.completer.Name()).Str("title", title).Msg("Description generation failed, using fallback")
		return cutRunes(fallbackDescription(title), domain.MaxDescriptionLength), nil
	}

	return cutRunes(answer, domain.MaxDescriptionLength), nil
}

func (s *GenerationService) GenerateContent(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}

	answer, err := s.complete(ctx, llm.Request{
		Prompt:      contentPrompt(title),
		Temperature: contentTemperature,
		MaxTokens:   contentMaxTokens,
	})
	answer = strings.TrimSpace(answer)
	if err == nil && answer == "" {
		err = fmt.Errorf("%s returned an empty answer", s.completer.Name())
	}
	if err != nil {
		log.Warn().Err(err).Str("provider", s.completer.Name()).Str("title", title).Msg("Content generation failed, using fallback")
		return fallbackContent(title, err), nil
	}

	if !strings.HasPrefix(answer, "#") {
		answer = "# " + title + "\n\n" + answer
	}
	answer = extraBlankLines.ReplaceAllString(answer, "\n\n")

	return cutRunes(answer, domain.MaxContentLength), nil
}

func (s *GenerationService) complete(ctx context.Context, req llm.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.completer.Complete(ctx, req)
}

func contentPrompt(title string) string {
	return fmt.Sprintf(`Write a comprehensive blog post about: %q

Use markdown format with:
- # for main title
- ## for section headings
- **bold** for important terms
- Bullet points for lists
- 3-4 paragraphs of quality content`, title)
}

func fallbackDescription(title string) string {
	return fmt.Sprintf("Learn about %s and discover key insights on this topic.", title)
}

func fallbackContent(title string, cause error) string {
	return fmt.Sprintf(`# %s

> **Error Notice**: Content generation is temporarily unavailable.

## What happened?
We encountered a technical issue while generating AI content for **"%s"**.

## Next steps:
1. **Check your AI configuration** - Ensure your API key is valid
2. **Try again** - The issue might be temporary
3. **Manual creation** - You can write the content manually

### Error Details:
`+"```"+`
%s
`+"```"+`

---

*Please try again or contact support if the issue persists.*`, title, title, cause.Error())
}

func cutRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}

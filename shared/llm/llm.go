// Package llm wraps the chat-completion providers used to generate post text.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNotConfigured is returned by the none provider for every request.
var ErrNotConfigured = errors.New("ai provider not configured")

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderNone       = "none"

	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel             = "gpt-3.5-turbo"
	DefaultTimeout           = 30 * time.Second
)

// Request is a single-turn prompt.
type Request struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer returns the model's answer to one prompt.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// New builds the Completer for cfg.Provider. A provider without an API key
// degrades to the none provider so generation falls back instead of failing startup.
func New(ctx context.Context, cfg Config) (Completer, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderOpenRouter
	}

	if provider != ProviderNone && cfg.APIKey == "" {
		log.Warn().Str("provider", provider).Msg("No AI API key configured, generation will use fallbacks")
		return None{}, nil
	}

	switch provider {
	case ProviderOpenRouter:
		if cfg.BaseURL == "" {
			cfg.BaseURL = DefaultOpenRouterBaseURL
		}
		return newOpenAI(provider, cfg), nil
	case ProviderOpenAI:
		return newOpenAI(provider, cfg), nil
	case ProviderGemini:
		return newGemini(ctx, cfg)
	case ProviderAnthropic:
		return newAnthropic(cfg), nil
	case ProviderNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

// IsConfigured reports whether c can reach a real provider.
func IsConfigured(c Completer) bool {
	if c == nil {
		return false
	}
	_, none := c.(None)
	return !none
}

// None answers every request with ErrNotConfigured.
type None struct{}

func (None) Complete(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}

func (None) Name() string { return ProviderNone }

package llm

import (
	"context"
	"fmt"
)

// EventLogger records every model request for diagnostics. The store
// package provides the SQLite-backed implementation.
type EventLogger interface {
	LogLLMRequest(ctx context.Context, e RequestEvent)
}

// NewProvider creates a Provider from configuration, wrapped with
// retry and logging middleware. logger may be nil.
func NewProvider(ctx context.Context, cfg Config, logger EventLogger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base.
	wrapped := Provider(base)
	if logger != nil {
		wrapped = WithLogging(wrapped, logger)
	}
	return WithRetry(wrapped, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider using CLEANFOCUS_* config when
// a provider is explicitly selected, otherwise discovering one from
// standard API key variables.
func NewProviderFromEnv(ctx context.Context, logger EventLogger) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, logger)
}

// resolveModel maps a friendly model name to a provider model ID.
// Unknown names pass through unchanged so new models work without a
// release.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/hanzi/internal/store"
)

// NewProvider builds the configured vendor adapter and wraps it so a call
// goes retry → logging → vendor. Every attempt is therefore recorded as
// its own llm_request event. The mock provider is returned bare.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = newAnthropic(cfg.Anthropic)
	case "openai":
		base, err = newOpenAI(cfg.OpenAI)
	case "openrouter":
		base, err = newOpenRouter(cfg.OpenRouter)
	case "gemini":
		base, err = newGemini(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return WithRetry(WithLogging(base, cfg.Provider, events, logger), cfg.Retry), nil
}

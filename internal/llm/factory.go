package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped as
// caller → timeout → retry → audit → base. A nil events repo skips the audit layer.
// It returns (nil, nil) when no provider is configured.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log *zap.Logger) (Provider, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	log = log.With(zap.String("provider", base.Name()), zap.String("model", base.ModelID()))
	p := base
	if events != nil {
		p = WithAudit(p, events, log)
	}
	return WithTimeout(WithRetry(p, cfg.Retry, log), cfg.Timeout), nil
}

type timeboxed struct {
	Provider
	d time.Duration
}

// WithTimeout bounds each Generate call, retries included, to d. A zero
// or negative d returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeboxed{Provider: p, d: d}
}

func (t *timeboxed) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.Provider.Generate(ctx, req)
}

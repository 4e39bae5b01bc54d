package llm

import (
	"context"
	"fmt"

	"github.com/hubertmaka/culinary-agent/internal/config"
	"github.com/hubertmaka/culinary-agent/internal/httpclient"
)

// NewProvider builds the provider selected by agent.provider.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.Agent.Provider {
	case config.ProviderGemini, "":
		return NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Agent.BaseURL, httpclient.InstrumentedClient)
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.Agent.BaseURL, httpclient.InstrumentedClient), nil
	default:
		return nil, fmt.Errorf("unknown agent provider: %s", cfg.Agent.Provider)
	}
}

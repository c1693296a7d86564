package di

import (
	"context"
	"fmt"
	"time"

	"contract_analyzer/internal/app/config"
	"contract_analyzer/internal/feature/contract/adapters/gemini"
	"contract_analyzer/internal/feature/contract/adapters/groq"
	"contract_analyzer/internal/feature/contract/adapters/ratelimited"
	"contract_analyzer/internal/feature/contract/domain/entity"
	"contract_analyzer/internal/feature/contract/usecase"
	infrahttp "contract_analyzer/internal/platform/http"
	"contract_analyzer/internal/platform/metrics"
	"contract_analyzer/internal/shared/ratelimiter"
)

// NewCompleter creates the configured LLM client with an instrumented HTTP client,
// the optional rate limiter and call metrics. It never fails on a missing API key.
func NewCompleter(ctx context.Context, cfg config.LLMConfig, m *metrics.Metrics) (usecase.Completer, entity.ModelCatalog, error) {
	catalog, ok := entity.CatalogFor(cfg.Provider)
	if !ok {
		return nil, entity.ModelCatalog{}, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}

	httpClient := infrahttp.NewHTTPClient(cfg.Timeout, m.InstrumentRoundTripper)

	var base usecase.Completer
	switch cfg.Provider {
	case entity.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, httpClient)
		if err != nil {
			return nil, entity.ModelCatalog{}, err
		}
		base = client
	default:
		base = groq.NewClient(cfg.GroqAPIKey, cfg.GroqBaseURL, httpClient)
	}

	// nilの*RateLimiterをインターフェースに入れないよう明示的に分岐する
	var limiter ratelimiter.Limiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = ratelimiter.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	}
	return ratelimited.New(base, catalog.Provider, limiter, m), catalog, nil
}

// LLMConfigured reports whether the selected provider has an API key.
func LLMConfigured(cfg config.LLMConfig) bool {
	if cfg.Provider == entity.ProviderGemini {
		return cfg.GeminiAPIKey != ""
	}
	return cfg.GroqAPIKey != ""
}

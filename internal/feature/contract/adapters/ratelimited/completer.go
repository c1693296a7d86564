// Package ratelimited はCompleterにレート制限とメトリクス記録を付加するデコレーターです。
package ratelimited

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"contract_analyzer/internal/feature/contract/usecase"
	"contract_analyzer/internal/shared/ratelimiter"
)

// Observer はLLM呼び出しの結果を記録します。
type Observer interface {
	ObserveLLM(provider, model string, err error, elapsed time.Duration)
}

// Completer wraps another Completer. limiter and observer may be nil.
type Completer struct {
	next     usecase.Completer
	provider string
	limiter  ratelimiter.Limiter
	observer Observer
	now      func() time.Time
}

var _ usecase.Completer = (*Completer)(nil)

// New はCompleterの新しいインスタンスを生成します。
func New(next usecase.Completer, provider string, limiter ratelimiter.Limiter, observer Observer) *Completer {
	return &Completer{
		next:     next,
		provider: provider,
		limiter:  limiter,
		observer: observer,
		now:      time.Now,
	}
}

// Complete はレート制限の枠を待ってから呼び出しを委譲します。
func (c *Completer) Complete(ctx context.Context, req usecase.ChatRequest) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	start := c.now()
	content, err := c.next.Complete(ctx, req)
	elapsed := c.now().Sub(start)

	if c.observer != nil {
		c.observer.ObserveLLM(c.provider, req.Model, err, elapsed)
	}
	if err != nil {
		slog.Warn("llm call failed", "provider", c.provider, "model", req.Model, "elapsed", elapsed, "error", err)
		return "", err
	}
	slog.Info("llm call completed", "provider", c.provider, "model", req.Model, "elapsed", elapsed, "chars", len(content))
	return content, nil
}

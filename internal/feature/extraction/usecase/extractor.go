package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"contract_analyzer/internal/feature/extraction/domain/entity"
)

// Strategy は1つの抽出方式です。
// Extract は空でないテキストを返すか、エラーを返します。
type Strategy interface {
	Name() string
	Accepts(filename string) bool
	Extract(ctx context.Context, data []byte) (string, error)
}

// Observer は抽出結果を受け取ります（メトリクス用）。
type Observer interface {
	ObserveExtraction(method string)
}

// Extractor は戦略を順に試し、最後にフォールバックで必ずテキストを返します。
type Extractor struct {
	strategies []Strategy
	fallback   Strategy
	observer   Observer
}

// Option はExtractorの任意設定です。
type Option func(*Extractor)

// WithObserver は抽出方式の観測者を設定します。
func WithObserver(o Observer) Option {
	return func(e *Extractor) { e.observer = o }
}

// NewExtractor は順序付きの戦略リストからExtractorを生成します。
// fallback は失敗しない前提の最終段（不正バイトを置換するデコード）です。
func NewExtractor(fallback Strategy, strategies []Strategy, opts ...Option) *Extractor {
	e := &Extractor{
		strategies: strategies,
		fallback:   fallback,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Methods は有効な戦略名を試行順に返します。
func (e *Extractor) Methods() []string {
	names := make([]string, 0, len(e.strategies)+1)
	for _, s := range e.strategies {
		names = append(names, s.Name())
	}
	if e.fallback != nil {
		names = append(names, e.fallback.Name())
	}
	return names
}

// Extract はファイルからテキストを抽出します。エラーは返しません。
// 失敗した各ステップはWARNでログに残し、Attemptsに記録します。
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) entity.ExtractedText {
	result := entity.ExtractedText{Filename: filename}

	for _, s := range e.strategies {
		if !s.Accepts(filename) {
			continue
		}
		text, err := e.try(ctx, s, data)
		if err == nil {
			result.Text = text
			result.Method = s.Name()
			e.observe(result.Method)
			return result
		}
		slog.Warn("text extraction step failed, trying next",
			"filename", filename, "method", s.Name(), "error", err)
		result.Attempts = append(result.Attempts, entity.Attempt{Method: s.Name(), Err: err.Error()})
	}

	result.Method = entity.MethodNone
	if e.fallback != nil {
		text, err := e.fallback.Extract(ctx, data)
		if err != nil {
			slog.Error("fallback decode failed", "filename", filename, "error", err)
			result.Attempts = append(result.Attempts, entity.Attempt{Method: e.fallback.Name(), Err: err.Error()})
		} else {
			result.Text = text
			result.Method = e.fallback.Name()
		}
	}
	e.observe(result.Method)
	return result
}

// try runs one strategy and treats whitespace-only output as a failure.
func (e *Extractor) try(ctx context.Context, s Strategy, data []byte) (text string, err error) {
	text, err = s.Extract(ctx, data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", s.Name(), ErrNoText)
	}
	return text, nil
}

func (e *Extractor) observe(method string) {
	if e.observer != nil {
		e.observer.ObserveExtraction(method)
	}
}

// HasExtension reports whether filename ends with one of exts, case-insensitively.
func HasExtension(filename string, exts ...string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

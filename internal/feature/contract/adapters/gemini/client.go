// Package gemini はGoogle Gemini APIを使用したCompleterを提供します。
package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"contract_analyzer/internal/feature/contract/usecase"
)

// Client はGemini APIへの単発の同期呼び出しを行います。
// APIキーが未設定の場合、clientはnilのままです。
type Client struct {
	client *genai.Client
}

// ClientがCompleterを実装していることをコンパイル時に検証します。
var _ usecase.Completer = (*Client)(nil)

// Option はgenai.ClientConfigの任意設定です。
type Option func(*genai.ClientConfig)

// WithBaseURL はエンドポイントを差し替えます（テスト用）。
func WithBaseURL(baseURL string) Option {
	return func(cfg *genai.ClientConfig) { cfg.HTTPOptions.BaseURL = baseURL }
}

// NewClient はGemini APIキーでClientを生成します。
// apiKeyが空でも生成でき、呼び出し時に usecase.ErrMissingAPIKey を返します。
func NewClient(ctx context.Context, apiKey string, httpClient *http.Client, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return &Client{}, nil
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

// Complete はシステム指示とプロンプトを送信し、応答テキストを返します。
func (c *Client) Complete(ctx context.Context, req usecase.ChatRequest) (string, error) {
	if c.client == nil {
		return "", usecase.ErrMissingAPIKey
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.JSONObject {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", usecase.ErrEmptyResponse
	}
	return text, nil
}

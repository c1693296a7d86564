// Package groq はGroqのOpenAI互換チャット補完APIを使用したCompleterを提供します。
package groq

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"contract_analyzer/internal/feature/contract/usecase"
)

// DefaultBaseURL はGroqのOpenAI互換エンドポイントです。
const DefaultBaseURL = "https://api.groq.com/openai/v1/"

// Client はGroq APIへの単発の同期呼び出しを行います。
type Client struct {
	client *openai.Client
	apiKey string
}

// ClientがCompleterを実装していることをコンパイル時に検証します。
var _ usecase.Completer = (*Client)(nil)

// NewClient はClientの新しいインスタンスを生成します。
// apiKeyが空でも生成でき、呼び出し時に usecase.ErrMissingAPIKey を返します。
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &Client{client: openai.NewClient(opts...), apiKey: apiKey}
}

// Complete はシステムメッセージとユーザーメッセージを送信し、最初の選択肢の本文を返します。
func (c *Client) Complete(ctx context.Context, req usecase.ChatRequest) (string, error) {
	if c.apiKey == "" {
		return "", usecase.ErrMissingAPIKey
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.F(req.Model),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			textMessage(openai.ChatCompletionMessageParamRoleSystem, req.System),
			textMessage(openai.ChatCompletionMessageParamRoleUser, req.Prompt),
		}),
		Temperature: openai.F(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.F(int64(req.MaxTokens))
	}
	if req.JSONObject {
		params.ResponseFormat = openai.F[openai.ChatCompletionNewParamsResponseFormatUnion](shared.ResponseFormatJSONObjectParam{
			Type: openai.F(shared.ResponseFormatJSONObjectTypeJSONObject),
		})
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("groq API returned status %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("groq API request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", usecase.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// textMessage はcontentを文字列のまま送るメッセージを生成します。
// SDKのSystemMessage/UserMessageはパーツ配列になり、Groqはsystemでそれを受け付けません。
func textMessage(role openai.ChatCompletionMessageParamRole, content string) openai.ChatCompletionMessageParam {
	return openai.ChatCompletionMessageParam{
		Role:    openai.F(role),
		Content: openai.F[any](content),
	}
}

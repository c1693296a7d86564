package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"contract_analyzer/internal/feature/contract/usecase"
)

func TestClient_Complete(t *testing.T) {
	var gotPath string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"key_clauses\": []}"}]}, "finishReason": "STOP"}]}`)
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "test-key", srv.Client(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	content, err := c.Complete(context.Background(), usecase.ChatRequest{
		Model:       "gemini-2.5-flash",
		System:      "You must output ONLY valid JSON.",
		Prompt:      "Analyze this",
		Temperature: 0.2,
		MaxTokens:   1600,
		JSONObject:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"key_clauses": []}`, content)
	assert.Contains(t, gotPath, "gemini-2.5-flash:generateContent")

	body := gjson.ParseBytes(gotBody)
	assert.Equal(t, "Analyze this", body.Get("contents.0.parts.0.text").String())
	assert.Equal(t, "You must output ONLY valid JSON.", body.Get("systemInstruction.parts.0.text").String())
	assert.Equal(t, "application/json", body.Get("generationConfig.responseMimeType").String())
	assert.Equal(t, int64(1600), body.Get("generationConfig.maxOutputTokens").Int())
}

func TestClient_Complete_MissingAPIKey(t *testing.T) {
	c, err := NewClient(context.Background(), "", nil)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), usecase.ChatRequest{Model: "gemini-2.5-flash", Prompt: "p"})

	assert.ErrorIs(t, err, usecase.ErrMissingAPIKey)
}

// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contract_analyzer/internal/api"
)

// HealthInfo は /healthz に載せる静的な構成情報です。
type HealthInfo struct {
	SessionStore  string // "redis" or "memory"
	LLMProvider   string
	LLMConfigured bool // APIキーが設定されているか
	OCREnabled    bool
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを返します。
// APIキー未設定でもプロセスは生きているため200を返し、状態はボディで示します。
func Health(info HealthInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			c.JSON(http.StatusOK, api.HealthResponse{
				Status:        "ok",
				SessionStore:  info.SessionStore,
				LlmProvider:   info.LLMProvider,
				LlmConfigured: info.LLMConfigured,
				OcrEnabled:    info.OCREnabled,
			})
		}
	}
}

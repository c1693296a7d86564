// Package router wires HTTP routes and middleware.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "contract_analyzer/internal/feature/auth/transport/handler"
	contracthandler "contract_analyzer/internal/feature/contract/transport/handler"
	platformhandler "contract_analyzer/internal/platform/http/handler"
	"contract_analyzer/internal/platform/metrics"
)

// Options はルーター構築時の設定です。
type Options struct {
	// CORSAllowedOrigins が空の場合、CORSミドルウェアは追加しません。
	CORSAllowedOrigins []string
	Health             platformhandler.HealthInfo
	// AuthRequired はJWTとセッションを検証するミドルウェアです。
	AuthRequired gin.HandlerFunc
	Metrics      *metrics.Metrics
}

func NewRouter(opts Options, authHandler *authhandler.AuthHandler, contract *contracthandler.ContractHandler) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = 2 * contracthandler.MaxUploadSize

	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSAllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Authorization", "Content-Type"},
			ExposeHeaders: []string{"Content-Disposition"},
			MaxAge:        12 * time.Hour,
		}))
	}
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", opts.Metrics.Handler())
	}

	// 認証不要
	// 導通確認用
	health := platformhandler.Health(opts.Health)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	// → リクエストヘッダーに JWT が必要になり、アイドルタイムアウトも検証される
	auth := r.Group("/")
	auth.Use(opts.AuthRequired)
	{
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/v1/me", authHandler.Me)
		auth.GET("/v1/models", contract.Models)
		auth.POST("/v1/documents/extract", contract.Extract)
		auth.POST("/v1/contracts/analyze", contract.Analyze)
		auth.POST("/v1/contracts/compare", contract.Compare)
		auth.POST("/v1/contracts/compare/export", contract.Export)
	}

	return r
}

// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"contract_analyzer/internal/api"
	"contract_analyzer/internal/feature/auth/domain/entity"
	jwtmw "contract_analyzer/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はデモユーザーを認証し、成功時にトークンとセッションを返します。
	Login(ctx context.Context, username, password string) (string, *entity.Session, error)
	// Logout はセッションを削除します。
	Logout(ctx context.Context, sessionID string) error
	// IdleTimeout はセッションのアイドルタイムアウトを返します。
	IdleTimeout() time.Duration
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login はログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却
// - 認証成功時はトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, session, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid username or password"})
		return
	}
	slog.Info("user login successful", "username", session.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{
		Token:              token,
		TokenType:          "Bearer",
		IdleTimeoutSeconds: int64(h.auth.IdleTimeout().Seconds()),
	})
}

// Logout は現在のセッションを削除します。AuthRequiredの後段で使用します。
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := jwtmw.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), session.ID); err != nil {
		slog.Error("logout failed", "error", err, "username", session.Username)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	slog.Info("user logout", "username", session.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}

// Me は現在のセッション情報を返します。
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := jwtmw.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, api.MeResponse{
		Username:           session.Username,
		CreatedAt:          session.CreatedAt,
		LastActiveAt:       session.LastActiveAt,
		IdleTimeoutSeconds: int64(h.auth.IdleTimeout().Seconds()),
	})
}

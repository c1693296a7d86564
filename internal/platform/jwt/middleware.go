// Package jwtmw provides JWT issuance and the gin middleware that guards
// authenticated routes.
package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"contract_analyzer/internal/feature/auth/domain/entity"
	"contract_analyzer/internal/feature/auth/usecase"
)

const (
	// ClaimSessionID is the JWT claim holding the session ID.
	ClaimSessionID = "sid"
	// ContextSession is the gin context key for the authenticated *entity.Session.
	ContextSession = "session"
)

// SessionAuthenticator validates a session and records activity.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, sessionID string) (*entity.Session, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens,
// loads the session they reference and enforces the idle timeout.
func AuthRequired(secret string, sessions SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 2. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 3. Extract session ID
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		sid, _ := claims[ClaimSessionID].(string)
		if sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. Check the session and its idle time
		session, err := sessions.Authenticate(c.Request.Context(), sid)
		switch {
		case errors.Is(err, usecase.ErrSessionExpired):
			slog.Info("session idle timeout", "session_id", sid, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": usecase.ErrSessionExpired.Error()})
			return
		case errors.Is(err, usecase.ErrSessionNotFound):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
			return
		case err != nil:
			slog.Error("session lookup failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(ContextSession, session)
		// 5. Pass control to the next handler
		c.Next()
	}
}

// SessionFrom returns the session stored by AuthRequired.
func SessionFrom(c *gin.Context) (*entity.Session, bool) {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil, false
	}
	s, ok := v.(*entity.Session)
	return s, ok && s != nil
}

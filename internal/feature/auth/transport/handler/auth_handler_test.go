package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract_analyzer/internal/feature/auth/domain/entity"
	jwtmw "contract_analyzer/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	LoginFunc  func(ctx context.Context, username, password string) (string, *entity.Session, error)
	LogoutFunc func(ctx context.Context, sessionID string) error
}

func (m *mockAuthUsecase) Login(ctx context.Context, username, password string) (string, *entity.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return "", nil, errors.New("login failed") // Default: failure
}

func (m *mockAuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthUsecase) IdleTimeout() time.Duration { return time.Hour }

// withSession simulates AuthRequired by placing a session in the context.
func withSession(s *entity.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s != nil {
			c.Set(jwtmw.ContextSession, s)
		}
		c.Next()
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockLoginFunc  func(ctx context.Context, username, password string) (string, *entity.Session, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:        "success: demo login",
			requestBody: gin.H{"username": "demo", "password": "letmein123"},
			mockLoginFunc: func(ctx context.Context, username, password string) (string, *entity.Session, error) {
				return "dummy-jwt-token", &entity.Session{ID: "sid", Username: username}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"token": "dummy-jwt-token", "token_type": "Bearer", "idle_timeout_seconds": float64(3600)},
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"username": "demo"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: wrong credentials",
			requestBody: gin.H{"username": "demo", "password": "wrong"},
			mockLoginFunc: func(ctx context.Context, username, password string) (string, *entity.Session, error) {
				return "", nil, errors.New("invalid username or password")
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid username or password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockAuthUsecase{LoginFunc: tt.mockLoginFunc})

			router := gin.New()
			router.POST("/login", handler.Login)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		session        *entity.Session
		logoutErr      error
		expectedStatus int
	}{
		{name: "success", session: &entity.Session{ID: "sid-1", Username: "demo"}, expectedStatus: http.StatusOK},
		{name: "no session in context", expectedStatus: http.StatusUnauthorized},
		{name: "store failure", session: &entity.Session{ID: "sid-1"}, logoutErr: errors.New("redis down"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var deleted string
			uc := &mockAuthUsecase{LogoutFunc: func(ctx context.Context, sessionID string) error {
				deleted = sessionID
				return tt.logoutErr
			}}
			router := gin.New()
			router.POST("/logout", withSession(tt.session), NewAuthHandler(uc).Logout)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.session != nil {
				assert.Equal(t, tt.session.ID, deleted)
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)

	created := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	session := &entity.Session{ID: "sid-1", Username: "demo", CreatedAt: created, LastActiveAt: created.Add(5 * time.Minute)}
	router := gin.New()
	router.GET("/me", withSession(session), NewAuthHandler(&mockAuthUsecase{}).Me)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"username": "demo",
		"created_at": "2026-01-02T10:00:00Z",
		"last_active_at": "2026-01-02T10:05:00Z",
		"idle_timeout_seconds": 3600
	}`, w.Body.String())
}

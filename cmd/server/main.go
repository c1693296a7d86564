package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"contract_analyzer/internal/app/config"
	"contract_analyzer/internal/app/di"
	"contract_analyzer/internal/app/router"
	authadapters "contract_analyzer/internal/feature/auth/adapters"
	authhandler "contract_analyzer/internal/feature/auth/transport/handler"
	authusecase "contract_analyzer/internal/feature/auth/usecase"
	contracthandler "contract_analyzer/internal/feature/contract/transport/handler"
	contractusecase "contract_analyzer/internal/feature/contract/usecase"
	platformhandler "contract_analyzer/internal/platform/http/handler"
	jwtmw "contract_analyzer/internal/platform/jwt"
	"contract_analyzer/internal/platform/metrics"
	infraredis "contract_analyzer/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.Server.LogLevel),
	})))
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		tmp, err := infraredis.NewRedisClient(ctx, infraredis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password})
		if err != nil {
			slog.Warn("Redis unavailable. Sessions are kept in memory.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}
	sessionRepo, sessionStore := di.NewSessionRepository(rdb)

	// JWT_SECRETチェック（未設定なら起動ごとのランダム値。再起動で全トークンが無効になる）
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		slog.Warn("JWT_SECRET is not set. Using a random secret; tokens will not survive a restart.")
		secret = randomSecret()
	}

	// Repository
	demoUsers := config.ParseDemoUsers(cfg.Auth.DemoUsers)
	userRepo, err := authadapters.NewUserMemory(demoUsers, bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to prepare demo users", "error", err)
		os.Exit(1)
	}
	slog.Info("demo users loaded", "usernames", userRepo.Usernames())

	completer, catalog, err := di.NewCompleter(ctx, cfg.LLM, m)
	if err != nil {
		slog.Error("failed to create LLM client", "error", err)
		os.Exit(1)
	}
	if !di.LLMConfigured(cfg.LLM) {
		slog.Warn("LLM API key is not set; analyze and compare will return 503", "provider", catalog.Provider)
	}
	extractor, closeExtractor := di.NewExtractor(ctx, cfg.Vision, m)
	defer closeExtractor()

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtmw.NewGenerator(secret, cfg.Auth.TokenTTL), cfg.Auth.IdleTimeout)
	contractUC := contractusecase.NewContractUsecase(completer, catalog)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	contractH := contracthandler.NewContractHandler(contractUC, extractor)

	// ルータ生成
	r := router.NewRouter(router.Options{
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Health: platformhandler.HealthInfo{
			SessionStore:  sessionStore,
			LLMProvider:   catalog.Provider,
			LLMConfigured: di.LLMConfigured(cfg.LLM),
			OCREnabled:    cfg.Vision.Enabled,
		},
		AuthRequired: jwtmw.AuthRequired(secret, authUC),
		Metrics:      m,
	}, authH, contractH)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr, "provider", catalog.Provider,
		"session_store", sessionStore, "idle_timeout", cfg.Auth.IdleTimeout)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		slog.Error("failed to generate JWT secret", "error", err)
		os.Exit(1)
	}
	return hex.EncodeToString(b)
}

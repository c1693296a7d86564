// Package redis はセッションストア用のRedisクライアントを生成します。
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options は接続設定です。
type Options struct {
	Addr     string
	Password string
}

// NewRedisClient はクライアントを作成し、Pingで疎通を確認します。
// 失敗した場合はクライアントを閉じてエラーを返します。呼び出し側はインメモリにフォールバックできます。
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       0,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		slog.Error("Redis connection failed", "address", opts.Addr, "error", err)
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	slog.Info("Redis connection successful", "address", opts.Addr)
	return rdb, nil
}

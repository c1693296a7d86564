// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"contract_analyzer/internal/feature/auth/usecase"
	"contract_analyzer/internal/platform/session"
)

// Session store names reported by /healthz.
const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-process map.
func NewSessionRepository(rdb *redis.Client) (usecase.SessionRepository, string) {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session"), SessionStoreRedis
	}
	return session.NewSessionMemory(), SessionStoreMemory
}

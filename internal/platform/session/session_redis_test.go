package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"contract_analyzer/internal/feature/auth/domain/entity"
	"contract_analyzer/internal/feature/auth/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// createTestSession creates a session entity for testing.
func createTestSession(id string) *entity.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &entity.Session{
		ID:           id,
		Username:     "demo",
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

func TestNewSessionRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "session", repo.prefix)
}

func TestSessionRedis_Save(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ttl     time.Duration
		wantErr bool
	}{
		{name: "success: save session", ttl: time.Hour},
		{name: "failure: non-positive ttl", ttl: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, mr := setupTestRedis(t)
			repo := NewSessionRedis(client, "session")
			s := createTestSession("session-001")

			err := repo.Save(context.Background(), s, tt.ttl)

			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, mr.Exists(repo.sessionKey(s.ID)))
				return
			}
			require.NoError(t, err)
			assert.True(t, mr.Exists(repo.sessionKey(s.ID)))
			assert.Equal(t, tt.ttl, mr.TTL(repo.sessionKey(s.ID)))
		})
	}
}

func TestSessionRedis_FindByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		sessionID   string
		setupFunc   func(t *testing.T, repo *SessionRedis)
		wantErr     bool
		expectedErr error
	}{
		{
			name:      "success: find session",
			sessionID: "find-session-id",
			setupFunc: func(t *testing.T, repo *SessionRedis) {
				err := repo.Save(context.Background(), createTestSession("find-session-id"), time.Hour)
				require.NoError(t, err)
			},
		},
		{
			name:        "failure: session not found",
			sessionID:   "nonexistent-id",
			wantErr:     true,
			expectedErr: usecase.ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, _ := setupTestRedis(t)
			repo := NewSessionRedis(client, "session")

			if tt.setupFunc != nil {
				tt.setupFunc(t, repo)
			}

			found, err := repo.FindByID(context.Background(), tt.sessionID)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, found)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
			} else {
				assert.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, tt.sessionID, found.ID)
				assert.Equal(t, "demo", found.Username)
			}
		})
	}
}

func TestSessionRedis_TTLExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	require.NoError(t, repo.Save(context.Background(), createTestSession("ttl-id"), time.Minute))

	mr.FastForward(time.Minute + time.Second)

	_, err := repo.FindByID(context.Background(), "ttl-id")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_SaveRefreshesTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	s := createTestSession("touch-id")
	require.NoError(t, repo.Save(context.Background(), s, time.Minute))

	mr.FastForward(50 * time.Second)
	s.Touch(s.LastActiveAt.Add(50 * time.Second))
	require.NoError(t, repo.Save(context.Background(), s, time.Minute))
	mr.FastForward(50 * time.Second)

	found, err := repo.FindByID(context.Background(), "touch-id")
	require.NoError(t, err)
	assert.True(t, found.LastActiveAt.Equal(s.LastActiveAt))
}

func TestSessionRedis_Delete(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	require.NoError(t, repo.Save(context.Background(), createTestSession("delete-id"), time.Hour))

	require.NoError(t, repo.Delete(context.Background(), "delete-id"))
	assert.False(t, mr.Exists(repo.sessionKey("delete-id")))

	// 存在しないキーの削除もエラーにしない
	assert.NoError(t, repo.Delete(context.Background(), "delete-id"))
}

func TestSessionRedis_FindByID_CorruptData(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	require.NoError(t, mr.Set(repo.sessionKey("corrupt"), "{not json"))

	_, err := repo.FindByID(context.Background(), "corrupt")

	assert.ErrorContains(t, err, "failed to unmarshal session")
}

func TestSessionRedis_RedisErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewSessionRedis(db, "session")
	redisErr := errors.New("connection refused")

	mock.ExpectGet("session:sid").SetErr(redisErr)
	_, err := repo.FindByID(context.Background(), "sid")
	assert.ErrorIs(t, err, redisErr)

	mock.ExpectDel("session:sid").SetErr(redisErr)
	err = repo.Delete(context.Background(), "sid")
	assert.ErrorIs(t, err, redisErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_KeyGeneration(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "test-prefix")

	assert.Equal(t, "test-prefix:session-id", repo.sessionKey("session-id"))
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"contract_analyzer/internal/feature/auth/domain/entity"
)

// UserRepository はデモユーザーの参照レイヤーを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindByUsername はユーザー名に一致するユーザーを取得します。
	// 存在しない場合は ErrUserNotFound を返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// SessionRepository はセッションの保存先を抽象化します。
type SessionRepository interface {
	// Save はセッションを作成または上書きします。ttl経過後にストアから消えてもよい。
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error

	// FindByID はIDでセッションを取得します。存在しない場合は ErrSessionNotFound を返します。
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Delete はセッションを削除します。存在しない場合もエラーにしません。
	Delete(ctx context.Context, id string) error
}

// SessionRetention はストアのTTLをアイドルタイムアウトより長くする猶予です。
// アイドル期限切れの判定はストアのTTLではなくAuthenticateが行います。
const SessionRetention = time.Minute

// TokenGenerator はセッションIDを運ぶ署名済みトークンを生成します。
type TokenGenerator interface {
	GenerateToken(sessionID, username string) (string, error)
}

// authUsecase はデモログインとセッションのライフサイクルを実装します。
type authUsecase struct {
	users       UserRepository
	sessions    SessionRepository
	tokens      TokenGenerator
	idleTimeout time.Duration
	now         func() time.Time
}

// Option はauthUsecaseの任意設定です。
type Option func(*authUsecase)

// WithClock は現在時刻の取得関数を差し替えます（テスト用）。
func WithClock(now func() time.Time) Option {
	return func(u *authUsecase) { u.now = now }
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator, idleTimeout time.Duration, opts ...Option) *authUsecase {
	u := &authUsecase{
		users:       users,
		sessions:    sessions,
		tokens:      tokens,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// IdleTimeout は設定されたアイドルタイムアウトを返します。
func (u *authUsecase) IdleTimeout() time.Duration {
	return u.idleTimeout
}

// storeTTL はセッション保存時のTTLです。アイドル判定はAuthenticateが行います。
func (u *authUsecase) storeTTL() time.Duration {
	return u.idleTimeout + SessionRetention
}

// Login はユーザーを認証し、セッションを作成してトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, *entity.Session, error) {
	user, err := u.users.FindByUsername(ctx, username)

	// ユーザーが存在しない場合のダミーハッシュ
	passwordHash := []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
	if err == nil {
		passwordHash = user.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword(passwordHash, []byte(password))

	if err != nil || compareErr != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := u.now()
	session := &entity.Session{
		ID:           uuid.NewString(),
		Username:     user.Username,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	if err := u.sessions.Save(ctx, session, u.storeTTL()); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := u.tokens.GenerateToken(session.ID, session.Username)
	if err != nil {
		_ = u.sessions.Delete(ctx, session.ID)
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, session, nil
}

// Authenticate はリクエストごとにセッションを検証し、最終アクティビティを更新します。
// 最終アクティビティからの経過時間がアイドルタイムアウトを超えている場合、
// セッションを削除して ErrSessionExpired を返します。
func (u *authUsecase) Authenticate(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if session.IsIdleExpired(now, u.idleTimeout) {
		if err := u.sessions.Delete(ctx, session.ID); err != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return nil, ErrSessionExpired
	}

	session.Touch(now)
	if err := u.sessions.Save(ctx, session, u.storeTTL()); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return session, nil
}

// Logout はセッションを削除します。
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if err := u.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

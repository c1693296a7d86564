// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"contract_analyzer/internal/feature/auth/domain/entity"
	"contract_analyzer/internal/feature/auth/usecase"
)

// userMemory はUserRepositoryインターフェースのインメモリ実装です。
// デモユーザーは起動時にbcryptでハッシュ化され、平文パスワードは保持しません。
type userMemory struct {
	users map[string]*entity.User
}

// userMemoryがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userMemory)(nil)

// NewUserMemory は username→password のマップからuserMemoryを生成します。
// cost には bcrypt.DefaultCost を渡します（テストでは bcrypt.MinCost）。
func NewUserMemory(credentials map[string]string, cost int) (*userMemory, error) {
	users := make(map[string]*entity.User, len(credentials))
	for username, password := range credentials {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %q: %w", username, err)
		}
		users[username] = &entity.User{Username: username, PasswordHash: hash}
	}
	return &userMemory{users: users}, nil
}

// FindByUsername はユーザー名でユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userMemory) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, usecase.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// Usernames は登録済みユーザー名をソートして返します。
func (r *userMemory) Usernames() []string {
	names := make([]string, 0, len(r.users))
	for name := range r.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

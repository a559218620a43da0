// Package adapters provides implementations of the auth usecase interfaces.
package adapters

import (
	"fmt"
	"strings"

	"portfolio_backend/internal/feature/auth/domain/entity"
	"portfolio_backend/internal/feature/auth/usecase"
)

// userEnv implements usecase.UserProvider backed by a fixed set of accounts
// loaded from configuration. The dashboard has no signup flow: the two
// accounts (admin and viewer) are provisioned through environment variables.
type userEnv struct {
	users map[string]*entity.User
}

// Compile-time check that userEnv satisfies the usecase interface.
var _ usecase.UserProvider = (*userEnv)(nil)

// Credential holds one configured account.
type Credential struct {
	Username     string
	PasswordHash string
	Role         string
}

// NewUserEnv creates a UserProvider from the given credentials.
// Accounts with an empty username or password hash are skipped so a
// deployment may configure only one of the two roles.
func NewUserEnv(credentials ...Credential) (*userEnv, error) {
	users := make(map[string]*entity.User, len(credentials))
	for _, c := range credentials {
		if c.Username == "" || c.PasswordHash == "" {
			continue
		}
		if !strings.HasPrefix(c.PasswordHash, "$2") {
			return nil, fmt.Errorf("password hash for %q is not a bcrypt hash", c.Username)
		}
		if _, exists := users[c.Username]; exists {
			return nil, fmt.Errorf("duplicate username %q", c.Username)
		}
		users[c.Username] = &entity.User{
			Username:     c.Username,
			PasswordHash: c.PasswordHash,
			Role:         c.Role,
		}
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no dashboard users configured")
	}
	return &userEnv{users: users}, nil
}

// FindByUsername retrieves the configured user matching the given username.
func (p *userEnv) FindByUsername(username string) (*entity.User, error) {
	user, ok := p.users[username]
	if !ok {
		return nil, usecase.ErrUserNotFound
	}
	return user, nil
}

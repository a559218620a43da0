package usecase

import (
	"context"
	"fmt"
	"time"

	"portfolio_backend/internal/feature/auth/domain/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// maxSessionsPerUser limits the number of concurrent refresh sessions a
	// single user may hold. The oldest session is evicted when exceeded.
	maxSessionsPerUser = 5

	// refreshTokenTTL is the lifetime of a refresh session.
	refreshTokenTTL = 7 * 24 * time.Hour
)

// UserProvider abstracts the source of dashboard user accounts.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type UserProvider interface {
	// FindByUsername retrieves the user matching the given username.
	// It returns ErrUserNotFound when no such user is configured.
	FindByUsername(username string) (*entity.User, error)
}

// JWTGenerator defines the interface for access token generation.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (platform/jwt).
type JWTGenerator interface {
	// GenerateToken creates a signed JWT access token for the given user.
	GenerateToken(username, role string) (string, error)
	// Expiration returns the access token lifetime in seconds.
	Expiration() int64
}

// TokenPair bundles the credentials returned by Login and Refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users        UserProvider
	sessions     SessionRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserProvider, sessions SessionRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
	}
}

// Login authenticates a user and returns an access/refresh token pair.
// To mitigate timing attacks, the bcrypt comparison runs even when the
// username does not match any configured user.
func (u *authUsecase) Login(ctx context.Context, username, password, userAgent, ipAddress string) (*TokenPair, error) {
	user, err := u.users.FindByUsername(username)

	// Dummy hash guarantees bcrypt.CompareHashAndPassword is always called.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// Return a generic error whether the user is missing or the password is wrong.
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user.Username, user.Role, userAgent, ipAddress)
}

// Refresh validates a refresh token and rotates it, returning a fresh
// access/refresh token pair. The presented session is revoked so a stolen
// refresh token can be used at most once.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	return u.issueTokens(ctx, session.Username, session.Role, userAgent, ipAddress)
}

// Logout revokes the session identified by the given refresh token.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrInvalidRefreshToken
	}
	return u.sessions.Revoke(ctx, refreshToken)
}

// LogoutAll revokes every session held by the given user.
func (u *authUsecase) LogoutAll(ctx context.Context, username string) error {
	return u.sessions.RevokeAllByUsername(ctx, username)
}

// issueTokens creates a new refresh session and signs an access token.
func (u *authUsecase) issueTokens(ctx context.Context, username, role, userAgent, ipAddress string) (*TokenPair, error) {
	// Evict the oldest session when the per-user limit is reached.
	count, err := u.sessions.CountByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	if count >= maxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUsername(ctx, username); err != nil {
			return nil, fmt.Errorf("failed to evict oldest session: %w", err)
		}
	}

	now := time.Now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		Username:  username,
		Role:      role,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := u.jwtGenerator.GenerateToken(username, role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: session.ID,
		ExpiresIn:    u.jwtGenerator.Expiration(),
	}, nil
}

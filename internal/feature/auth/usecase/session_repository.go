package usecase

import (
	"context"

	"portfolio_backend/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for session entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (platform/session).
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID (refresh token value).
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// FindByUsername retrieves all valid sessions for a user.
	FindByUsername(ctx context.Context, username string) ([]*entity.Session, error)

	// Revoke marks a session as revoked by setting RevokedAt.
	Revoke(ctx context.Context, id string) error

	// RevokeAllByUsername revokes all sessions for a user.
	RevokeAllByUsername(ctx context.Context, username string) error

	// CountByUsername returns the number of active sessions for a user.
	CountByUsername(ctx context.Context, username string) (int64, error)

	// DeleteOldestByUsername deletes the oldest session for a user.
	DeleteOldestByUsername(ctx context.Context, username string) error
}

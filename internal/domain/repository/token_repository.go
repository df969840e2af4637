// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrTokenNotFound is returned when a refresh or reset token is absent from the
// store. An expired token is indistinguishable from one that never existed.
var ErrTokenNotFound = errors.New("token not found")

// TokenRepository defines the operations of the token store. Every record
// carries a TTL enforced by the store itself; callers never sweep for expiry.
// Any other failure mode is an infrastructure error and propagates as such.
type TokenRepository interface {
	// StoreRefreshToken persists a refresh token for the given principal with the given TTL.
	StoreRefreshToken(ctx context.Context, token string, principalID uuid.UUID, ttl time.Duration) error

	// GetRefreshToken resolves a refresh token to its principal ID.
	// Missing or expired tokens return ErrTokenNotFound.
	GetRefreshToken(ctx context.Context, token string) (uuid.UUID, error)

	// DeleteRefreshToken removes a refresh token. Deleting an absent token is not an error.
	DeleteRefreshToken(ctx context.Context, token string) error

	// StoreResetToken persists a password-reset token for the given principal with the given TTL.
	StoreResetToken(ctx context.Context, token string, principalID uuid.UUID, ttl time.Duration) error

	// GetResetToken resolves a reset token to its principal ID.
	// Missing or expired tokens return ErrTokenNotFound.
	GetResetToken(ctx context.Context, token string) (uuid.UUID, error)

	// DeleteResetToken removes a reset token. Deleting an absent token is not an error.
	DeleteResetToken(ctx context.Context, token string) error
}

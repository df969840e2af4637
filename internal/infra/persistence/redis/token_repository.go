package redis

import (
	"context"
	"time"

	"passport/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	refreshTokenPrefix = "refresh_token:"
	resetTokenPrefix   = "reset_token:"
)

// tokenRepository implements the repository.TokenRepository interface.
// Keys map an opaque token to the principal ID it belongs to; the TTL is set
// at write time and Redis evicts the key on expiry.
type tokenRepository struct {
	client *redis.Client
}

// NewTokenRepository is the constructor for tokenRepository.
func NewTokenRepository(client *redis.Client) repository.TokenRepository {
	return &tokenRepository{client: client}
}

// StoreRefreshToken persists a refresh token with the given TTL.
func (repo *tokenRepository) StoreRefreshToken(ctx context.Context, token string, principalID uuid.UUID, ttl time.Duration) error {
	return repo.store(ctx, refreshTokenPrefix+token, principalID, ttl)
}

// GetRefreshToken resolves a refresh token to its principal ID.
func (repo *tokenRepository) GetRefreshToken(ctx context.Context, token string) (uuid.UUID, error) {
	return repo.get(ctx, refreshTokenPrefix+token)
}

// DeleteRefreshToken removes a refresh token. Absent keys are not an error.
func (repo *tokenRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	return repo.delete(ctx, refreshTokenPrefix+token)
}

// StoreResetToken persists a password-reset token with the given TTL.
func (repo *tokenRepository) StoreResetToken(ctx context.Context, token string, principalID uuid.UUID, ttl time.Duration) error {
	return repo.store(ctx, resetTokenPrefix+token, principalID, ttl)
}

// GetResetToken resolves a reset token to its principal ID.
func (repo *tokenRepository) GetResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	return repo.get(ctx, resetTokenPrefix+token)
}

// DeleteResetToken removes a reset token. Absent keys are not an error.
func (repo *tokenRepository) DeleteResetToken(ctx context.Context, token string) error {
	return repo.delete(ctx, resetTokenPrefix+token)
}

func (repo *tokenRepository) store(ctx context.Context, key string, principalID uuid.UUID, ttl time.Duration) error {
	if err := repo.client.Set(ctx, key, principalID.String(), ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to store token")
	}

	return nil
}

func (repo *tokenRepository) get(ctx context.Context, key string) (uuid.UUID, error) {
	value, err := repo.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, repository.ErrTokenNotFound
		}

		return uuid.Nil, errors.Wrap(err, "failed to look up token")
	}

	principalID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "token store holds a malformed principal id")
	}

	return principalID, nil
}

func (repo *tokenRepository) delete(ctx context.Context, key string) error {
	if err := repo.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(err, "failed to delete token")
	}

	return nil
}

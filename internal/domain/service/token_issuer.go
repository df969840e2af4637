package service

import (
	"time"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// AccessClaims is the verified content of an access token: who the caller is
// and what role they held when the token was minted.
type AccessClaims struct {
	PrincipalID uuid.UUID
	Role        entity.Role
}

// TokenIssuer defines the interface for minting and verifying tokens.
// Access tokens are signed and self-contained; refresh and reset tokens are
// opaque random strings whose only meaning is as token-store keys.
type TokenIssuer interface {
	// IssueAccessToken builds and signs a short-lived access token for the principal.
	IssueAccessToken(principalID uuid.UUID, role entity.Role) (string, error)

	// ParseAccessToken verifies a signed access token and returns its claims.
	ParseAccessToken(token string) (*AccessClaims, error)

	// NewOpaqueToken generates a cryptographically random token string.
	// It is not derived from any principal data and is never parsed for content.
	NewOpaqueToken() (string, error)

	// RefreshTokenTTL returns the configured lifetime for refresh tokens.
	RefreshTokenTTL() time.Duration

	// ResetTokenTTL returns the configured lifetime for password-reset tokens.
	ResetTokenTTL() time.Duration
}

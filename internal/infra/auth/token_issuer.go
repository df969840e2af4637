// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	"passport/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// opaqueTokenBytes is the entropy of refresh and reset tokens before encoding.
const opaqueTokenBytes = 32

// jwtIssuer is a concrete implementation of the TokenIssuer interface using the
// JWT standard for access tokens and crypto/rand strings for opaque tokens.
type jwtIssuer struct {
	signingSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	resetTTL      time.Duration
}

// NewJWTIssuer is the constructor for jwtIssuer.
// It takes configuration values to create a new token issuer instance.
func NewJWTIssuer(cfg *config.Config) (service.TokenIssuer, error) {
	if cfg.Auth == nil || cfg.Auth.SigningSecret == "" {
		return nil, errors.New("signing secret must be provided")
	}

	return &jwtIssuer{
		signingSecret: []byte(cfg.Auth.SigningSecret),
		accessTTL:     cfg.Auth.AccessTokenTTL,
		refreshTTL:    cfg.Auth.RefreshTokenTTL,
		resetTTL:      cfg.Auth.ResetTokenTTL,
	}, nil
}

// IssueAccessToken builds a claim set for the principal and signs it with the
// service-wide secret. Expiry is the only time-dependent input.
func (s *jwtIssuer) IssueAccessToken(principalID uuid.UUID, role entity.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  principalID.String(),
		"role": role.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.signingSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// ParseAccessToken verifies the signature and expiry of an access token and
// extracts its claims.
func (s *jwtIssuer) ParseAccessToken(tokenString string) (*service.AccessClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.signingSecret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse access token")
	}
	if !token.Valid {
		return nil, errors.New("access token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected access token claims type")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, errors.Wrap(err, "access token missing subject")
	}
	principalID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.Wrap(err, "invalid principal id in access token")
	}

	roleStr, _ := claims["role"].(string)
	role := entity.Role(roleStr)
	if !role.IsValid() {
		return nil, errors.Errorf("invalid role in access token: %q", roleStr)
	}

	return &service.AccessClaims{
		PrincipalID: principalID,
		Role:        role,
	}, nil
}

// NewOpaqueToken generates a cryptographically random token string. The value
// is never derived from principal data and is used only as a store lookup key.
func (s *jwtIssuer) NewOpaqueToken() (string, error) {
	buf := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// RefreshTokenTTL returns the configured lifetime for refresh tokens.
func (s *jwtIssuer) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

// ResetTokenTTL returns the configured lifetime for reset tokens.
func (s *jwtIssuer) ResetTokenTTL() time.Duration {
	return s.resetTTL
}

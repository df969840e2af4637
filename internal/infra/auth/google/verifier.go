// Package google verifies Google ID tokens as federated identity assertions.
package google

import (
	"context"
	"log/slog"
	"time"

	"passport/config"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	issuerHTTPS = "https://accounts.google.com"
	issuerBare  = "accounts.google.com"

	jwksRefreshInterval = time.Hour
	jwksRefreshTimeout  = 10 * time.Second
)

// idTokenClaims is the claim set of a Google ID token this service cares about.
type idTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

// Verifier is a concrete implementation of the FederatedVerifier interface.
// Signatures are checked against the provider's published JWKS, which keyfunc
// refreshes in the background so key rotation needs no restart.
type Verifier struct {
	clientID string
	keyFunc  jwt.Keyfunc
	logger   *slog.Logger
}

// NewVerifier fetches the provider's JWKS and returns a ready verifier.
func NewVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.FederatedVerifier, error) {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return nil, errors.New("google client id must be provided")
	}

	jwks, err := keyfunc.Get(cfg.GoogleOAuth.CertsURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   jwksRefreshInterval,
		RefreshTimeout:    jwksRefreshTimeout,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Warn("Failed to refresh provider JWKS", slog.Any("error", err))
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch provider JWKS")
	}

	return newVerifier(cfg.GoogleOAuth.ClientID, jwks.Keyfunc, logger), nil
}

func newVerifier(clientID string, keyFunc jwt.Keyfunc, logger *slog.Logger) *Verifier {
	return &Verifier{
		clientID: clientID,
		keyFunc:  keyFunc,
		logger:   logger,
	}
}

// Verify validates an ID token's signature, issuer, audience, and expiry.
// Any mismatch is reported as an invalid assertion; the caller never learns
// which check failed.
func (v *Verifier) Verify(ctx context.Context, assertion string) (*service.FederatedIdentity, error) {
	claims := new(idTokenClaims)

	token, err := jwt.ParseWithClaims(assertion, claims, v.keyFunc,
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
		jwt.WithExpirationRequired(),
		jwt.WithAudience(v.clientID),
	)
	if err != nil {
		v.logger.Warn("ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInvalidAssertion, "id token validation failed")
	}
	if !token.Valid {
		return nil, errors.Wrap(domainerrors.ErrInvalidAssertion, "id token is not valid")
	}

	if claims.Issuer != issuerHTTPS && claims.Issuer != issuerBare {
		v.logger.Warn("ID token issuer mismatch", slog.String("issuer", claims.Issuer))

		return nil, errors.Wrap(domainerrors.ErrInvalidAssertion, "unexpected issuer")
	}

	if claims.Subject == "" || claims.Email == "" {
		return nil, errors.Wrap(domainerrors.ErrInvalidAssertion, "id token missing subject or email")
	}

	if !claims.EmailVerified {
		return nil, errors.Wrap(domainerrors.ErrInvalidAssertion, "email not verified by provider")
	}

	return &service.FederatedIdentity{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
	}, nil
}

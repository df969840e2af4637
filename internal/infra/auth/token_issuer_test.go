package auth

import (
	"testing"
	"time"

	"passport/config"
	"passport/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuerTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			SigningSecret:   "test_signing_secret_at_least_32_bytes_long",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			ResetTokenTTL:   time.Hour,
		},
	}

	return cfg
}

func TestJWTIssuer_IssueAndParseAccessToken(t *testing.T) {
	issuer, err := NewJWTIssuer(newIssuerTestConfig())
	require.NoError(t, err)

	principalID := uuid.New()

	signed, err := issuer.IssueAccessToken(principalID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)

	claims, err := issuer.ParseAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, principalID, claims.PrincipalID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestJWTIssuer_RejectsForeignSignature(t *testing.T) {
	issuer, err := NewJWTIssuer(newIssuerTestConfig())
	require.NoError(t, err)

	otherCfg := newIssuerTestConfig()
	otherCfg.Auth.SigningSecret = "another_signing_secret_also_32_bytes_xx"
	other, err := NewJWTIssuer(otherCfg)
	require.NoError(t, err)

	signed, err := other.IssueAccessToken(uuid.New(), entity.RoleUser)
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken(signed)
	assert.Error(t, err)
}

func TestJWTIssuer_RejectsExpiredToken(t *testing.T) {
	cfg := newIssuerTestConfig()
	cfg.Auth.AccessTokenTTL = -time.Minute
	issuer, err := NewJWTIssuer(cfg)
	require.NoError(t, err)

	signed, err := issuer.IssueAccessToken(uuid.New(), entity.RoleUser)
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken(signed)
	assert.Error(t, err)
}

func TestJWTIssuer_RejectsGarbage(t *testing.T) {
	issuer, err := NewJWTIssuer(newIssuerTestConfig())
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTIssuer_NewOpaqueToken(t *testing.T) {
	issuer, err := NewJWTIssuer(newIssuerTestConfig())
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for range 100 {
		token, err := issuer.NewOpaqueToken()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(token), 40)

		_, dup := seen[token]
		assert.False(t, dup, "opaque tokens must not repeat")
		seen[token] = struct{}{}
	}
}

func TestJWTIssuer_TTLs(t *testing.T) {
	issuer, err := NewJWTIssuer(newIssuerTestConfig())
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, issuer.RefreshTokenTTL())
	assert.Equal(t, time.Hour, issuer.ResetTokenTTL())
	assert.Less(t, issuer.ResetTokenTTL(), issuer.RefreshTokenTTL())
}

func TestNewJWTIssuer_RequiresSecret(t *testing.T) {
	_, err := NewJWTIssuer(&config.Config{Auth: &config.AuthConfig{}})
	assert.Error(t, err)
}

package auth

import (
	"testing"

	"passport/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasherTestConfig(cost int) *config.Config {
	return &config.Config{Auth: &config.AuthConfig{BcryptCost: cost}}
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(newHasherTestConfig(bcrypt.MinCost))

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, hasher.Check("password123", hash))
	assert.False(t, hasher.Check("password124", hash))
	assert.False(t, hasher.Check("password123", "not-a-bcrypt-hash"))
}

func TestBcryptHasher_SaltsPerHash(t *testing.T) {
	hasher := NewBcryptHasher(newHasherTestConfig(bcrypt.MinCost))

	first, err := hasher.Hash("password123")
	require.NoError(t, err)
	second, err := hasher.Hash("password123")
	require.NoError(t, err)

	// Same input, fresh salts.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("password123", first))
	assert.True(t, hasher.Check("password123", second))
}

func TestBcryptHasher_DefaultsCostWhenUnset(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	"passport/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIssuer struct{}

func (stubIssuer) IssueAccessToken(uuid.UUID, entity.Role) (string, error) {
	return "service-bearer", nil
}

func (stubIssuer) ParseAccessToken(string) (*service.AccessClaims, error) {
	return nil, nil
}

func (stubIssuer) NewOpaqueToken() (string, error) { return "", nil }

func (stubIssuer) RefreshTokenTTL() time.Duration { return time.Hour }

func (stubIssuer) ResetTokenTTL() time.Duration { return time.Hour }

func newTestClient(t *testing.T, handler http.Handler) service.ProfileClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		ProfileService: &config.ProfileServiceConfig{
			BaseURL: server.URL,
			Timeout: time.Second,
		},
	}

	client, err := NewClient(cfg, stubIssuer{})
	require.NoError(t, err)

	return client
}

func writeProfile(w http.ResponseWriter, status int, profile profileResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": profile})
}

func TestCreateProfile(t *testing.T) {
	principalID := uuid.New()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/users", r.URL.Path)
		assert.Equal(t, "Bearer service-bearer", r.Header.Get("Authorization"))

		var req createProfileRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, principalID.String(), req.ID)
		assert.Equal(t, "Ada", req.Name)
		assert.Equal(t, "user", req.Role)

		writeProfile(w, http.StatusCreated, profileResponse{
			ID:   req.ID,
			Name: req.Name,
			Role: req.Role,
		})
	}))

	profile, err := client.CreateProfile(context.Background(), principalID, "Ada", entity.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, principalID, profile.ID)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, entity.RoleUser, profile.Role)
}

func TestGetProfile(t *testing.T) {
	principalID := uuid.New()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, principalID.String()))

		writeProfile(w, http.StatusOK, profileResponse{
			ID:   principalID.String(),
			Name: "Ada",
			Role: "admin",
		})
	}))

	profile, err := client.GetProfile(context.Background(), principalID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, profile.Role)
}

func TestGetProfileNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}

func TestGetProfileServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GetProfile(context.Background(), uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrProfileNotFound)
}

// Package profile contains the HTTP client the auth service uses to talk to
// the profile service's internal surface.
package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	"passport/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// serviceSubject is the stable principal ID this service presents when calling
// the profile service. Derived from a fixed name so both deployments agree.
var serviceSubject = uuid.NewSHA1(uuid.NameSpaceOID, []byte("passport/authserver"))

type createProfileRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Client implements the service.ProfileClient interface over the profile
// service's internal HTTP API. Requests carry a service-role bearer token
// minted by the shared issuer, so the profile service can verify the caller
// with the same key it verifies end users with.
type Client struct {
	baseURL    string
	httpClient *http.Client
	issuer     service.TokenIssuer
}

// NewClient is the constructor for Client. It returns the client as a
// service.ProfileClient interface, adhering to dependency inversion.
func NewClient(cfg *config.Config, issuer service.TokenIssuer) (service.ProfileClient, error) {
	if cfg.ProfileService == nil || cfg.ProfileService.BaseURL == "" {
		return nil, errors.New("profile service base URL must be provided")
	}

	return &Client{
		baseURL:    cfg.ProfileService.BaseURL,
		httpClient: &http.Client{Timeout: cfg.ProfileService.Timeout},
		issuer:     issuer,
	}, nil
}

// CreateProfile asks the profile service to create a profile for a freshly
// created identity.
func (c *Client) CreateProfile(ctx context.Context, principalID uuid.UUID, name string, role entity.Role) (*entity.Profile, error) {
	body, err := json.Marshal(createProfileRequest{
		ID:   principalID.String(),
		Name: name,
		Role: role.String(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode profile request")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/internal/users", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, http.StatusCreated)
}

// GetProfile fetches the profile for a principal. A 404 from the collaborator
// maps to ErrProfileNotFound; everything else non-2xx is an infrastructure
// failure.
func (c *Client) GetProfile(ctx context.Context, principalID uuid.UUID) (*entity.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/internal/users/"+principalID.String(), nil)
	if err != nil {
		return nil, err
	}

	return c.do(req, http.StatusOK)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build profile request")
	}

	bearer, err := c.issuer.IssueAccessToken(serviceSubject, entity.RoleService)
	if err != nil {
		return nil, errors.Wrap(err, "failed to mint service token")
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	return req, nil
}

func (c *Client) do(req *http.Request, wantStatus int) (*entity.Profile, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "profile service request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, service.ErrProfileNotFound
	}
	if resp.StatusCode != wantStatus {
		return nil, errors.Errorf("profile service returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Data profileResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.Wrap(err, "failed to decode profile response")
	}

	id, err := uuid.Parse(envelope.Data.ID)
	if err != nil {
		return nil, errors.Wrap(err, "profile response holds a malformed principal id")
	}

	return &entity.Profile{
		ID:        id,
		Name:      envelope.Data.Name,
		Role:      entity.Role(envelope.Data.Role),
		CreatedAt: envelope.Data.CreatedAt,
		UpdatedAt: envelope.Data.UpdatedAt,
	}, nil
}

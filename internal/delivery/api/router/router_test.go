package router

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"passport/internal/delivery/api/router/handler"
	"passport/internal/delivery/middleware"
	"passport/internal/delivery/validator"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubIssuer resolves fixed bearer strings to claims, so tests control the
// caller's role without signing real tokens.
type stubIssuer struct {
	principals map[string]*service.AccessClaims
}

func (s *stubIssuer) IssueAccessToken(uuid.UUID, entity.Role) (string, error) { return "", nil }

func (s *stubIssuer) ParseAccessToken(token string) (*service.AccessClaims, error) {
	if claims, ok := s.principals[token]; ok {
		return claims, nil
	}

	return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown token")
}

func (s *stubIssuer) NewOpaqueToken() (string, error) { return "", nil }

func (s *stubIssuer) RefreshTokenTTL() time.Duration { return time.Hour }

func (s *stubIssuer) ResetTokenTTL() time.Duration { return time.Hour }

type stubProfileUsecase struct {
	profiles map[uuid.UUID]*entity.Profile
}

func (s *stubProfileUsecase) CreateProfile(_ context.Context, input *usecase.CreateProfileInput) (*usecase.ProfileOutput, error) {
	profile := &entity.Profile{ID: input.ID, Name: input.Name, Role: input.Role}
	s.profiles[input.ID] = profile

	return &usecase.ProfileOutput{Profile: profile}, nil
}

func (s *stubProfileUsecase) GetProfile(_ context.Context, id uuid.UUID) (*usecase.ProfileOutput, error) {
	if profile, ok := s.profiles[id]; ok {
		return &usecase.ProfileOutput{Profile: profile}, nil
	}

	return nil, domainerrors.ErrNotFound.WrapMessage("no profile for principal")
}

func (s *stubProfileUsecase) UpdateProfile(_ context.Context, id uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.ProfileOutput, error) {
	out, err := s.GetProfile(context.Background(), id)
	if err != nil {
		return nil, err
	}
	out.Profile.Name = input.Name

	return out, nil
}

func (s *stubProfileUsecase) AssignRole(_ context.Context, id uuid.UUID, input *usecase.AssignRoleInput) (*usecase.ProfileOutput, error) {
	out, err := s.GetProfile(context.Background(), id)
	if err != nil {
		return nil, err
	}
	out.Profile.Role = input.Role

	return out, nil
}

func (s *stubProfileUsecase) DeleteProfile(_ context.Context, id uuid.UUID) error {
	if _, ok := s.profiles[id]; !ok {
		return domainerrors.ErrNotFound.WrapMessage("no profile for principal")
	}
	delete(s.profiles, id)

	return nil
}

type fixture struct {
	server   *echo.Echo
	usecase  *stubProfileUsecase
	userID   uuid.UUID
	adminID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userID := uuid.New()
	adminID := uuid.New()

	issuer := &stubIssuer{principals: map[string]*service.AccessClaims{
		"user-token":    {PrincipalID: userID, Role: entity.RoleUser},
		"admin-token":   {PrincipalID: adminID, Role: entity.RoleAdmin},
		"service-token": {PrincipalID: uuid.New(), Role: entity.RoleService},
	}}

	uc := &stubProfileUsecase{profiles: map[uuid.UUID]*entity.Profile{
		userID:  {ID: userID, Name: "Ada", Role: entity.RoleUser},
		adminID: {ID: adminID, Name: "Grace", Role: entity.RoleAdmin},
	}}

	logger := slog.New(slog.DiscardHandler)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := NewRouter(RouterParams{
		ProfileHandler: handler.NewProfileHandler(uc, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(issuer),
	})
	r.RegisterRoutes(e)

	return &fixture{
		server:  e,
		usecase: uc,
		userID:  userID,
		adminID: adminID,
	}
}

func (f *fixture) request(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	return rec
}

func TestInternalCreateRequiresServiceRole(t *testing.T) {
	f := newFixture(t)
	body := `{"id":"` + uuid.New().String() + `","name":"New User","role":"user"}`

	rec := f.request(http.MethodPost, "/internal/users", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.request(http.MethodPost, "/internal/users", "user-token", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.request(http.MethodPost, "/internal/users", "service-token", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestInternalGetProfile(t *testing.T) {
	f := newFixture(t)

	rec := f.request(http.MethodGet, "/internal/users/"+f.userID.String(), "service-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, f.userID.String(), envelope.Data.ID)
	assert.Equal(t, "user", envelope.Data.Role)

	rec = f.request(http.MethodGet, "/internal/users/"+uuid.New().String(), "service-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnProfileRoundTrip(t *testing.T) {
	f := newFixture(t)

	rec := f.request(http.MethodGet, "/users/me", "user-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ada")

	rec = f.request(http.MethodPut, "/users/me", "user-token", `{"name":"Countess"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Countess")
}

func TestOwnProfileDelete(t *testing.T) {
	f := newFixture(t)

	rec := f.request(http.MethodDelete, "/users/me", "user-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(http.MethodGet, "/users/me", "user-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnProfileRejectsServiceCredentials(t *testing.T) {
	f := newFixture(t)

	rec := f.request(http.MethodGet, "/users/me", "service-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleAssignment(t *testing.T) {
	f := newFixture(t)
	path := "/admin/users/" + f.userID.String() + "/role"

	rec := f.request(http.MethodPut, path, "user-token", `{"role":"admin"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.request(http.MethodPut, path, "admin-token", `{"role":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.RoleAdmin, f.usecase.profiles[f.userID].Role)
}

func TestAdminDeleteProfile(t *testing.T) {
	f := newFixture(t)

	rec := f.request(http.MethodDelete, "/admin/users/"+f.userID.String(), "admin-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(http.MethodGet, "/internal/users/"+f.userID.String(), "service-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMalformedPathID(t *testing.T) {
	f := newFixture(t)

	rec := f.request(http.MethodGet, "/admin/users/not-a-uuid", "admin-token", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

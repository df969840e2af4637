// Package handler contains the HTTP handlers for the profile surface.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/response"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for profile handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

type createProfileRequest struct {
	ID   string `json:"id" validate:"required,uuid4"`
	Name string `json:"name" validate:"required,min=1,max=100"`
	Role string `json:"role"`
}

type updateProfileRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type assignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toProfileResponse(profile *entity.Profile) profileResponse {
	return profileResponse{
		ID:        profile.ID.String(),
		Name:      profile.Name,
		Role:      profile.Role.String(),
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid request body")
	}

	return c.Validate(req)
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidInput.WrapMessage("malformed principal id")
	}

	return id, nil
}

// CreateProfile handles profile creation on the internal surface. Only the
// auth service holds a token that reaches this handler.
func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	var req createProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return domainerrors.ErrInvalidInput.WrapMessage("malformed principal id")
	}

	output, err := h.uc.CreateProfile(c.Request().Context(), &usecase.CreateProfileInput{
		ID:   id,
		Name: req.Name,
		Role: entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProfileResponse(output.Profile), "Profile created")
}

// GetProfileByID handles profile lookup by principal ID, shared by the
// internal and admin surfaces.
func (h *ProfileHandler) GetProfileByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	output, err := h.uc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(output.Profile), "")
}

// GetOwnProfile returns the authenticated caller's profile.
func (h *ProfileHandler) GetOwnProfile(c echo.Context) error {
	claims := deliverycontext.GetPrincipal(c.Request().Context())
	if claims == nil {
		return domainerrors.ErrInvalidCredentials.WrapMessage("no authenticated principal")
	}

	output, err := h.uc.GetProfile(c.Request().Context(), claims.PrincipalID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(output.Profile), "")
}

// UpdateOwnProfile changes the authenticated caller's display data.
func (h *ProfileHandler) UpdateOwnProfile(c echo.Context) error {
	claims := deliverycontext.GetPrincipal(c.Request().Context())
	if claims == nil {
		return domainerrors.ErrInvalidCredentials.WrapMessage("no authenticated principal")
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.UpdateProfile(c.Request().Context(), claims.PrincipalID, &usecase.UpdateProfileInput{
		Name: req.Name,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(output.Profile), "Profile updated")
}

// DeleteOwnProfile removes the authenticated caller's profile.
func (h *ProfileHandler) DeleteOwnProfile(c echo.Context) error {
	claims := deliverycontext.GetPrincipal(c.Request().Context())
	if claims == nil {
		return domainerrors.ErrInvalidCredentials.WrapMessage("no authenticated principal")
	}

	if err := h.uc.DeleteProfile(c.Request().Context(), claims.PrincipalID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Profile deleted")
}

// AssignRole handles an explicit role assignment on the admin surface.
func (h *ProfileHandler) AssignRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req assignRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.AssignRole(c.Request().Context(), id, &usecase.AssignRoleInput{
		Role: entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(output.Profile), "Role assigned")
}

// DeleteProfile removes a profile on the admin surface.
func (h *ProfileHandler) DeleteProfile(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProfile(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Profile deleted")
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

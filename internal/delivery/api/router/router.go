// Package router contains routing setup for the profile surface.
package router

import (
	"passport/internal/delivery/api/router/handler"
	"passport/internal/delivery/middleware"
	"passport/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers to register, injected by Fx.
type RouterParams struct {
	fx.In

	ProfileHandler *handler.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
}

type router struct {
	profileHandler *handler.ProfileHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		profileHandler: params.ProfileHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the profile surface.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Internal surface, reachable only with service credentials.
	internalGroup := e.Group("/internal/users")
	internalGroup.Use(r.authMiddleware.Authenticate)
	internalGroup.Use(r.authMiddleware.RequireRole(entity.RoleService))
	{
		internalGroup.POST("", r.profileHandler.CreateProfile)
		internalGroup.GET("/:id", r.profileHandler.GetProfileByID)
	}

	// Self-service surface for authenticated end users.
	meGroup := e.Group("/users/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	meGroup.Use(r.authMiddleware.RequireRole(entity.RoleUser, entity.RoleAdmin))
	{
		meGroup.GET("", r.profileHandler.GetOwnProfile)
		meGroup.PUT("", r.profileHandler.UpdateOwnProfile)
		meGroup.DELETE("", r.profileHandler.DeleteOwnProfile)
	}

	// Admin surface. Roles are assigned here explicitly, nowhere else.
	adminGroup := e.Group("/admin/users")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/:id", r.profileHandler.GetProfileByID)
		adminGroup.PUT("/:id/role", r.profileHandler.AssignRole)
		adminGroup.DELETE("/:id", r.profileHandler.DeleteProfile)
	}
}

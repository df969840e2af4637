package middleware

import (
	"strings"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/response"
	"passport/internal/domain/entity"
	"passport/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for access-token authentication and
// role-based authorization.
type AuthMiddleware struct {
	issuer service.TokenIssuer
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(issuer service.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// Authenticate validates the bearer access token and stores the verified
// claims on the request context for handlers downstream.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.issuer.ParseAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		ctx := deliverycontext.WithPrincipal(c.Request().Context(), claims)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated caller's
// role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := deliverycontext.GetPrincipal(c.Request().Context())
			if claims == nil {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}

			return response.Forbidden(c, "FORBIDDEN", "Permission denied: insufficient role")
		}
	}
}

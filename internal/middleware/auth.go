package middleware

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/milena/wayfare-api/internal/models"
	"github.com/milena/wayfare-api/internal/services"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
)

// Auth requires a valid bearer token and attaches the decoded identity to
// the request context.
func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Unauthorized("no token provided")
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				c.Unauthorized("token has expired")
			case errors.Is(err, services.ErrTokenInvalid):
				c.Unauthorized("invalid token")
			default:
				c.InternalServerError("token verification failed")
			}
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches identity when a valid token is present and continues
// unauthenticated on any fault.
func OptionalAuth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := jwtService.ValidateAccessToken(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin accepts roles admin and main_admin. It composes on top of
// Auth; a request that never authenticated gets 401, never 403.
func RequireAdmin() drift.HandlerFunc {
	return requireRole(models.RoleAdmin, models.RoleMainAdmin)
}

// RequireMainAdmin accepts only main_admin.
func RequireMainAdmin() drift.HandlerFunc {
	return requireRole(models.RoleMainAdmin)
}

func requireRole(roles ...string) drift.HandlerFunc {
	return func(c *drift.Context) {
		role := GetUserRole(c)
		if role == "" {
			c.Unauthorized("authentication required")
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.Forbidden("insufficient role")
	}
}

func bearerToken(c *drift.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

func setIdentity(c *drift.Context, claims *services.Claims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserEmailKey, claims.Email)
	c.Set(UserRoleKey, claims.Role)
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	if email, ok := c.Get(UserEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

func GetUserRole(c *drift.Context) string {
	if role, ok := c.Get(UserRoleKey); ok {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

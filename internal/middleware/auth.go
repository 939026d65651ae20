package middleware

import (
	"context"
	"strings"

	"microblog/internal/config"
	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Token issuer and audience claims.
const (
	TokenIssuer   = "microblog-api"
	TokenAudience = "microblog-client"
)

// UserLoader resolves the string-encoded user id carried in session state
// back into a full user record. It must be read-only and idempotent: absence
// is reported as (nil, nil), a malformed id as a validation error.
type UserLoader func(ctx context.Context, id string) (*models.User, error)

// SessionAuth returns a middleware that enforces authentication for
// protected routes. The session loader is injected rather than registered
// globally, so tests and callers control exactly how a session identifier
// becomes a user record.
func SessionAuth(cfg *config.Config, loadUser UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithIssuer(TokenIssuer), jwt.WithAudience(TokenAudience))

		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		// The subject claim carries the user id as a string (RFC 7519).
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token structure - missing subject"))
		}

		user, err := loadUser(c.Context(), sub)
		if err != nil {
			if models.ErrorCode(err) == models.ErrCodeValidation {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Invalid user ID in token"))
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if user == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unknown user"))
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)

		return c.Next()
	}
}

// CurrentUser returns the authenticated user stored by SessionAuth, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals("user").(*models.User); ok {
		return u
	}
	return nil
}

// Package middleware provides authentication, logging, metrics and rate limiting middleware.
package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenResolver maps a session token to a user ID.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (uint, error)
}

// ExtractToken reads the session token from an Authorization header value.
// Both a bare token and "Bearer <token>" are accepted.
func ExtractToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return ""
}

// SessionAuth enforces a valid session token on the request. On success the
// user ID is stored in c.Locals("userID") and in the user context.
func SessionAuth(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ExtractToken(c.Get("Authorization"))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
				"code":  "UNAUTHORIZED",
			})
		}

		userID, err := resolver.Resolve(c.UserContext(), token)
		if err != nil || userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
				"code":  "UNAUTHORIZED",
			})
		}

		c.Locals("userID", userID)
		c.Locals("sessionToken", token)
		ctx := context.WithValue(c.UserContext(), UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

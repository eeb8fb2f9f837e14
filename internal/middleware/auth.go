package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"surfcamp/internal/apperrors"
	"surfcamp/internal/services"
)

const userIDKey = "auth_user_id"

// AuthRequired is the auth gate for protected routes. The bearer credential
// is rejected in three distinct states before the token is even parsed:
// missing header, wrong scheme, and absent token value. Verification
// failures (bad signature, expiry, malformed payload) all collapse into the
// same generic authorization error so no detail leaks about which check
// failed.
func AuthRequired(tokens *services.TokenManager, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperrors.NewAuthorization("authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if parts[0] != "Bearer" {
			return apperrors.NewAuthorization("authorization header format must be 'Bearer <token>'")
		}
		if len(parts) < 2 || parts[1] == "" {
			return apperrors.NewAuthorization("bearer token is required")
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			log.Debug("token verification failed", zap.Error(err))
			return apperrors.ErrUnauthorized
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated identity attached by AuthRequired, or
// the empty string on a public route.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

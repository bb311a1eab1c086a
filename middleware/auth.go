package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/taskward/taskward/apperr"
	"github.com/taskward/taskward/auth"
	"github.com/taskward/taskward/models"
)

// userKey is where the resolved identity lives in the request context.
const userKey = "current_user"

// Auth gates every protected route. It extracts the bearer token,
// verifies it, resolves the subject against the user store and stores
// the resolved user in the request context. No failure path reaches
// the protected handler. An expired token gets its own reason code so
// clients can prompt a re-login specifically.
func Auth(tokens *auth.Tokens, users auth.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, apperr.CodeNoToken, "missing token")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return unauthorized(c, apperr.CodeNoToken, "invalid token format")
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			return unauthorized(c, apperr.CodeOf(err), err.Error())
		}

		user, err := users.FindByID(c.Context(), userID)
		if apperr.IsCode(err, apperr.CodeNotFound) {
			// Defensive: the subject may have disappeared since issuance.
			return unauthorized(c, apperr.CodeUserNotFound, "user no longer exists")
		} else if err != nil {
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "internal server error", "reason": apperr.CodeInternal})
		}

		c.Locals(userKey, *user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code apperr.Code, message string) error {
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"error": message, "reason": code})
}

// CurrentUser returns the identity resolved by Auth. The second result
// is false on routes that are not behind the middleware.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(userKey).(models.User)
	return user, ok
}

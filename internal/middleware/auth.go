package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lexivault/lexivault/internal/models"
	"github.com/lexivault/lexivault/internal/services"
	"github.com/lexivault/lexivault/internal/utils"
	"gorm.io/gorm"
)

// RequireUser resolves the Bearer token to a user and stores it in the
// request context. Token decode failures are uniform; a token whose subject
// no longer exists is equally invalid.
func RequireUser(db *gorm.DB, creds *services.Credentials) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(raw, "Bearer ")
		if !found || token == "" {
			return utils.ErrorResponse(c, "missing bearer token", fiber.StatusUnauthorized, "auth.token")
		}

		userID, err := creds.Subject(token)
		if err != nil {
			return utils.ErrorResponse(c, "could not validate credentials", fiber.StatusUnauthorized, "auth.token")
		}

		user, err := services.GetUserByID(db, userID)
		if err != nil {
			return utils.ErrorResponse(c, "could not validate credentials", fiber.StatusUnauthorized, "auth.token")
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// RequireRole gates a route on the role ladder. It must run after
// RequireUser. The check is numeric: any role at or above min passes.
func RequireRole(min models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.ErrorResponse(c, "could not validate credentials", fiber.StatusUnauthorized, "auth.token")
		}
		if user.Role < min {
			return utils.ErrorResponse(c, "insufficient role", fiber.StatusForbidden, "auth.role")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireUser, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

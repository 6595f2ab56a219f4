package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lexivault/lexivault/internal/utils"
)

// CurrentAPIVersion is the only version this server speaks.
const CurrentAPIVersion = "1.0.0"

// versionAliases maps accepted X-Api-Version spellings to the canonical form.
var versionAliases = map[string]string{
	"":      CurrentAPIVersion,
	"1":     CurrentAPIVersion,
	"1.0":   CurrentAPIVersion,
	"1.0.0": CurrentAPIVersion,
}

// APIVersion resolves the X-Api-Version request header, rejects versions the
// server does not speak, and echoes the resolved version on the response.
func APIVersion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requested := c.Get("X-Api-Version")

		version, ok := versionAliases[requested]
		if !ok {
			return utils.ErrorResponse(c, "unsupported api version "+requested,
				fiber.StatusBadRequest, "version")
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", version)

		return c.Next()
	}
}

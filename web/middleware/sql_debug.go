package middleware

import (
	"github.com/Sididaher/achat-app/database"
	"github.com/gofiber/fiber/v2"
)

// SQLDebug records how many statements each request executed and
// exposes the figure through the request locals.
func SQLDebug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		before := database.SQLLogger.Count()

		err := c.Next()

		executed := database.SQLLogger.Count() - before
		c.Locals("SQLQueryCount", executed)

		return err
	}
}

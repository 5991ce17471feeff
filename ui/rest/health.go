package rest

import (
	"github.com/gofiber/fiber/v2"
)

// InitRestHealth registers the liveness probe. It stays outside the JWT and
// basic-auth groups so platform monitors can reach it.
func InitRestHealth(app fiber.Router) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
}

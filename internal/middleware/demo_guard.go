package middleware

import "github.com/gofiber/fiber/v2"

// BlockDemoWrites soft-blocks mutating actions for demo sessions: the
// request never reaches the store and the client gets an informational
// notice, not an error.
func BlockDemoWrites() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := SessionFrom(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		if s.IsDemo() {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"success": false,
				"demo":    true,
				"message": "Demo mode is read-only. Sign up to save your own inventory.",
			})
		}
		return c.Next()
	}
}

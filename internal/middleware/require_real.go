package middleware

import "github.com/gofiber/fiber/v2"

// RequireReal rejects demo sessions on routes that only make sense for a
// real account (billing, account settings).
func RequireReal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := SessionFrom(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		if s.IsDemo() {
			return fiber.NewError(fiber.StatusForbidden, "not available in demo mode")
		}
		return c.Next()
	}
}

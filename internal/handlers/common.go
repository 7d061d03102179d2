package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reselltrack/reselltrack_pro_be/internal/middleware"
	"github.com/reselltrack/reselltrack_pro_be/internal/session"
)

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validationFail(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

// getSession pulls the request session. The JWT middlewares guarantee it on
// every route that reaches a handler, so a miss yields the zero session.
func getSession(c *fiber.Ctx) session.Session {
	s, _ := middleware.SessionFrom(c)
	return s
}

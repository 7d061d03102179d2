package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/reselltrack/reselltrack_pro_be/internal/store"
)

type CategoryHandler struct {
	Categories *store.CategoryStore
	Log        *slog.Logger
}

// List returns the active category reference data used by product forms
// and the filter bar.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Categories.ListActive(c.Context())
	if err != nil {
		h.Log.Error("list categories", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load categories",
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": cats})
}

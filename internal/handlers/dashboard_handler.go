package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/reselltrack/reselltrack_pro_be/internal/cache"
	"github.com/reselltrack/reselltrack_pro_be/internal/metrics"
	"github.com/reselltrack/reselltrack_pro_be/internal/stats"
	"github.com/reselltrack/reselltrack_pro_be/internal/store"
)

const dashboardTTL = 60 * time.Second

type DashboardHandler struct {
	Products *store.ProductStore
	Meetings *store.MeetingStore
	Cache    *cache.Cache
	Log      *slog.Logger
	Metrics  *metrics.Metrics
}

// Summary computes the dashboard metrics from the caller's live products
// and meetings. Results are cached briefly; every write invalidates the
// cache so the next read recomputes.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	sess := getSession(c)

	var cached stats.Dashboard
	hit, err := h.Cache.GetDashboard(c.Context(), sess.UserID, &cached)
	if err != nil {
		h.Log.Warn("dashboard cache read", "err", err)
	}
	if hit {
		c.Set("X-Cache", "hit")
		return c.JSON(fiber.Map{"success": true, "data": cached})
	}

	products, err := h.Products.List(c.Context(), sess.UserID)
	if err != nil {
		h.Log.Error("dashboard products", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("product").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load dashboard",
		})
	}
	meetings, err := h.Meetings.List(c.Context(), sess.UserID)
	if err != nil {
		h.Log.Error("dashboard meetings", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("meeting").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load dashboard",
		})
	}

	d := stats.Compute(products, meetings, time.Now())
	if err := h.Cache.SetDashboard(c.Context(), sess.UserID, d, dashboardTTL); err != nil {
		h.Log.Warn("dashboard cache write", "err", err)
	}

	return c.JSON(fiber.Map{"success": true, "data": d})
}

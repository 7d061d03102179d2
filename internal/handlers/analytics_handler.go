package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/reselltrack/reselltrack_pro_be/internal/metrics"
	"github.com/reselltrack/reselltrack_pro_be/internal/store"
)

type AnalyticsHandler struct {
	Analytics *store.AnalyticsStore
	Log       *slog.Logger
	Metrics   *metrics.Metrics
}

// Summary returns the SQL rollup for the requested period (week or month,
// ending now).
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	sess := getSession(c)

	period := c.Query("period", "week")
	now := time.Now()
	var from time.Time
	switch period {
	case "week":
		from = now.AddDate(0, 0, -7)
	case "month":
		from = now.AddDate(0, -1, 0)
	default:
		fe := FieldErrors{}
		fe.Add("period", "Period must be week or month")
		return validationFail(c, fe)
	}

	sum, err := h.Analytics.PeriodSummary(c.Context(), sess.UserID, from, now)
	if err != nil {
		h.Log.Error("period summary", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("analytics_event").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load analytics",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"period":  period,
			"from":    from,
			"to":      now,
			"summary": sum,
		},
	})
}

// Events lists the caller's raw activity log, newest first.
func (h *AnalyticsHandler) Events(c *fiber.Ctx) error {
	sess := getSession(c)

	events, err := h.Analytics.List(c.Context(), sess.UserID)
	if err != nil {
		h.Log.Error("list events", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("analytics_event").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load activity",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"events": events,
			"total":  len(events),
		},
	})
}

package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/reselltrack/reselltrack_pro_be/internal/demo"
	"github.com/reselltrack/reselltrack_pro_be/internal/metrics"
	"github.com/reselltrack/reselltrack_pro_be/internal/middleware"
	"github.com/reselltrack/reselltrack_pro_be/internal/models"
	"github.com/reselltrack/reselltrack_pro_be/internal/session"
	"github.com/reselltrack/reselltrack_pro_be/internal/utils"
)

// dashboardInvalidator is the slice of cache.Cache the demo lifecycle needs:
// generate/cleanup rewrite the demo dataset wholesale, so the cached rollup
// has to go the same as after any other write.
type dashboardInvalidator interface {
	InvalidateDashboard(ctx context.Context, ownerID uuid.UUID)
}

type DemoHandler struct {
	Lifecycle *demo.Lifecycle
	Cache     dashboardInvalidator
	Metrics   *metrics.Metrics
	Log       *slog.Logger
	JWTSecret string
	Expires   int
}

func (h *DemoHandler) issueDemoCookie(c *fiber.Ctx) error {
	token, err := utils.SignJWT(
		h.JWTSecret,
		session.DemoUserID.String(),
		string(models.TierDemo),
		string(session.KindDemo),
		0,
		h.Expires,
	)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
	return nil
}

// Start opens a demo session without an account. The shared demo catalog
// is generated on first use and reused afterwards.
func (h *DemoHandler) Start(c *fiber.Ctx) error {
	exists, err := h.Lifecycle.Exists(c.Context(), session.DemoUserID)
	if err != nil {
		h.Log.Error("demo exists check", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to start demo",
		})
	}

	var generated *demo.Result
	if !exists {
		generated = h.Lifecycle.Generate(c.Context(), session.DemoUserID)
		h.Metrics.DemoGenerated.Inc()
		h.Cache.InvalidateDashboard(c.Context(), session.DemoUserID)
	}

	if err := h.issueDemoCookie(c); err != nil {
		h.Log.Error("demo cookie", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to start demo",
		})
	}

	data := fiber.Map{"demo": true}
	if generated != nil {
		data["generated"] = fiber.Map{
			"products": len(generated.Products),
			"meetings": len(generated.Meetings),
			"events":   len(generated.Events),
		}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Demo session started",
		"data":    data,
	})
}

// Reset wipes the demo catalog and regenerates it from scratch. Only a
// demo session may call it.
func (h *DemoHandler) Reset(c *fiber.Ctx) error {
	sess := getSession(c)
	if !sess.IsDemo() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Reset is only available in demo mode",
		})
	}

	if err := h.Lifecycle.Cleanup(c.Context(), session.DemoUserID); err != nil {
		h.Metrics.DemoFailures.WithLabelValues("cleanup").Inc()
		h.Log.Error("demo cleanup", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to reset demo data",
		})
	}
	h.Metrics.DemoCleanups.Inc()

	res := h.Lifecycle.Generate(c.Context(), session.DemoUserID)
	h.Metrics.DemoGenerated.Inc()
	h.Cache.InvalidateDashboard(c.Context(), session.DemoUserID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Demo data reset",
		"data": fiber.Map{
			"generated": fiber.Map{
				"products": len(res.Products),
				"meetings": len(res.Meetings),
				"events":   len(res.Events),
			},
		},
	})
}

// Exit ends the demo session by clearing the cookie. The shared catalog
// stays for the next visitor.
func (h *DemoHandler) Exit(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Demo session ended",
	})
}

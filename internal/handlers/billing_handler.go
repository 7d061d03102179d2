package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
	"github.com/reselltrack/reselltrack_pro_be/internal/services/checkout"
	"github.com/reselltrack/reselltrack_pro_be/internal/session"
)

type BillingHandler struct {
	DB          *gorm.DB
	Checkout    *checkout.Service
	Log         *slog.Logger
	AppBaseURL  string
	FrontendURL string
}

// Plans is public; the pricing page renders from it.
func (h *BillingHandler) Plans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": checkout.Plans})
}

// Subscription reports the caller's current tier and trial state.
func (h *BillingHandler) Subscription(c *fiber.Ctx) error {
	sess := getSession(c)
	now := time.Now()

	data := fiber.Map{
		"tier":            sess.EffectiveTier(now),
		"trial_days_left": sess.TrialDaysLeft(now),
	}
	if sess.Kind == session.KindReal {
		var last models.CheckoutSession
		err := h.DB.Where("user_id = ? AND status = ?", sess.UserID, models.CheckoutStatusPaid).
			Order("created_at DESC").
			First(&last).Error
		if err == nil {
			data["plan"] = last.Plan
			data["paid_at"] = last.PaidAt
		} else if err != gorm.ErrRecordNotFound {
			h.Log.Error("load subscription", "err", err)
		}
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func merchantRef() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return "SUB-" + strings.ToUpper(hex.EncodeToString(b))
}

type checkoutRequest struct {
	PlanID string `json:"plan_id"`
}

// CreateCheckout starts an upgrade. The free plan applies immediately;
// paid plans go through the provider's hosted checkout page.
func (h *BillingHandler) CreateCheckout(c *fiber.Ctx) error {
	sess := getSession(c)

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	plan, ok := checkout.PlanByID(req.PlanID)
	if !ok {
		fe := FieldErrors{}
		fe.Add("plan_id", "Unknown plan")
		return validationFail(c, fe)
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", sess.UserID).Error; err != nil {
		h.Log.Error("load user for checkout", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to start checkout",
		})
	}

	if plan.Amount == 0 {
		u.Tier = models.TierFree
		u.TrialEndsAt = nil
		if err := h.DB.Save(&u).Error; err != nil {
			h.Log.Error("downgrade to free", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to change plan",
			})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Plan changed to Free",
			"data":    fiber.Map{"tier": u.Tier},
		})
	}

	ref := merchantRef()
	resp, err := h.Checkout.CreateSession(
		plan,
		ref,
		u.Name,
		u.Email,
		h.AppBaseURL+"/api/billing/webhook",
		h.FrontendURL+"/settings/billing",
	)
	if err != nil {
		h.Log.Error("create checkout session", "err", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": "Payment provider is unavailable",
		})
	}

	cs := models.CheckoutSession{
		UserID:      u.ID,
		Plan:        plan.ID,
		Reference:   resp.Data.Reference,
		MerchantRef: ref,
		Amount:      plan.Amount,
		CheckoutURL: resp.Data.CheckoutURL,
		Status:      models.CheckoutStatusPending,
	}
	if err := h.DB.Create(&cs).Error; err != nil {
		h.Log.Error("save checkout session", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to start checkout",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"checkout_url": cs.CheckoutURL,
			"merchant_ref": cs.MerchantRef,
		},
	})
}

// Portal redirects the caller to the provider's self-service billing page.
func (h *BillingHandler) Portal(c *fiber.Ctx) error {
	sess := getSession(c)

	var u models.User
	if err := h.DB.First(&u, "id = ?", sess.UserID).Error; err != nil {
		h.Log.Error("load user for portal", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to open billing portal",
		})
	}

	resp, err := h.Checkout.CreatePortalSession(u.Email, h.FrontendURL+"/settings/billing")
	if err != nil {
		h.Log.Error("create portal session", "err", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": "Payment provider is unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"portal_url": resp.Data.PortalURL},
	})
}

type webhookPayload struct {
	Reference   string `json:"reference"`
	MerchantRef string `json:"merchant_ref"`
	Status      string `json:"status"`
}

// Webhook receives payment outcomes from the provider. The signature
// covers the raw body.
func (h *BillingHandler) Webhook(c *fiber.Ctx) error {
	sig := c.Get("X-Callback-Signature")
	body := c.Body()
	if !h.Checkout.ValidateSignature(sig, body) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid signature",
		})
	}

	var p webhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
		})
	}

	var cs models.CheckoutSession
	if err := h.DB.Where("merchant_ref = ?", p.MerchantRef).First(&cs).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Unknown merchant_ref",
			})
		}
		h.Log.Error("load checkout session", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to process callback",
		})
	}

	// webhooks can be re-delivered; a settled session is left alone
	if cs.Status == models.CheckoutStatusPaid {
		return c.JSON(fiber.Map{"success": true})
	}

	switch strings.ToUpper(p.Status) {
	case "PAID":
		now := time.Now()
		cs.Status = models.CheckoutStatusPaid
		cs.PaidAt = &now
		if cs.Reference == "" {
			cs.Reference = p.Reference
		}

		err := h.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&cs).Error; err != nil {
				return err
			}
			return tx.Model(&models.User{}).
				Where("id = ?", cs.UserID).
				Updates(map[string]any{"tier": models.TierPro, "trial_ends_at": nil}).Error
		})
		if err != nil {
			h.Log.Error("apply paid webhook", "ref", p.MerchantRef, "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to process callback",
			})
		}
		h.Log.Info("subscription activated", "user", cs.UserID, "plan", cs.Plan)
	case "FAILED":
		cs.Status = models.CheckoutStatusFailed
		_ = h.DB.Save(&cs).Error
	case "EXPIRED":
		cs.Status = models.CheckoutStatusExpired
		_ = h.DB.Save(&cs).Error
	}

	return c.JSON(fiber.Map{"success": true})
}

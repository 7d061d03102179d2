package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reselltrack/reselltrack_pro_be/internal/cache"
	"github.com/reselltrack/reselltrack_pro_be/internal/middleware"
	"github.com/reselltrack/reselltrack_pro_be/internal/models"
	"github.com/reselltrack/reselltrack_pro_be/internal/session"
	"github.com/reselltrack/reselltrack_pro_be/internal/utils"
)

const resetTokenTTL = 30 * time.Minute

type AuthHandler struct {
	DB        *gorm.DB
	Cache     *cache.Cache
	Log       *slog.Logger
	JWTSecret string
	Expires   int
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, u *models.User) error {
	var trialEnds int64
	if u.TrialEndsAt != nil {
		trialEnds = u.TrialEndsAt.Unix()
	}
	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Tier), string(session.KindReal), trialEnds, h.Expires)
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

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})
}

func userPayload(u *models.User, now time.Time) fiber.Map {
	s := session.NewReal(u)
	return fiber.Map{
		"id":              u.ID,
		"name":            u.Name,
		"email":           u.Email,
		"tier":            s.EffectiveTier(now),
		"trial_ends_at":   u.TrialEndsAt,
		"trial_days_left": s.TrialDaysLeft(now),
		"tutorial_done":   u.TutorialDone,
	}
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errors := FieldErrors{}
	if name == "" {
		errors.Add("name", "Name is required")
	}
	if email == "" {
		errors.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		errors.Add("email", "Email is not valid")
	}
	if password == "" {
		errors.Add("password", "Password is required")
	} else if len(password) < 6 {
		errors.Add("password", "Password must be at least 6 characters")
	}
	if len(errors) > 0 {
		return validationFail(c, errors)
	}

	var existing models.User
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		errs := FieldErrors{}
		errs.Add("email", "Email is already registered")
		return validationFail(c, errs)
	} else if err != gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong",
		})
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to process password",
		})
	}

	// every new account starts on a 14-day trial
	trialEnds := time.Now().AddDate(0, 0, models.TrialDays)
	u := models.User{
		Name:        name,
		Email:       email,
		Password:    pw,
		Tier:        models.TierTrial,
		TrialEndsAt: &trialEnds,
		IsActive:    true,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Failed to register",
		})
	}

	if err := h.setSessionCookie(c, &u); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registered",
		"data":    fiber.Map{"user": userPayload(&u, time.Now())},
	})
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errors := FieldErrors{}
	if email == "" {
		errors.Add("email", "Email is required")
	}
	if password == "" {
		errors.Add("password", "Password is required")
	}
	if len(errors) > 0 {
		return validationFail(c, errors)
	}

	var u models.User
	if err := h.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Wrong email or password",
		})
	}
	if !u.IsActive {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Account is inactive",
		})
	}
	if !utils.CheckPassword(u.Password, password) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Wrong email or password",
		})
	}

	if err := h.setSessionCookie(c, &u); err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create session",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Signed in",
		"data":    fiber.Map{"user": userPayload(&u, time.Now())},
	})
}

// Logout clears the session cookie. Demo sessions share the cookie, so
// signing out also ends demo mode.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearSessionCookie(c)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Signed out",
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := getSession(c)

	now := time.Now()
	if sess.IsDemo() {
		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"id":            sess.UserID,
				"name":          "Demo Reseller",
				"email":         "demo@reselltrack.example",
				"tier":          models.TierDemo,
				"demo":          true,
				"tutorial_done": true,
			},
		})
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", sess.UserID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    userPayload(&u, now),
	})
}

type ForgotPasswordReq struct {
	Email string `json:"email"`
}

// ForgotPassword issues a reset token with a short TTL. The response is the
// same whether or not the address exists.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ack := fiber.Map{
		"success": true,
		"message": "If the address exists, a reset link has been sent",
	}

	var u models.User
	if err := h.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return c.JSON(ack)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create reset token",
		})
	}
	token := hex.EncodeToString(buf)

	if err := h.Cache.StoreResetToken(c.Context(), token, u.ID, resetTokenTTL); err != nil {
		h.Log.Error("store reset token failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create reset token",
		})
	}

	// TODO: send via mailer once one is wired up; for now the link only
	// lands in the logs.
	h.Log.Info("password reset requested", "email", email, "token", token)

	return c.JSON(ack)
}

type ResetPasswordReq struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}
	if len(strings.TrimSpace(req.Password)) < 6 {
		errs := FieldErrors{}
		errs.Add("password", "Password must be at least 6 characters")
		return validationFail(c, errs)
	}

	uid, err := h.Cache.ConsumeResetToken(c.Context(), req.Token)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong",
		})
	}
	if uid == uuid.Nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "Reset link is invalid or expired",
		})
	}

	pw, err := utils.HashPassword(strings.TrimSpace(req.Password))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to process password",
		})
	}
	if err := h.DB.Model(&models.User{}).Where("id = ?", uid).Update("password", pw).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update password",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password updated, you can sign in now",
	})
}

type ChangePasswordReq struct {
	Current string `json:"current_password"`
	New     string `json:"new_password"`
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	sess := getSession(c)

	var req ChangePasswordReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}
	if len(strings.TrimSpace(req.New)) < 6 {
		errs := FieldErrors{}
		errs.Add("new_password", "Password must be at least 6 characters")
		return validationFail(c, errs)
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", sess.UserID).Error; err != nil {
		return fiber.ErrUnauthorized
	}
	if !utils.CheckPassword(u.Password, strings.TrimSpace(req.Current)) {
		errs := FieldErrors{}
		errs.Add("current_password", "Current password is wrong")
		return validationFail(c, errs)
	}

	pw, err := utils.HashPassword(strings.TrimSpace(req.New))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to process password",
		})
	}
	u.Password = pw
	if err := h.DB.Save(&u).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update password",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password updated",
	})
}

type UpdateProfileReq struct {
	Name string `json:"name"`
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	sess := getSession(c)

	var req UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs := FieldErrors{}
		errs.Add("name", "Name is required")
		return validationFail(c, errs)
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", sess.UserID).Error; err != nil {
		return fiber.ErrUnauthorized
	}
	u.Name = name
	if err := h.DB.Save(&u).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update profile",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated",
		"data":    userPayload(&u, time.Now()),
	})
}

// CompleteTutorial flips the one-time onboarding flag.
func (h *AuthHandler) CompleteTutorial(c *fiber.Ctx) error {
	sess := getSession(c)

	if err := h.DB.Model(&models.User{}).
		Where("id = ?", sess.UserID).
		Update("tutorial_done", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update tutorial flag",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

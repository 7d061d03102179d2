package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
	"github.com/reselltrack/reselltrack_pro_be/internal/session"
	"github.com/reselltrack/reselltrack_pro_be/internal/utils"
)

// AttachSession turns validated JWT claims into a session.Session local.
// Demo tokens always resolve to the fixed synthetic identity, regardless of
// what else the claims carry.
func AttachSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Locals("token")
		if raw == nil {
			return fiber.ErrUnauthorized
		}

		token, ok := raw.(*jwt.Token)
		if !ok || token == nil {
			return fiber.ErrUnauthorized
		}
		claims, ok := token.Claims.(*utils.Claims)
		if !ok {
			return fiber.ErrUnauthorized
		}

		if claims.Kind == string(session.KindDemo) {
			c.Locals("session", session.NewDemo())
			return c.Next()
		}

		uid, err := uuid.Parse(claims.UserID)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		s := session.Session{
			Kind:   session.KindReal,
			UserID: uid,
			Tier:   models.Tier(claims.Tier),
		}
		if claims.TrialEnds > 0 {
			t := time.Unix(claims.TrialEnds, 0)
			s.TrialEndsAt = &t
		}
		c.Locals("session", s)
		return c.Next()
	}
}

// SessionFrom pulls the session local; handlers call this after the JWT
// middlewares have run.
func SessionFrom(c *fiber.Ctx) (session.Session, bool) {
	s, ok := c.Locals("session").(session.Session)
	return s, ok
}

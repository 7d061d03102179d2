package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

type Kind string

const (
	KindReal Kind = "real"
	KindDemo Kind = "demo"
)

// DemoUserID is the fixed synthetic owner id. All demo rows are tagged with
// it; it never corresponds to a row in the users table.
var DemoUserID = uuid.MustParse("00000000-0000-4000-a000-000000000d34")

// Session is the identity attached to a request: either a real authenticated
// user or the synthetic demo identity, never both.
type Session struct {
	Kind        Kind
	UserID      uuid.UUID
	Tier        models.Tier
	TrialEndsAt *time.Time
}

// NewReal builds a session for an authenticated user.
func NewReal(u *models.User) Session {
	return Session{
		Kind:        KindReal,
		UserID:      u.ID,
		Tier:        u.Tier,
		TrialEndsAt: u.TrialEndsAt,
	}
}

// NewDemo builds the demo session. Demo sessions are always tier demo.
func NewDemo() Session {
	return Session{
		Kind:   KindDemo,
		UserID: DemoUserID,
		Tier:   models.TierDemo,
	}
}

// IsDemo reports whether the session carries the synthetic demo identity.
func (s Session) IsDemo() bool {
	return s.Kind == KindDemo
}

// EffectiveTier resolves the tier to enforce at time now: an expired trial
// falls back to free, everything else passes through.
func (s Session) EffectiveTier(now time.Time) models.Tier {
	if s.Tier == models.TierTrial {
		if s.TrialEndsAt == nil || !s.TrialEndsAt.After(now) {
			return models.TierFree
		}
	}
	return s.Tier
}

// TrialDaysLeft counts whole days remaining in the trial, rounded up; 0 for
// non-trial sessions or an elapsed trial.
func (s Session) TrialDaysLeft(now time.Time) int {
	if s.Tier != models.TierTrial || s.TrialEndsAt == nil {
		return 0
	}
	left := s.TrialEndsAt.Sub(now)
	if left <= 0 {
		return 0
	}
	days := int(left / (24 * time.Hour))
	if left%(24*time.Hour) > 0 {
		days++
	}
	return days
}

package session

import (
	"testing"
	"time"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

func TestDemoSessionIsAlwaysDemoTier(t *testing.T) {
	s := NewDemo()
	if !s.IsDemo() {
		t.Fatal("expected demo session")
	}
	if s.Tier != models.TierDemo {
		t.Fatalf("expected demo tier, got %s", s.Tier)
	}
	if s.UserID != DemoUserID {
		t.Fatalf("expected fixed demo owner id, got %s", s.UserID)
	}
}

func TestEffectiveTierTrialActive(t *testing.T) {
	now := time.Now()
	ends := now.Add(48 * time.Hour)
	u := &models.User{Tier: models.TierTrial, TrialEndsAt: &ends}

	s := NewReal(u)
	if got := s.EffectiveTier(now); got != models.TierTrial {
		t.Fatalf("expected trial, got %s", got)
	}
}

func TestEffectiveTierTrialExpiredFallsBackToFree(t *testing.T) {
	now := time.Now()
	ends := now.Add(-time.Hour)
	u := &models.User{Tier: models.TierTrial, TrialEndsAt: &ends}

	s := NewReal(u)
	if got := s.EffectiveTier(now); got != models.TierFree {
		t.Fatalf("expected free after expiry, got %s", got)
	}
}

func TestEffectiveTierTrialWithoutExpiryIsFree(t *testing.T) {
	u := &models.User{Tier: models.TierTrial}
	s := NewReal(u)
	if got := s.EffectiveTier(time.Now()); got != models.TierFree {
		t.Fatalf("expected free, got %s", got)
	}
}

func TestEffectiveTierProPassesThrough(t *testing.T) {
	u := &models.User{Tier: models.TierPro}
	s := NewReal(u)
	if got := s.EffectiveTier(time.Now()); got != models.TierPro {
		t.Fatalf("expected pro, got %s", got)
	}
}

func TestTrialDaysLeft(t *testing.T) {
	now := time.Now()

	ends := now.Add(3*24*time.Hour + time.Minute)
	u := &models.User{Tier: models.TierTrial, TrialEndsAt: &ends}
	if got := NewReal(u).TrialDaysLeft(now); got != 4 {
		t.Fatalf("expected 4 (rounded up), got %d", got)
	}

	exact := now.Add(2 * 24 * time.Hour)
	u = &models.User{Tier: models.TierTrial, TrialEndsAt: &exact}
	if got := NewReal(u).TrialDaysLeft(now); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}

	past := now.Add(-time.Hour)
	u = &models.User{Tier: models.TierTrial, TrialEndsAt: &past}
	if got := NewReal(u).TrialDaysLeft(now); got != 0 {
		t.Fatalf("expected 0 for elapsed trial, got %d", got)
	}

	if got := NewDemo().TrialDaysLeft(now); got != 0 {
		t.Fatalf("expected 0 for demo, got %d", got)
	}
}

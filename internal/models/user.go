package models

import (
	"time"

	"github.com/google/uuid"
)

type Tier string

const (
	TierFree  Tier = "free"
	TierTrial Tier = "trial"
	TierPro   Tier = "pro"
	TierDemo  Tier = "demo"
)

// TrialDays is the length of the free trial granted on registration.
const TrialDays = 14

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`

	Tier        Tier       `gorm:"type:varchar(20);not null;default:'trial';index" json:"tier"`
	TrialEndsAt *time.Time `json:"trial_ends_at,omitempty"`

	TutorialDone bool `gorm:"default:false" json:"tutorial_done"`
	IsActive     bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

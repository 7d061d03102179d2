package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckoutStatus string

const (
	CheckoutStatusPending CheckoutStatus = "PENDING"
	CheckoutStatusPaid    CheckoutStatus = "PAID"
	CheckoutStatusFailed  CheckoutStatus = "FAILED"
	CheckoutStatusExpired CheckoutStatus = "EXPIRED"
)

// CheckoutSession records a hosted-checkout redirect issued to the payment
// provider. The provider owns the payment flow; we only keep the reference
// and the outcome reported by its webhook.
type CheckoutSession struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Plan        string         `gorm:"type:varchar(30);not null" json:"plan"` // free | pro_monthly | pro_yearly
	Reference   string         `gorm:"type:varchar(50);uniqueIndex" json:"reference"`
	MerchantRef string         `gorm:"type:varchar(50);uniqueIndex" json:"merchant_ref"`
	Amount      int64          `json:"amount"`
	CheckoutURL string         `gorm:"type:text" json:"checkout_url"`
	Status      CheckoutStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	PaidAt      *time.Time     `json:"paid_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *CheckoutSession) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

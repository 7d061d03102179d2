package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductListed  ProductStatus = "listed"
	ProductPending ProductStatus = "pending"
	ProductSold    ProductStatus = "sold"
	ProductExpired ProductStatus = "expired"
)

type ProductCondition string

const (
	ConditionNew     ProductCondition = "new"
	ConditionLikeNew ProductCondition = "like_new"
	ConditionGood    ProductCondition = "good"
	ConditionFair    ProductCondition = "fair"
	ConditionPoor    ProductCondition = "poor"
)

type Product struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(80);index" json:"category"`

	// Prices are whole currency units. PurchasePrice is what the reseller
	// paid, SoldPrice what the buyer paid; both optional.
	ListingPrice  int64  `json:"listing_price"`
	PurchasePrice *int64 `json:"purchase_price,omitempty"`
	SoldPrice     *int64 `json:"sold_price,omitempty"`
	Profit        *int64 `json:"profit,omitempty"`

	Platform  string           `gorm:"type:varchar(50)" json:"platform"`
	Status    ProductStatus    `gorm:"type:varchar(20);default:'listed';index" json:"status"`
	Condition ProductCondition `gorm:"type:varchar(20)" json:"condition"`

	Tags  datatypes.JSON `json:"tags,omitempty"` // ["vintage", "nike", ...]
	Notes string         `gorm:"type:text" json:"notes"`

	SoldAt *time.Time `json:"sold_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RecalcProfit fills Profit when it is defined: the product is sold and both
// sold and purchase price are known. Otherwise Profit is cleared.
func (p *Product) RecalcProfit() {
	if p.Status == ProductSold && p.SoldPrice != nil && p.PurchasePrice != nil {
		profit := *p.SoldPrice - *p.PurchasePrice
		p.Profit = &profit
		return
	}
	p.Profit = nil
}

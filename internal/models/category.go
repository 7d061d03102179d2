package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is reference data shared by all users.
type Category struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name   string    `gorm:"uniqueIndex;not null" json:"name"`
	Icon   string    `gorm:"type:varchar(50)" json:"icon"`
	Color  string    `gorm:"type:varchar(20)" json:"color"`
	Active bool      `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

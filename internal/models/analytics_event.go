package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalyticsEvent is an append-only activity log row. Events are never folded
// back into dashboard metrics (those derive from products/meetings directly)
// and, unlike products and meetings, are hard-deleted on demo cleanup.
type AnalyticsEvent struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	EventType string         `gorm:"type:varchar(50);not null;index" json:"event_type"`
	Payload   datatypes.JSON `json:"payload,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

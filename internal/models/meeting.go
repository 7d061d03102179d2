package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MeetingType string

const (
	MeetingPickup      MeetingType = "pickup"
	MeetingDropOff     MeetingType = "drop_off"
	MeetingViewing     MeetingType = "viewing"
	MeetingNegotiation MeetingType = "negotiation"
	MeetingOther       MeetingType = "other"
)

type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
	MeetingNoShow    MeetingStatus = "no_show"
)

type Meeting struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Title       string `gorm:"not null" json:"title"`
	ClientName  string `gorm:"type:varchar(120)" json:"client_name"`
	ClientEmail string `gorm:"type:varchar(150)" json:"client_email"`
	ClientPhone string `gorm:"type:varchar(30)" json:"client_phone"`

	// Date and wall-clock time are stored separately, combined via
	// ScheduledAt for comparisons and sorting.
	MeetingDate time.Time `gorm:"type:date;index" json:"meeting_date"`
	MeetingTime string    `gorm:"type:varchar(5)" json:"meeting_time"` // "15:04"

	DurationMinutes *int   `json:"duration_minutes,omitempty"`
	Location        string `gorm:"type:varchar(200)" json:"location"`

	Type   MeetingType   `gorm:"column:meeting_type;type:varchar(20);default:'other'" json:"meeting_type"`
	Status MeetingStatus `gorm:"type:varchar(20);default:'scheduled';index" json:"status"`

	Notes string `gorm:"type:text" json:"notes"`

	ProductID *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Product   *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	ReminderSent bool `gorm:"default:false" json:"reminder_sent"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ScheduledAt combines MeetingDate and MeetingTime. A missing or malformed
// time means midnight.
func (m *Meeting) ScheduledAt() time.Time {
	d := m.MeetingDate
	t, err := time.Parse("15:04", m.MeetingTime)
	if err != nil {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location())
}

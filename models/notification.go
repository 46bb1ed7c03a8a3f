package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// Notification status starts pending; delivery status is advanced by
	// an external consumer, never by this backend.
	NotificationPending = "pending"

	ChannelInApp = "inapp"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// FollowUpNotification is a persisted reminder row created when a due-soon
// threshold fires or a user manually sends a reminder.
type FollowUpNotification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	FollowUpID uuid.UUID  `gorm:"type:uuid;index;not null"`
	UserID     uuid.UUID  `gorm:"type:uuid;index;not null"` // recipient
	SentBy     *uuid.UUID `gorm:"type:uuid"`

	Message string `gorm:"type:text;not null"`
	Status  string `gorm:"type:varchar(20);default:'pending'"`
	Channel string `gorm:"type:varchar(20);default:'inapp'"`

	CreatedAt time.Time
}

func (n *FollowUpNotification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Status == "" {
		n.Status = NotificationPending
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowUpAcknowledgment records that a user dismissed the overdue alert
// for a follow-up. Its presence suppresses re-alerting that user.
type FollowUpAcknowledgment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	FollowUpID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ack_follow_up_user,priority:1"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ack_follow_up_user,priority:2"`

	AcknowledgedAt time.Time
}

func (a *FollowUpAcknowledgment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AcknowledgedAt.IsZero() {
		a.AcknowledgedAt = time.Now()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is derived from due time and completion flag, never persisted.
type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusCompleted Status = "Completed"
	StatusExpired   Status = "Expired"
)

type FollowUp struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID       uuid.UUID `gorm:"type:uuid;index;not null"`
	AssignedUserID uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedBy      uuid.UUID `gorm:"type:uuid"`

	DueAt        *time.Time `gorm:"index"`
	Note         string     `gorm:"type:text"`
	ActionReason string     `gorm:"type:text"` // set on complete/reschedule, supersedes Note for display
	IsCompleted  bool       `gorm:"default:false;index"`

	// Denormalized display names come from these joins and are optional;
	// callers must not assume they are loaded.
	Client       *Client `gorm:"foreignKey:ClientID"`
	AssignedUser *User   `gorm:"foreignKey:AssignedUserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (f *FollowUp) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}

// ClassifyFollowUp derives a follow-up status. Total: a nil due date is
// treated as Upcoming ("no date set") rather than an error.
// Priority: completed, then no date, then past due, then upcoming.
func ClassifyFollowUp(dueAt *time.Time, isCompleted bool, now time.Time) Status {
	if isCompleted {
		return StatusCompleted
	}
	if dueAt == nil {
		return StatusUpcoming
	}
	if dueAt.Before(now) {
		return StatusExpired
	}
	return StatusUpcoming
}

// StatusAt classifies the follow-up at the given instant.
func (f *FollowUp) StatusAt(now time.Time) Status {
	return ClassifyFollowUp(f.DueAt, f.IsCompleted, now)
}

// ClientName returns the joined client name, or "Unknown" when the
// association was not loaded.
func (f *FollowUp) ClientName() string {
	if f.Client != nil && f.Client.Name != "" {
		return f.Client.Name
	}
	return "Unknown"
}

// AssigneeName returns the joined assignee name, or "Unknown" when the
// association was not loaded.
func (f *FollowUp) AssigneeName() string {
	if f.AssignedUser != nil && f.AssignedUser.Name != "" {
		return f.AssignedUser.Name
	}
	return "Unknown"
}

// DisplayNote returns the action reason when one was recorded, otherwise
// the original note.
func (f *FollowUp) DisplayNote() string {
	if f.ActionReason != "" {
		return f.ActionReason
	}
	return f.Note
}

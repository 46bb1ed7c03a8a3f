package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Client struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	AssignedUserID uuid.UUID  `gorm:"type:uuid;index;not null"`
	LeadGenID      *uuid.UUID `gorm:"type:uuid;index"`

	Name           string         `gorm:"not null"`
	PhoneNumbers   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	EmailAddresses datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	WorkEmail      string
	Status         string `gorm:"type:varchar(30);default:'active'"`
	Gender         string
	WebsiteURL     string
	Platform       string // platform the lead came from
	ProfileURL     string
	SudoName       string // alias used on the platform

	Notes     []ClientNote  `gorm:"foreignKey:ClientID"`
	FollowUps []FollowUp    `gorm:"foreignKey:ClientID"`
	Sales     []ServiceSale `gorm:"foreignKey:ClientID"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type ClientNote struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`
	AddedBy  uuid.UUID `gorm:"type:uuid;index;not null"`

	NoteText          string `gorm:"type:text;not null"`
	AssociatedService string
	AssetURL          string // file path in external storage, optional

	CreatedAt time.Time
}

func (n *ClientNote) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}

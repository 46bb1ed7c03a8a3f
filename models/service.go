package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Description string
	Price       float64 `gorm:"type:decimal(10,2);default:0.0"`
	IsActive    bool    `gorm:"default:true"`

	Sales []ServiceSale `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// ServiceSale records a service sold to a client, used by analytics.
type ServiceSale struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid;index;not null"`

	Price  float64 `gorm:"type:decimal(10,2);not null"`
	SoldAt time.Time

	CreatedAt time.Time
}

func (s *ServiceSale) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SoldAt.IsZero() {
		s.SoldAt = time.Now()
	}
	return
}

package services

import (
	"errors"
	"time"

	"metacrm-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a follow-up no longer exists in the store.
var ErrNotFound = errors.New("follow-up not found")

// FollowUpStore is the persistence contract the follow-up services need.
// The gorm implementation is used in production; tests substitute mocks.
type FollowUpStore interface {
	GetByID(id uuid.UUID) (*models.FollowUp, error)
	// ListOpen returns non-completed follow-ups with a due date set,
	// with client and assignee joined.
	ListOpen() ([]models.FollowUp, error)
	// ListOverdue returns non-completed follow-ups due at or before now,
	// ordered by due date.
	ListOverdue(now time.Time) ([]models.FollowUp, error)
	Update(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
}

type AcknowledgmentStore interface {
	HasAcknowledged(followUpID, userID uuid.UUID) (bool, error)
	InsertAck(ack *models.FollowUpAcknowledgment) error
}

type NotificationStore interface {
	InsertNotification(n *models.FollowUpNotification) error
}

type UserStore interface {
	ListAdmins() ([]models.User, error)
}

// GormStore backs all store contracts with the application database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetByID(id uuid.UUID) (*models.FollowUp, error) {
	var fu models.FollowUp
	err := s.db.Preload("Client").Preload("AssignedUser").
		First(&fu, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fu, nil
}

func (s *GormStore) ListOpen() ([]models.FollowUp, error) {
	var followUps []models.FollowUp
	err := s.db.Preload("Client").Preload("AssignedUser").
		Where("is_completed = ? AND due_at IS NOT NULL", false).
		Find(&followUps).Error
	return followUps, err
}

func (s *GormStore) ListOverdue(now time.Time) ([]models.FollowUp, error) {
	var followUps []models.FollowUp
	err := s.db.Preload("Client").Preload("AssignedUser").
		Where("is_completed = ? AND due_at IS NOT NULL AND due_at <= ?", false, now).
		Order("due_at asc").
		Find(&followUps).Error
	return followUps, err
}

func (s *GormStore) Update(id uuid.UUID, fields map[string]interface{}) error {
	result := s.db.Model(&models.FollowUp{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.FollowUp{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) HasAcknowledged(followUpID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.FollowUpAcknowledgment{}).
		Where("follow_up_id = ? AND user_id = ?", followUpID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) InsertAck(ack *models.FollowUpAcknowledgment) error {
	return s.db.Create(ack).Error
}

func (s *GormStore) InsertNotification(n *models.FollowUpNotification) error {
	return s.db.Create(n).Error
}

func (s *GormStore) ListAdmins() ([]models.User, error) {
	var admins []models.User
	err := s.db.Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Find(&admins).Error
	return admins, err
}

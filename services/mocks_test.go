package services

import (
	"time"

	"metacrm-backend/models"

	"github.com/google/uuid"
)

// mockStore implements every store contract with canned data and call
// counters so tests can assert exactly which persistence calls happened.
type mockStore struct {
	followUps []models.FollowUp
	admins    []models.User
	acked     map[[2]uuid.UUID]bool

	notifications []models.FollowUpNotification

	getCalls    int
	updateCalls int
	deleteCalls int
	insertCalls int
	ackCalls    int

	updateErr error
	listErr   error

	lastUpdateID     uuid.UUID
	lastUpdateFields map[string]interface{}
}

func newMockStore() *mockStore {
	return &mockStore{acked: map[[2]uuid.UUID]bool{}}
}

func (m *mockStore) GetByID(id uuid.UUID) (*models.FollowUp, error) {
	m.getCalls++
	for i := range m.followUps {
		if m.followUps[i].ID == id {
			fu := m.followUps[i]
			return &fu, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockStore) ListOpen() ([]models.FollowUp, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var open []models.FollowUp
	for _, fu := range m.followUps {
		if !fu.IsCompleted && fu.DueAt != nil {
			open = append(open, fu)
		}
	}
	return open, nil
}

func (m *mockStore) ListOverdue(now time.Time) ([]models.FollowUp, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var overdue []models.FollowUp
	for _, fu := range m.followUps {
		if !fu.IsCompleted && fu.DueAt != nil && !fu.DueAt.After(now) {
			overdue = append(overdue, fu)
		}
	}
	return overdue, nil
}

func (m *mockStore) Update(id uuid.UUID, fields map[string]interface{}) error {
	m.updateCalls++
	m.lastUpdateID = id
	m.lastUpdateFields = fields
	if m.updateErr != nil {
		return m.updateErr
	}
	for i := range m.followUps {
		if m.followUps[i].ID == id {
			return nil
		}
	}
	return ErrNotFound
}

func (m *mockStore) Delete(id uuid.UUID) error {
	m.deleteCalls++
	for i := range m.followUps {
		if m.followUps[i].ID == id {
			m.followUps = append(m.followUps[:i], m.followUps[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *mockStore) HasAcknowledged(followUpID, userID uuid.UUID) (bool, error) {
	return m.acked[[2]uuid.UUID{followUpID, userID}], nil
}

func (m *mockStore) InsertAck(ack *models.FollowUpAcknowledgment) error {
	m.ackCalls++
	m.acked[[2]uuid.UUID{ack.FollowUpID, ack.UserID}] = true
	return nil
}

func (m *mockStore) InsertNotification(n *models.FollowUpNotification) error {
	m.insertCalls++
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockStore) ListAdmins() ([]models.User, error) {
	return m.admins, nil
}

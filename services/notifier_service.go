package services

import (
	"time"

	"metacrm-backend/models"

	"github.com/google/uuid"
)

// NotifierService backs the overdue-alert poll: overdue follow-ups are
// surfaced to a user until that user acknowledges them. Acknowledging one
// does not advance to the next; the next poll surfaces it.
type NotifierService struct {
	followUps FollowUpStore
	acks      AcknowledgmentStore
	now       func() time.Time
}

func NewNotifierService(followUps FollowUpStore, acks AcknowledgmentStore) *NotifierService {
	return &NotifierService{followUps: followUps, acks: acks, now: time.Now}
}

// DueUnacknowledged returns overdue, non-completed follow-ups the user has
// not yet acknowledged, ordered by due date. The ack check runs per row,
// matching the store's existence-query contract.
func (s *NotifierService) DueUnacknowledged(userID uuid.UUID) ([]models.FollowUp, error) {
	overdue, err := s.followUps.ListOverdue(s.now())
	if err != nil {
		return nil, err
	}

	unacknowledged := make([]models.FollowUp, 0, len(overdue))
	for _, fu := range overdue {
		acked, err := s.acks.HasAcknowledged(fu.ID, userID)
		if err != nil {
			return nil, err
		}
		if !acked {
			unacknowledged = append(unacknowledged, fu)
		}
	}
	return unacknowledged, nil
}

// Acknowledge records that the user has seen the overdue alert. Calling it
// again for the same pair is a no-op.
func (s *NotifierService) Acknowledge(followUpID, userID uuid.UUID) error {
	acked, err := s.acks.HasAcknowledged(followUpID, userID)
	if err != nil {
		return err
	}
	if acked {
		return nil
	}
	return s.acks.InsertAck(&models.FollowUpAcknowledgment{
		FollowUpID:     followUpID,
		UserID:         userID,
		AcknowledgedAt: s.now(),
	})
}

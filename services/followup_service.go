package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"metacrm-backend/models"
	"metacrm-backend/utils"

	"github.com/google/uuid"
)

// ErrValidation marks input errors caught before any store call.
var ErrValidation = errors.New("validation failed")

// MinRescheduleLead is how far in the future a new due date must be.
const MinRescheduleLead = time.Minute

// FollowUpService applies the follow-up state transitions: complete,
// reschedule and delete. Invalid input is rejected synchronously, before
// the store sees anything; on store failure nothing is mutated locally
// and the caller re-fetches.
type FollowUpService struct {
	store FollowUpStore
	now   func() time.Time
}

func NewFollowUpService(store FollowUpStore) *FollowUpService {
	return &FollowUpService{store: store, now: time.Now}
}

// Complete marks a follow-up done. The reason is mandatory and replaces
// the note for display. Completed follow-ups leave the reminder pipeline
// but stay readable.
func (s *FollowUpService) Complete(id uuid.UUID, reason string) error {
	if utils.IsBlank(reason) {
		return fmt.Errorf("%w: a reason is required", ErrValidation)
	}
	reason = strings.TrimSpace(reason)
	return s.store.Update(id, map[string]interface{}{
		"is_completed":  true,
		"action_reason": reason,
	})
}

// Reschedule moves a follow-up to a new due date, which must be strictly
// more than a minute ahead. Rescheduling a completed follow-up reopens it.
func (s *FollowUpService) Reschedule(id uuid.UUID, newDueAt time.Time, reason string) error {
	if utils.IsBlank(reason) {
		return fmt.Errorf("%w: a reason is required", ErrValidation)
	}
	reason = strings.TrimSpace(reason)
	if newDueAt.IsZero() {
		return fmt.Errorf("%w: a new due date is required", ErrValidation)
	}
	if !newDueAt.After(s.now().Add(MinRescheduleLead)) {
		return fmt.Errorf("%w: due date must be in the future", ErrValidation)
	}
	return s.store.Update(id, map[string]interface{}{
		"due_at":        newDueAt.UTC(),
		"action_reason": reason,
		"is_completed":  false,
	})
}

// Remove deletes a follow-up permanently.
func (s *FollowUpService) Remove(id uuid.UUID) error {
	return s.store.Delete(id)
}

// Get loads a single follow-up with its client and assignee joined.
func (s *FollowUpService) Get(id uuid.UUID) (*models.FollowUp, error) {
	return s.store.GetByID(id)
}

// ValidateDueAt enforces the creation-time invariant: a due date must be
// at least a minute ahead of now.
func ValidateDueAt(dueAt, now time.Time) error {
	if dueAt.IsZero() {
		return fmt.Errorf("%w: a due date is required", ErrValidation)
	}
	if !dueAt.After(now.Add(MinRescheduleLead)) {
		return fmt.Errorf("%w: due date must be in the future", ErrValidation)
	}
	return nil
}

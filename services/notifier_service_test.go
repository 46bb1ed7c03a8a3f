package services

import (
	"testing"
	"time"

	"metacrm-backend/models"

	"github.com/google/uuid"
)

func testNotifier(store *mockStore, now time.Time) *NotifierService {
	svc := NewNotifierService(store, store)
	svc.now = func() time.Time { return now }
	return svc
}

func TestDueUnacknowledgedSurfacesOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	overdue := openFollowUp(now.Add(-30 * time.Minute))
	future := openFollowUp(now.Add(time.Hour))
	done := openFollowUp(now.Add(-time.Hour))
	done.IsCompleted = true

	store := newMockStore()
	store.followUps = []models.FollowUp{overdue, future, done}

	svc := testNotifier(store, now)
	due, err := svc.DueUnacknowledged(userID)
	if err != nil {
		t.Fatalf("DueUnacknowledged() error = %v", err)
	}
	if len(due) != 1 || due[0].ID != overdue.ID {
		t.Fatalf("due = %v, want only the overdue follow-up", due)
	}
}

func TestAcknowledgeExcludesFromNextPoll(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	first := openFollowUp(now.Add(-time.Hour))
	second := openFollowUp(now.Add(-30 * time.Minute))

	store := newMockStore()
	store.followUps = []models.FollowUp{first, second}

	svc := testNotifier(store, now)

	due, err := svc.DueUnacknowledged(userID)
	if err != nil {
		t.Fatalf("DueUnacknowledged() error = %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("due = %d items, want 2", len(due))
	}
	// ordered by due date: oldest first
	if due[0].ID != first.ID {
		t.Errorf("first surfaced = %v, want %v", due[0].ID, first.ID)
	}

	if err := svc.Acknowledge(first.ID, userID); err != nil {
		t.Fatalf("Acknowledge() error = %v", err)
	}

	due, err = svc.DueUnacknowledged(userID)
	if err != nil {
		t.Fatalf("DueUnacknowledged() error = %v", err)
	}
	if len(due) != 1 || due[0].ID != second.ID {
		t.Fatalf("due after ack = %v, want only the second follow-up", due)
	}
}

func TestAcknowledgeIsIdempotent(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	fu := openFollowUp(now.Add(-time.Minute))

	store := newMockStore()
	store.followUps = []models.FollowUp{fu}

	svc := testNotifier(store, now)
	if err := svc.Acknowledge(fu.ID, userID); err != nil {
		t.Fatalf("Acknowledge() error = %v", err)
	}
	if err := svc.Acknowledge(fu.ID, userID); err != nil {
		t.Fatalf("second Acknowledge() error = %v", err)
	}
	if store.ackCalls != 1 {
		t.Errorf("ack inserts = %d, want 1", store.ackCalls)
	}
}

func TestAcknowledgmentIsPerUser(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	alice := uuid.New()
	bob := uuid.New()
	fu := openFollowUp(now.Add(-time.Minute))

	store := newMockStore()
	store.followUps = []models.FollowUp{fu}

	svc := testNotifier(store, now)
	if err := svc.Acknowledge(fu.ID, alice); err != nil {
		t.Fatalf("Acknowledge() error = %v", err)
	}

	due, err := svc.DueUnacknowledged(bob)
	if err != nil {
		t.Fatalf("DueUnacknowledged() error = %v", err)
	}
	if len(due) != 1 {
		t.Errorf("another user's ack suppressed the alert: due = %d items, want 1", len(due))
	}
}

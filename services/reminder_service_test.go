package services

import (
	"testing"
	"time"

	"metacrm-backend/models"

	"github.com/google/uuid"
)

func testReminderService(store *mockStore, now time.Time) *ReminderService {
	current := now
	return &ReminderService{
		followUps:     store,
		notifications: store,
		users:         store,
		ledger:        NewMemoryLedger(),
		now:           func() time.Time { return current },
		interval:      time.Minute,
		thresholds:    DefaultThresholds,
	}
}

func TestCheckDueSoonFiresExactlyOnceAtThreshold(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	fu := openFollowUp(now.Add(10 * time.Minute))

	store := newMockStore()
	store.followUps = []models.FollowUp{fu}

	svc := testReminderService(store, now)
	svc.CheckDueSoon()

	if store.insertCalls != 1 {
		t.Fatalf("notification inserts = %d, want 1", store.insertCalls)
	}
	n := store.notifications[0]
	if n.FollowUpID != fu.ID || n.UserID != fu.AssignedUserID {
		t.Errorf("notification for wrong target: %+v", n)
	}
	if n.Status != "" && n.Status != models.NotificationPending {
		t.Errorf("notification status = %q", n.Status)
	}
	if !svc.ledger.HasFired(LedgerKey{FollowUpID: fu.ID, Threshold: 10}) {
		t.Error("ledger key not recorded after firing")
	}

	// Same tick run twice: ledger suppresses the repeat
	svc.CheckDueSoon()
	if store.insertCalls != 1 {
		t.Errorf("notification inserts after double tick = %d, want 1", store.insertCalls)
	}
}

func TestCheckDueSoonNextMinuteDoesNotRefire(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	fu := openFollowUp(now.Add(10 * time.Minute))

	store := newMockStore()
	store.followUps = []models.FollowUp{fu}

	current := now
	svc := testReminderService(store, now)
	svc.now = func() time.Time { return current }

	svc.CheckDueSoon() // diff == 10, fires
	if store.insertCalls != 1 {
		t.Fatalf("inserts after first tick = %d, want 1", store.insertCalls)
	}

	current = now.Add(time.Minute) // diff == 9: no threshold matches
	svc.CheckDueSoon()
	if store.insertCalls != 1 {
		t.Errorf("inserts after second tick = %d, want 1", store.insertCalls)
	}

	current = now.Add(5 * time.Minute) // diff == 5: second threshold fires
	svc.CheckDueSoon()
	if store.insertCalls != 2 {
		t.Errorf("inserts at 5m threshold = %d, want 2", store.insertCalls)
	}
}

func TestCheckDueSoonUsesExactEquality(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// 12 minutes out: between thresholds, nothing fires even though the
	// follow-up is "within" 10 minutes on a later missed tick.
	fu := openFollowUp(now.Add(12 * time.Minute))
	store := newMockStore()
	store.followUps = []models.FollowUp{fu}

	svc := testReminderService(store, now)
	svc.CheckDueSoon()

	if store.insertCalls != 0 {
		t.Errorf("inserts = %d, want 0 (diff 12 matches no threshold)", store.insertCalls)
	}
}

func TestCheckDueSoonSkipsCompletedAndUndated(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	done := openFollowUp(now.Add(10 * time.Minute))
	done.IsCompleted = true
	undated := models.FollowUp{ID: uuid.New(), ClientID: uuid.New(), AssignedUserID: uuid.New()}

	store := newMockStore()
	store.followUps = []models.FollowUp{done, undated}

	svc := testReminderService(store, now)
	svc.CheckDueSoon()

	if store.insertCalls != 0 {
		t.Errorf("inserts = %d, want 0", store.insertCalls)
	}
}

func TestCheckDueSoonNotifiesAdmins(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	fu := openFollowUp(now.Add(5 * time.Minute))

	admin := models.User{ID: uuid.New(), Name: "Admin", Role: models.RoleAdmin}
	store := newMockStore()
	store.followUps = []models.FollowUp{fu}
	store.admins = []models.User{admin}

	svc := testReminderService(store, now)
	svc.CheckDueSoon()

	if store.insertCalls != 2 {
		t.Fatalf("inserts = %d, want 2 (assignee + admin)", store.insertCalls)
	}
	recipients := map[uuid.UUID]bool{}
	for _, n := range store.notifications {
		recipients[n.UserID] = true
	}
	if !recipients[fu.AssignedUserID] || !recipients[admin.ID] {
		t.Errorf("recipients = %v, want assignee and admin", recipients)
	}
}

func TestCheckDueSoonAdminAssigneeGetsOneRow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	admin := models.User{ID: uuid.New(), Name: "Admin", Role: models.RoleAdmin}

	fu := openFollowUp(now.Add(10 * time.Minute))
	fu.AssignedUserID = admin.ID

	store := newMockStore()
	store.followUps = []models.FollowUp{fu}
	store.admins = []models.User{admin}

	svc := testReminderService(store, now)
	svc.CheckDueSoon()

	if store.insertCalls != 1 {
		t.Errorf("inserts = %d, want 1 (admin is the assignee)", store.insertCalls)
	}
}

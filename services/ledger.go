package services

import (
	"sync"

	"github.com/google/uuid"
)

// LedgerKey identifies one fired due-soon alert: a follow-up crossing a
// specific minute threshold.
type LedgerKey struct {
	FollowUpID uuid.UUID
	Threshold  int
}

// NotificationLedger tracks which due-soon alerts already fired so a
// threshold never alerts twice. The default implementation is in-memory
// and process-local: keys are lost on restart, and an alert may repeat
// after one. A persisted implementation can be swapped in without
// touching the detector.
type NotificationLedger interface {
	HasFired(key LedgerKey) bool
	MarkFired(key LedgerKey)
}

// MemoryLedger is the process-local ledger. A slow detector tick can
// overlap the next timer fire, so access is mutex guarded.
type MemoryLedger struct {
	mu    sync.Mutex
	fired map[LedgerKey]struct{}
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{fired: make(map[LedgerKey]struct{})}
}

func (l *MemoryLedger) HasFired(key LedgerKey) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.fired[key]
	return ok
}

func (l *MemoryLedger) MarkFired(key LedgerKey) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fired[key] = struct{}{}
}

// Package progress tracks a care provider's onboarding stage: which setup
// screen they see next, whether they are waiting on review, and whether
// they are approved to take appointments.
package progress

import (
	"fmt"
	"sync"
	"time"
)

type Stage string

const (
	StageBasic        Stage = "basic"
	StageProfessional Stage = "professional"
	StageDocuments    Stage = "documents"
	StageAwaiting     Stage = "awaiting"
	StageApproved     Stage = "approved"
)

// ApprovalDelay is how long a profile sits in "awaiting" before it is
// approved. Review is not modeled server-side; the delay stands in for it.
const ApprovalDelay = 3500 * time.Millisecond

var stageRank = map[Stage]int{
	StageBasic:        0,
	StageProfessional: 1,
	StageDocuments:    2,
	StageAwaiting:     3,
	StageApproved:     4,
}

func (s Stage) Valid() bool {
	_, ok := stageRank[s]
	return ok
}

// Store persists a provider's stage. Saves go to the profile row first and
// are mirrored to the session cache; loads may serve from either, with the
// remote value winning on conflict.
type Store interface {
	Save(userID string, stage Stage) error
	Load(userID string) (Stage, bool, error)
}

// Tracker drives the onboarding state machine. Transitions are strictly
// forward except Reset. Entering "awaiting" schedules an automatic advance
// to "approved" after ApprovalDelay.
type Tracker struct {
	store Store
	delay time.Duration

	// afterFunc is swappable so tests can drive the timer.
	afterFunc func(time.Duration, func()) *time.Timer

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func New(store Store) *Tracker {
	return &Tracker{
		store:     store,
		delay:     ApprovalDelay,
		afterFunc: time.AfterFunc,
		timers:    make(map[string]*time.Timer),
	}
}

// NewWithTimer builds a Tracker with a caller-controlled timer, for tests.
func NewWithTimer(store Store, delay time.Duration, afterFunc func(time.Duration, func()) *time.Timer) *Tracker {
	return &Tracker{
		store:     store,
		delay:     delay,
		afterFunc: afterFunc,
		timers:    make(map[string]*time.Timer),
	}
}

// Current returns the persisted stage, defaulting to basic.
func (t *Tracker) Current(userID string) Stage {
	stage, ok, err := t.store.Load(userID)
	if err != nil || !ok || !stage.Valid() {
		return StageBasic
	}
	return stage
}

// Set moves the provider to next. Going backward is rejected; use Reset for
// the logout path.
func (t *Tracker) Set(userID string, next Stage) error {
	if !next.Valid() {
		return fmt.Errorf("unknown progress stage %q", next)
	}
	current := t.Current(userID)
	if stageRank[next] < stageRank[current] {
		return fmt.Errorf("cannot move progress backward from %s to %s", current, next)
	}
	if err := t.store.Save(userID, next); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[userID]; ok {
		timer.Stop()
		delete(t.timers, userID)
	}
	if next == StageAwaiting {
		t.timers[userID] = t.afterFunc(t.delay, func() {
			t.approve(userID)
		})
	}
	return nil
}

// Reset returns the provider to basic, e.g. on logout.
func (t *Tracker) Reset(userID string) error {
	t.mu.Lock()
	if timer, ok := t.timers[userID]; ok {
		timer.Stop()
		delete(t.timers, userID)
	}
	t.mu.Unlock()
	return t.store.Save(userID, StageBasic)
}

// approve fires from the awaiting timer. A stage that moved on in the
// meantime is left alone.
func (t *Tracker) approve(userID string) {
	t.mu.Lock()
	delete(t.timers, userID)
	t.mu.Unlock()

	if t.Current(userID) != StageAwaiting {
		return
	}
	// Persistence is best-effort here: there is no caller to surface the
	// error to, and the next Set will converge the stores.
	_ = t.store.Save(userID, StageApproved)
}

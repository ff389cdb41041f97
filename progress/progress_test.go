package progress

import (
	"testing"
	"time"
)

type fakeStore struct {
	stages map[string]Stage
}

func newFakeStore() *fakeStore {
	return &fakeStore{stages: make(map[string]Stage)}
}

func (s *fakeStore) Save(userID string, stage Stage) error {
	s.stages[userID] = stage
	return nil
}

func (s *fakeStore) Load(userID string) (Stage, bool, error) {
	stage, ok := s.stages[userID]
	return stage, ok, nil
}

// fakeTimer captures the scheduled callback so tests control the clock.
type fakeTimer struct {
	delay    time.Duration
	callback func()
}

func newTracker(store Store) (*Tracker, *fakeTimer) {
	ft := &fakeTimer{}
	tracker := NewWithTimer(store, ApprovalDelay, func(d time.Duration, f func()) *time.Timer {
		ft.delay = d
		ft.callback = f
		return time.NewTimer(time.Hour) // never fires on its own in tests
	})
	return tracker, ft
}

func TestCurrentDefaultsToBasic(t *testing.T) {
	tracker, _ := newTracker(newFakeStore())
	if got := tracker.Current("u1"); got != StageBasic {
		t.Fatalf("expected basic for unknown user, got %s", got)
	}
}

func TestSetPersistsForward(t *testing.T) {
	store := newFakeStore()
	tracker, _ := newTracker(store)

	for _, next := range []Stage{StageProfessional, StageDocuments} {
		if err := tracker.Set("u1", next); err != nil {
			t.Fatalf("expected forward move to %s to succeed: %v", next, err)
		}
		if tracker.Current("u1") != next {
			t.Fatalf("expected stage %s, got %s", next, tracker.Current("u1"))
		}
	}
}

func TestSetRejectsBackwardAndUnknown(t *testing.T) {
	store := newFakeStore()
	tracker, _ := newTracker(store)

	if err := tracker.Set("u1", StageDocuments); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := tracker.Set("u1", StageBasic); err == nil {
		t.Fatalf("expected backward move to be rejected")
	}
	if err := tracker.Set("u1", Stage("halfway")); err == nil {
		t.Fatalf("expected unknown stage to be rejected")
	}
	if tracker.Current("u1") != StageDocuments {
		t.Fatalf("rejected moves must not change the stage")
	}
}

func TestAwaitingAutoApproves(t *testing.T) {
	store := newFakeStore()
	tracker, timer := newTracker(store)

	if err := tracker.Set("u1", StageAwaiting); err != nil {
		t.Fatalf("failed to enter awaiting: %v", err)
	}
	if timer.callback == nil {
		t.Fatalf("entering awaiting should schedule the approval timer")
	}
	if timer.delay != ApprovalDelay {
		t.Errorf("expected approval delay %v, got %v", ApprovalDelay, timer.delay)
	}
	if tracker.Current("u1") != StageAwaiting {
		t.Fatalf("stage should stay awaiting until the delay elapses")
	}

	// Simulate the delay elapsing: no further caller action.
	timer.callback()

	if got := tracker.Current("u1"); got != StageApproved {
		t.Fatalf("expected approved after the delay, got %s", got)
	}
}

func TestStaleApprovalTimerIsIgnored(t *testing.T) {
	store := newFakeStore()
	tracker, timer := newTracker(store)

	if err := tracker.Set("u1", StageAwaiting); err != nil {
		t.Fatalf("failed to enter awaiting: %v", err)
	}
	callback := timer.callback

	if err := tracker.Reset("u1"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	// The captured callback firing after reset must not resurrect approval.
	callback()

	if got := tracker.Current("u1"); got != StageBasic {
		t.Fatalf("expected basic after reset, got %s", got)
	}
}

func TestResetReturnsToBasic(t *testing.T) {
	store := newFakeStore()
	tracker, _ := newTracker(store)

	if err := tracker.Set("u1", StageApproved); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := tracker.Reset("u1"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if got := tracker.Current("u1"); got != StageBasic {
		t.Fatalf("expected basic after reset, got %s", got)
	}
}

package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"main/model"
	"main/utils"
)

// DayTracker is the persisted "last seen day" surface the orchestrator
// consults. Implemented by services.DayMarkerStore.
type DayTracker interface {
	NeedsReset(ctx context.Context, userID string) (bool, error)
	MarkResetDone(ctx context.Context, userID, day string) error
}

// ResetOrchestrator drives one user's day-rollover state machine:
//
//	Idle -> Checking -> NoResetNeeded
//	Idle -> Checking -> Resetting -> Resolved
//	Idle -> Checking -> Resetting -> Failed
//
// On failure the day marker is left untouched so the next check retries.
type ResetOrchestrator struct {
	mu      sync.Mutex
	userID  string
	store   TaskStore
	tracker DayTracker
	board   *TaskBoard
	timeout time.Duration

	status     model.ResetStatus
	generation uint64

	// onReset receives the outcome of each successful reset, usable by
	// consuming views for a "new day" notification.
	onReset func(model.ResetOutcome)
}

func NewResetOrchestrator(userID string, store TaskStore, tracker DayTracker, board *TaskBoard, timeout time.Duration) *ResetOrchestrator {
	return &ResetOrchestrator{
		userID:  userID,
		store:   store,
		tracker: tracker,
		board:   board,
		timeout: timeout,
		status:  model.ResetIdle,
	}
}

// OnReset registers the new-day notification hook.
func (o *ResetOrchestrator) OnReset(fn func(model.ResetOutcome)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onReset = fn
}

func (o *ResetOrchestrator) Status() model.ResetStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// PerformReset runs the day-boundary check and, when the day has rolled
// over, the full reset. Safe to call on every session start; within an
// unchanged calendar day the answer is stable.
func (o *ResetOrchestrator) PerformReset(ctx context.Context) (model.ResetOutcome, error) {
	o.mu.Lock()
	o.status = model.ResetChecking
	o.generation++
	gen := o.generation
	o.mu.Unlock()

	needs, err := o.tracker.NeedsReset(ctx, o.userID)
	if err != nil {
		// Unreadable marker: force a rebuild from remote truth instead of
		// trusting local state.
		log.Printf("day marker unreadable for user %s: %v", o.userID, err)
		utils.TrackError("reset", "marker_unreadable")
		needs = true
	}

	if !needs {
		o.mu.Lock()
		o.status = model.ResetNoResetNeeded
		o.mu.Unlock()
		utils.TrackReset("not_needed")
		return model.ResetOutcome{Status: model.ResetNoResetNeeded}, nil
	}

	return o.doReset(ctx, gen)
}

// TriggerManualReset is the user-invoked variant; it skips the day-boundary
// check but follows the same success/failure contract.
func (o *ResetOrchestrator) TriggerManualReset(ctx context.Context) (model.ResetOutcome, error) {
	o.mu.Lock()
	o.generation++
	gen := o.generation
	o.mu.Unlock()

	return o.doReset(ctx, gen)
}

func (o *ResetOrchestrator) doReset(ctx context.Context, gen uint64) (model.ResetOutcome, error) {
	o.mu.Lock()
	o.status = model.ResetResetting
	o.mu.Unlock()

	// Let any in-flight board transition settle before invalidating, so a
	// stale server snapshot cannot clobber an optimistic update mid-flight.
	o.waitForBoardSettle(ctx)
	if o.board != nil {
		o.board.Invalidate()
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	tasks, err := o.store.ResetDay(callCtx, o.userID)
	cancel()

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		// Superseded by a newer reset; discard this result.
		return model.ResetOutcome{Status: o.status}, nil
	}

	if err != nil {
		// Marker untouched: the next check repeats the reset.
		o.status = model.ResetFailed
		utils.TrackReset("failed")
		return model.ResetOutcome{Status: model.ResetFailed}, err
	}

	now := time.Now()
	day := model.LocalDay(now)
	if err := o.tracker.MarkResetDone(ctx, o.userID, day); err != nil {
		// The reset itself succeeded and ResetDay is idempotent; the next
		// check simply repeats it.
		log.Printf("failed to persist day marker for user %s: %v", o.userID, err)
		utils.TrackError("reset", "marker_write_failed")
	}

	o.status = model.ResetResolved
	outcome := model.ResetOutcome{
		Status:  model.ResetResolved,
		Day:     day,
		Tasks:   tasks,
		ResetAt: now,
	}
	if o.onReset != nil {
		o.onReset(outcome)
	}
	utils.TrackReset("resolved")
	return outcome, nil
}

// waitForBoardSettle polls until no board transition is in flight or the
// context/timeout gives up.
func (o *ResetOrchestrator) waitForBoardSettle(ctx context.Context) {
	if o.board == nil {
		return
	}
	deadline := time.Now().Add(o.timeout)
	for o.board.InFlightCount() > 0 {
		if ctx.Err() != nil || time.Now().After(deadline) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

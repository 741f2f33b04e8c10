package usecase

import (
	"context"
	"sync"
	"time"

	"main/model"
	"main/utils"
)

// TaskBoard holds a user's visible tasks partitioned into exactly two
// buckets, pending and completed. The partition is derived from each task's
// CompletedToday flag, so a task is in exactly one bucket by construction.
//
// Transitions are optimistic: the board mutates its copy first, then issues
// the store call, and restores the captured snapshot if the store rejects.
// Only the task's own in-flight transition may write its fields.
type TaskBoard struct {
	mu      sync.RWMutex
	userID  string
	store   TaskStore
	timeout time.Duration

	tasks       map[string]*model.Task
	inFlight    map[string]bool
	seq         map[string]uint64
	needsResync map[string]bool
	loaded      bool
}

// snapshot captures the exact pre-optimistic state of a transition so
// rollback restores bucket membership and every counter, not just the flag.
type snapshot struct {
	completedToday   bool
	currentStreak    int
	longestStreak    int
	totalCompletions int
	lastCompletedAt  time.Time
}

func NewTaskBoard(userID string, store TaskStore, timeout time.Duration) *TaskBoard {
	return &TaskBoard{
		userID:      userID,
		store:       store,
		timeout:     timeout,
		tasks:       make(map[string]*model.Task),
		inFlight:    make(map[string]bool),
		seq:         make(map[string]uint64),
		needsResync: make(map[string]bool),
	}
}

// Load replaces the board content from a fresh store list. Also the recovery
// path for invariant violations and stale tasks: rebuild from remote truth
// rather than repair in place.
func (b *TaskBoard) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	tasks, err := b.store.ListTasks(ctx, b.userID, model.TaskFilter{View: model.ViewToday})
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	fresh := make(map[string]*model.Task, len(tasks))
	for _, task := range tasks {
		copied := *task
		fresh[task.TaskID] = &copied
	}

	// Tasks with an unsettled transition keep their optimistic state; the
	// transition's own handler reconciles them.
	for id := range b.inFlight {
		if current, ok := b.tasks[id]; ok {
			fresh[id] = current
		}
	}

	b.tasks = fresh
	b.needsResync = make(map[string]bool)
	b.loaded = true
	return nil
}

// Invalidate marks the board stale so the next read reloads. Deferred while
// any transition is in flight; the caller retries after the board settles.
func (b *TaskBoard) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.inFlight) > 0 {
		return
	}
	b.loaded = false
}

func (b *TaskBoard) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loaded
}

// Pending returns the pending bucket sorted by creation time.
func (b *TaskBoard) Pending() []*model.Task {
	return b.bucket(model.BucketPending)
}

// Completed returns the completed bucket sorted by creation time.
func (b *TaskBoard) Completed() []*model.Task {
	return b.bucket(model.BucketCompleted)
}

func (b *TaskBoard) bucket(want model.Bucket) []*model.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*model.Task
	for _, task := range b.tasks {
		if task.Bucket() == want {
			copied := *task
			out = append(out, &copied)
		}
	}
	sortTasks(out, model.SortByCreated)
	return out
}

// Task returns a copy of one board task.
func (b *TaskBoard) Task(taskID string) (*model.Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	task, ok := b.tasks[taskID]
	if !ok {
		return nil, false
	}
	copied := *task
	return &copied, true
}

// InFlightCount reports how many transitions have not settled.
func (b *TaskBoard) InFlightCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.inFlight)
}

// ApplyTransition is the generic entry point for direct-manipulation input:
// "task X wants to be in bucket Y", regardless of how the request was made.
// Dropping a task onto its current bucket is a no-op and issues no call.
func (b *TaskBoard) ApplyTransition(ctx context.Context, taskID string, target model.Bucket) (int, error) {
	b.mu.RLock()
	task, ok := b.tasks[taskID]
	var current model.Bucket
	if ok {
		current = task.Bucket()
	}
	b.mu.RUnlock()

	if !ok {
		return 0, ErrTaskNotFound
	}
	if current == target {
		utils.TrackBoardTransition("noop")
		return 0, nil
	}

	switch target {
	case model.BucketCompleted:
		return b.RequestComplete(ctx, taskID)
	default:
		return 0, b.RequestUncomplete(ctx, taskID)
	}
}

// RequestComplete optimistically moves a pending task to completed and
// confirms with the store. Returns the XP earned on confirmation.
func (b *TaskBoard) RequestComplete(ctx context.Context, taskID string) (int, error) {
	b.mu.Lock()
	task, ok := b.tasks[taskID]
	if !ok {
		b.mu.Unlock()
		return 0, ErrTaskNotFound
	}
	if task.CompletedToday {
		b.mu.Unlock()
		utils.TrackBoardTransition("rejected")
		return 0, ErrTaskAlreadyComplete
	}
	if b.inFlight[taskID] {
		b.mu.Unlock()
		utils.TrackBoardTransition("rejected")
		return 0, ErrTransitionInFlight
	}

	snap := capture(task)

	// Optimistic apply.
	task.CompletedToday = true
	task.TotalCompletions++
	task.CurrentStreak++
	if task.CurrentStreak > task.LongestStreak {
		task.LongestStreak = task.CurrentStreak
	}
	task.LastCompletedAt = time.Now()

	b.inFlight[taskID] = true
	b.seq[taskID]++
	mySeq := b.seq[taskID]
	b.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	xp, err := b.store.CompleteTask(callCtx, b.userID, taskID)
	cancel()

	return xp, b.settle(taskID, mySeq, snap, err, "complete")
}

// RequestUncomplete optimistically moves a completed task back to pending.
func (b *TaskBoard) RequestUncomplete(ctx context.Context, taskID string) error {
	b.mu.Lock()
	task, ok := b.tasks[taskID]
	if !ok {
		b.mu.Unlock()
		return ErrTaskNotFound
	}
	if !task.CompletedToday {
		b.mu.Unlock()
		utils.TrackBoardTransition("rejected")
		return ErrTaskNotComplete
	}
	if b.inFlight[taskID] {
		b.mu.Unlock()
		utils.TrackBoardTransition("rejected")
		return ErrTransitionInFlight
	}

	snap := capture(task)

	task.CompletedToday = false
	if task.CurrentStreak > 0 {
		task.CurrentStreak--
	}
	if task.TotalCompletions > 0 {
		task.TotalCompletions--
	}

	b.inFlight[taskID] = true
	b.seq[taskID]++
	mySeq := b.seq[taskID]
	b.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	err := b.store.UncompleteTask(callCtx, b.userID, taskID)
	cancel()

	return b.settle(taskID, mySeq, snap, err, "uncomplete")
}

// settle reconciles a transition's result: keep the optimistic state on
// confirmation, restore the snapshot on rejection. Results of superseded
// transitions are discarded.
func (b *TaskBoard) settle(taskID string, mySeq uint64, snap snapshot, err error, op string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.inFlight, taskID)

	if b.seq[taskID] != mySeq {
		// A newer transition has since run; its handler owns the state.
		return err
	}

	if err == nil {
		utils.TrackBoardTransition("confirmed")
		return nil
	}

	if task, ok := b.tasks[taskID]; ok {
		restore(task, snap)
	}
	if IsStaleState(err) {
		// Local assumption about the bucket was wrong; the next list fetch
		// corrects this task.
		b.needsResync[taskID] = true
	}
	utils.TrackBoardTransition("rolled_back")
	utils.TrackError("board", op+"_rollback")
	return err
}

// NeedsResync reports whether any task hit a stale-state rejection since the
// last load.
func (b *TaskBoard) NeedsResync() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.needsResync) > 0
}

func capture(task *model.Task) snapshot {
	return snapshot{
		completedToday:   task.CompletedToday,
		currentStreak:    task.CurrentStreak,
		longestStreak:    task.LongestStreak,
		totalCompletions: task.TotalCompletions,
		lastCompletedAt:  task.LastCompletedAt,
	}
}

func restore(task *model.Task, snap snapshot) {
	task.CompletedToday = snap.completedToday
	task.CurrentStreak = snap.currentStreak
	task.LongestStreak = snap.longestStreak
	task.TotalCompletions = snap.totalCompletions
	task.LastCompletedAt = snap.lastCompletedAt
}

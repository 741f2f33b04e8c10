package usecase

import (
	"context"
	"sync"
	"time"

	"main/utils"
)

// BoardSession bundles one user's board with its reset orchestrator.
type BoardSession struct {
	Board        *TaskBoard
	Orchestrator *ResetOrchestrator
}

// BoardManager owns one BoardSession per user, created lazily on first board
// access and dropped on logout.
type BoardManager struct {
	mu       sync.Mutex
	store    TaskStore
	tracker  DayTracker
	timeout  time.Duration
	sessions map[string]*BoardSession
}

func NewBoardManager(store TaskStore, tracker DayTracker, timeout time.Duration) *BoardManager {
	return &BoardManager{
		store:    store,
		tracker:  tracker,
		timeout:  timeout,
		sessions: make(map[string]*BoardSession),
	}
}

// Session returns the user's board session, creating it on first use.
func (m *BoardManager) Session(userID string) *BoardSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[userID]; ok {
		return session
	}

	board := NewTaskBoard(userID, m.store, m.timeout)
	session := &BoardSession{
		Board:        board,
		Orchestrator: NewResetOrchestrator(userID, m.store, m.tracker, board, m.timeout),
	}
	m.sessions[userID] = session
	utils.ActiveBoards.Inc()
	return session
}

// InvalidateBoard marks an existing board stale after an out-of-band task
// mutation. A user without a live board session has nothing to invalidate.
func (m *BoardManager) InvalidateBoard(userID string) {
	m.mu.Lock()
	session, ok := m.sessions[userID]
	m.mu.Unlock()
	if ok {
		session.Board.Invalidate()
	}
}

// Drop discards the user's board session. Called on logout and account
// switch.
func (m *BoardManager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[userID]; ok {
		delete(m.sessions, userID)
		utils.ActiveBoards.Dec()
	}
}

// EnsureFresh runs the day-boundary check before the board is read, so the
// check always completes before a task-list read is considered fresh. The
// board is (re)loaded when the reset resolved, the board was invalidated, or
// a task needs resync after a stale-state rejection.
func (m *BoardManager) EnsureFresh(ctx context.Context, userID string) (*BoardSession, error) {
	session := m.Session(userID)

	if _, err := session.Orchestrator.PerformReset(ctx); err != nil {
		return nil, err
	}

	if !session.Board.Loaded() || session.Board.NeedsResync() {
		if err := session.Board.Load(ctx); err != nil {
			return nil, err
		}
	}

	return session, nil
}

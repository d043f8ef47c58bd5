// Package session ties an engine to a store: it serializes action
// dispatch, persists after every state change, and runs a periodic
// autosave as a backstop.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/streetbook/internal/engine"
	"github.com/lox/streetbook/internal/store"
)

const autosaveInterval = 30 * time.Second

type Session struct {
	mu     sync.Mutex
	engine *engine.Engine
	store  store.Store
	state  *engine.GameState
	logger *log.Logger
	clock  quartz.Clock
	dirty  bool
}

// New creates a session around an existing state snapshot.
func New(eng *engine.Engine, st store.Store, state *engine.GameState, logger *log.Logger, clock quartz.Clock) *Session {
	return &Session{
		engine: eng,
		store:  st,
		state:  state,
		logger: logger.WithPrefix("session"),
		clock:  clock,
	}
}

// LoadOrNew resumes the stored game if one exists, otherwise starts a
// fresh one. A finished save is discarded rather than resumed.
func LoadOrNew(ctx context.Context, eng *engine.Engine, st store.Store, logger *log.Logger, clock quartz.Clock) (*Session, error) {
	state, found, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	if found && !state.IsGameOver {
		logger.Info("resuming saved game", "week", state.Week, "day", state.Day)
		return New(eng, st, state, logger, clock), nil
	}

	state = eng.NewState()
	s := New(eng, st, state, logger, clock)
	s.persist(ctx)
	return s, nil
}

// State returns the current snapshot. Callers must not mutate it.
func (s *Session) State() *engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces an action against the current state and persists the
// result. Persistence is best effort: a failed save is logged and play
// continues.
func (s *Session) Dispatch(ctx context.Context, action engine.Action) *engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.engine.Reduce(s.state, action)
	if next == s.state {
		return s.state
	}
	s.state = next
	s.dirty = true
	s.persistLocked(ctx)
	return s.state
}

// StartAutosave saves the session on a ticker until ctx is cancelled.
// Saves are skipped while nothing has changed.
func (s *Session) StartAutosave(ctx context.Context) {
	ticker := s.clock.TickerFunc(ctx, autosaveInterval, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.dirty {
			return nil
		}
		s.persistLocked(ctx)
		return nil
	}, "autosave")

	go func() {
		_ = ticker.Wait()
	}()
}

func (s *Session) persist(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked(ctx)
}

func (s *Session) persistLocked(ctx context.Context) {
	// The slot keeps the last playable snapshot; a finished game is
	// never written over it.
	if s.state.IsGameOver {
		s.dirty = false
		return
	}
	if err := s.store.Save(ctx, s.state); err != nil {
		s.logger.Error("save failed", "error", err)
		return
	}
	s.dirty = false
}

// Close flushes and releases the backing store.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		s.persistLocked(ctx)
	}
	return s.store.Close()
}

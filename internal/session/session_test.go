package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/streetbook/internal/engine"
	"github.com/lox/streetbook/internal/missions"
	"github.com/lox/streetbook/internal/randutil"
	"github.com/lox/streetbook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyStore wraps a MemoryStore and counts saves.
type spyStore struct {
	*store.MemoryStore
	mu      sync.Mutex
	saves   int
	saveErr error
}

func newSpyStore() *spyStore {
	return &spyStore{MemoryStore: store.NewMemory()}
}

func (s *spyStore) Save(ctx context.Context, state *engine.GameState) error {
	s.mu.Lock()
	s.saves++
	err := s.saveErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.MemoryStore.Save(ctx, state)
}

func (s *spyStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func testEngine(seed int64) *engine.Engine {
	return engine.New(engine.DefaultRules(), randutil.New(seed), log.New(io.Discard))
}

func TestLoadOrNewStartsFresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newSpyStore()

	s, err := LoadOrNew(ctx, testEngine(1), st, log.New(io.Discard), quartz.NewReal())
	require.NoError(t, err)

	assert.Equal(t, 1, s.State().Week)
	assert.Equal(t, 1, st.saveCount(), "a fresh game is saved immediately")
}

func TestLoadOrNewResumesSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newSpyStore()

	saved := testEngine(2).NewState()
	saved.Bankroll = 7777
	require.NoError(t, st.MemoryStore.Save(ctx, saved))

	s, err := LoadOrNew(ctx, testEngine(2), st, log.New(io.Discard), quartz.NewReal())
	require.NoError(t, err)
	assert.Equal(t, 7777, s.State().Bankroll)
}

func TestLoadOrNewDiscardsFinishedSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newSpyStore()

	done := testEngine(3).NewState()
	done.IsGameOver = true
	done.Bankroll = 1
	require.NoError(t, st.MemoryStore.Save(ctx, done))

	s, err := LoadOrNew(ctx, testEngine(3), st, log.New(io.Discard), quartz.NewReal())
	require.NoError(t, err)
	assert.False(t, s.State().IsGameOver, "finished saves start a new game")
	assert.NotEqual(t, 1, s.State().Bankroll)
}

func TestDispatchPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newSpyStore()

	s, err := LoadOrNew(ctx, testEngine(4), st, log.New(io.Discard), quartz.NewReal())
	require.NoError(t, err)
	saves := st.saveCount()

	next := s.Dispatch(ctx, engine.EndDay{})
	assert.Equal(t, 2, next.Day)
	assert.Equal(t, saves+1, st.saveCount(), "every state change is persisted")

	loaded, found, err := st.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, loaded.Day)
}

func TestDispatchNoOpSkipsSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newSpyStore()

	s, err := LoadOrNew(ctx, testEngine(5), st, log.New(io.Discard), quartz.NewReal())
	require.NoError(t, err)
	saves := st.saveCount()

	// Simulating before game day is rejected by the reducer.
	s.Dispatch(ctx, engine.SimulateGames{})
	assert.Equal(t, saves, st.saveCount(), "rejected actions do not hit the store")
}

func TestDispatchSurvivesSaveFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newSpyStore()

	s, err := LoadOrNew(ctx, testEngine(6), st, log.New(io.Discard), quartz.NewReal())
	require.NoError(t, err)

	st.mu.Lock()
	st.saveErr = errors.New("disk full")
	st.mu.Unlock()

	next := s.Dispatch(ctx, engine.EndDay{})
	assert.Equal(t, 2, next.Day, "play continues even when saving fails")
}

func TestDispatchSkipsTerminalSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newSpyStore()
	eng := testEngine(9)

	// A zero-risk mission hot enough to blow the heat limit.
	state := eng.NewState()
	state.Heat = 95
	state.AvailableMissions = append(state.AvailableMissions, missions.Mission{
		ID:     "last-favor",
		Type:   missions.TypeCollect,
		Reward: missions.Reward{Heat: 50},
	})

	s := New(eng, st, state, log.New(io.Discard), quartz.NewReal())
	require.NoError(t, st.MemoryStore.Save(ctx, state))
	before := st.saveCount()

	next := s.Dispatch(ctx, engine.DoMission{MissionID: "last-favor"})
	require.True(t, next.IsGameOver)
	assert.Equal(t, before, st.saveCount(), "finished games are not written to the slot")

	require.NoError(t, s.Close(ctx))
	loaded, found, err := st.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, loaded.IsGameOver, "the slot keeps the last playable snapshot")
	assert.Equal(t, 95, loaded.Heat)
}

func TestAutosave(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := newSpyStore()
	mock := quartz.NewMock(t)

	s, err := LoadOrNew(ctx, testEngine(7), st, log.New(io.Discard), mock)
	require.NoError(t, err)
	s.StartAutosave(ctx)

	// Clean session: the tick fires but nothing is written.
	base := st.saveCount()
	mock.Advance(autosaveInterval).MustWait(ctx)
	assert.Equal(t, base, st.saveCount(), "clean sessions skip the autosave write")

	// Dirty the session behind the store's back, then tick again.
	st.mu.Lock()
	st.saveErr = errors.New("transient")
	st.mu.Unlock()
	s.Dispatch(ctx, engine.EndDay{}) // save fails, session stays dirty
	st.mu.Lock()
	st.saveErr = nil
	st.mu.Unlock()

	before := st.saveCount()
	mock.Advance(autosaveInterval).MustWait(ctx)
	assert.Equal(t, before+1, st.saveCount(), "dirty sessions are flushed on the tick")
}

func TestCloseFlushes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newSpyStore()

	s, err := LoadOrNew(ctx, testEngine(8), st, log.New(io.Discard), quartz.NewReal())
	require.NoError(t, err)

	st.mu.Lock()
	st.saveErr = errors.New("transient")
	st.mu.Unlock()
	s.Dispatch(ctx, engine.EndDay{})
	st.mu.Lock()
	st.saveErr = nil
	st.mu.Unlock()

	before := st.saveCount()
	require.NoError(t, s.Close(ctx))
	assert.Equal(t, before+1, st.saveCount(), "close flushes pending changes")

	loaded, found, err := st.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, loaded.Day)
}

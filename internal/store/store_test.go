package store_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/testing/suite"
)

type mockListener struct {
	mock.Mock
}

func (that *mockListener) OnChange() {
	that.Called()
}

func TestStore_New(t *testing.T) {
	_, st := suite.New(t)

	// Then: a new store holds only the initial snapshot
	assert.Len(t, st.Store.History(), 1)
	assert.Equal(t, 0, st.Store.StepNumber())
	assert.Equal(t, entity.NewSnapshot(), st.Store.CurrentSnapshot())
}

func TestStore_ID(t *testing.T) {
	_, first := suite.New(t)
	_, second := suite.New(t)

	// Then: every store gets its own valid uuid
	_, err := uuid.Parse(first.Store.ID())
	require.NoError(t, err)
	assert.NotEqual(t, first.Store.ID(), second.Store.ID())
}

func TestStore_ApplyMove(t *testing.T) {
	t.Run("Top row win", func(t *testing.T) {
		_, st := suite.New(t)

		// When: X takes the top row
		st.PlayMoves(0, 4, 1, 5, 2)

		// Then: X wins with six snapshots and the cursor at the end
		assert.Equal(t, entity.PlayerX, st.Store.CurrentSnapshot().Winner)
		assert.Len(t, st.Store.History(), 6)
		assert.Equal(t, 5, st.Store.StepNumber())
	})

	t.Run("Second move into the same cell is a no-op", func(t *testing.T) {
		_, st := suite.New(t)

		// Given: X played cell 0
		st.PlayMoves(0)
		before := st.Store.State()

		// When: cell 0 is played again
		changed, err := st.Store.ApplyMove(0)

		// Then: nothing changed
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, before, st.Store.State())
		assert.Len(t, st.Store.History(), 2)
	})

	t.Run("Invalid cell returns ErrInvalidCell", func(t *testing.T) {
		_, st := suite.New(t)

		// When: a cell outside the board is played
		changed, err := st.Store.ApplyMove(9)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.False(t, changed)
		assert.Len(t, st.Store.History(), 1)
	})

	t.Run("Branch truncation after a jump", func(t *testing.T) {
		_, st := suite.New(t)

		// Given: five snapshots with the cursor at the end
		st.PlayMoves(0, 4, 1, 5)
		old := st.Store.History()
		require.Len(t, old, 5)

		// When: jumping to step 2 and playing cell 8
		require.NoError(t, st.Store.JumpTo(2))
		st.PlayMoves(8)

		// Then: old steps 3 and 4 are gone
		history := st.Store.History()
		require.Len(t, history, 4)
		assert.Equal(t, old[:3], history[:3])
		assert.Equal(t, old[2].Play(8), history[3])
		assert.Equal(t, 3, st.Store.StepNumber())
	})
}

func TestStore_JumpTo(t *testing.T) {
	t.Run("Jump to start shows the initial snapshot", func(t *testing.T) {
		_, st := suite.New(t)

		// Given: X won the game
		st.PlayMoves(0, 4, 1, 5, 2)

		// When: jumping to step 0
		require.NoError(t, st.Store.JumpTo(0))

		// Then: the empty board with X to play is current, history is kept
		current := st.Store.CurrentSnapshot()
		assert.Equal(t, entity.Board{}, current.Board)
		assert.True(t, current.NextIsX)
		assert.Len(t, st.Store.History(), 6)
	})

	t.Run("Out of range step is rejected", func(t *testing.T) {
		_, st := suite.New(t)
		st.PlayMoves(0)

		// When: jumping past the end of history
		err := st.Store.JumpTo(2)

		// Then: ErrInvalidStep is returned and the cursor stays
		require.ErrorIs(t, err, apperror.ErrInvalidStep)
		assert.Equal(t, 1, st.Store.StepNumber())
	})
}

func TestStore_Subscribe(t *testing.T) {
	t.Run("Listeners are notified after successful mutations only", func(t *testing.T) {
		_, st := suite.New(t)

		listener := &mockListener{}
		listener.On("OnChange").Return().Times(2)
		st.Store.Subscribe(listener.OnChange)

		// When: one move, one ignored move, one rejected jump and one jump
		st.PlayMoves(4)
		_, err := st.Store.ApplyMove(4)
		require.NoError(t, err)
		require.Error(t, st.Store.JumpTo(5))
		require.NoError(t, st.Store.JumpTo(0))

		// Then: the listener ran twice
		listener.AssertExpectations(t)
	})

	t.Run("Listeners run in registration order and see committed state", func(t *testing.T) {
		_, st := suite.New(t)

		var calls []string
		var seen []int
		st.Store.Subscribe(func() {
			calls = append(calls, "first")
			seen = append(seen, len(st.Store.History()))
		})
		st.Store.Subscribe(func() { calls = append(calls, "second") })

		// When: a move is applied
		st.PlayMoves(0)

		// Then: both listeners ran in order after the snapshot was appended
		assert.Equal(t, []string{"first", "second"}, calls)
		assert.Equal(t, []int{2}, seen)
	})

	t.Run("Unsubscribed listener is not called", func(t *testing.T) {
		_, st := suite.New(t)

		listener := &mockListener{}
		listener.On("OnChange").Return().Once()
		unsubscribe := st.Store.Subscribe(listener.OnChange)

		// When: one move is made, the listener is removed, and another move is made
		st.PlayMoves(0)
		unsubscribe()
		unsubscribe()
		st.PlayMoves(1)

		// Then: the listener ran once
		listener.AssertExpectations(t)
	})

	t.Run("Listener removed by an earlier listener does not fire", func(t *testing.T) {
		_, st := suite.New(t)

		called := false
		var unsubscribeSecond func()
		st.Store.Subscribe(func() { unsubscribeSecond() })
		unsubscribeSecond = st.Store.Subscribe(func() { called = true })

		// When: a move is applied
		st.PlayMoves(0)

		// Then: the second listener was removed before its turn
		assert.False(t, called)
	})
}

func TestStore_ConcurrentMutations(t *testing.T) {
	_, st := suite.New(t)

	var notified, applied atomic.Int64
	st.Store.Subscribe(func() {
		notified.Add(1)
		_ = st.Store.CurrentSnapshot()
	})

	// When: every cell is played from its own goroutine while others jump back to the start
	var wg sync.WaitGroup
	for cell := 0; cell < entity.BoardSize; cell++ {
		wg.Add(1)
		go func(cell int) {
			defer wg.Done()

			changed, err := st.Store.ApplyMove(cell)
			assert.NoError(t, err)
			if changed {
				applied.Add(1)
			}

			if cell%3 == 0 {
				assert.NoError(t, st.Store.JumpTo(0))
				applied.Add(1)
			}
		}(cell)
	}
	wg.Wait()

	// Then: the history is still a valid line of play
	state := st.Store.State()
	require.NotEmpty(t, state.History)
	assert.Equal(t, entity.NewSnapshot(), state.History[0])
	assert.Less(t, state.StepNumber, len(state.History))
	for n := 1; n < len(state.History); n++ {
		prev, curr := state.History[n-1], state.History[n]
		assert.Equal(t, !prev.NextIsX, curr.NextIsX, "step %d", n)

		changedCells := 0
		for i := range curr.Board {
			if prev.Board[i] != curr.Board[i] {
				changedCells++
				assert.True(t, prev.Board[i].IsEmpty(), "step %d overwrote cell %d", n, i)
			}
		}
		assert.Equal(t, 1, changedCells, "step %d", n)
	}

	// And: every successful mutation notified the listener exactly once
	assert.Equal(t, applied.Load(), notified.Load())
}

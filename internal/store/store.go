package store

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type subscription struct {
	id       uint64
	listener func()
}

// Store is the single source of truth for one game session.
// All mutations go through the reducer under one lock; listeners run after the lock is released.
type Store struct {
	id     string
	logger *slog.Logger

	mu          sync.Mutex
	state       tictactoe.State
	subscribers []subscription
	nextID      uint64
}

func New(logger *slog.Logger) *Store {
	id := uuid.NewString()

	return &Store{
		id:     id,
		logger: logger.With("component", "store", "session", id),
		state:  tictactoe.NewState(),
	}
}

// ID - returns the session id generated for this store.
func (that *Store) ID() string {
	return that.id
}

// ApplyMove - places the next mark into the cell.
// Returns false without error when the cell is taken or the game is already won.
func (that *Store) ApplyMove(cell int) (bool, error) {
	changed, err := that.Dispatch(tictactoe.MoveAction{Cell: cell})
	if err != nil {
		return false, fmt.Errorf("failed to apply move: %w", err)
	}

	return changed, nil
}

// JumpTo - moves the cursor to the step. Steps outside the history are rejected.
func (that *Store) JumpTo(step int) error {
	if _, err := that.Dispatch(tictactoe.JumpAction{Step: step}); err != nil {
		return fmt.Errorf("failed to jump: %w", err)
	}

	return nil
}

// Dispatch - applies any reducer action and notifies listeners when it had an effect.
func (that *Store) Dispatch(action tictactoe.Action) (bool, error) {
	log := that.logger.With("method", "Dispatch", "action", fmt.Sprintf("%T", action))

	that.mu.Lock()
	next, changed, err := tictactoe.Reduce(that.state, action)
	if err != nil {
		that.mu.Unlock()
		log.Warn("action rejected", "error", err)

		return false, err
	}

	if !changed {
		step := that.state.StepNumber
		that.mu.Unlock()
		log.Debug("action ignored", "step", step)

		return false, nil
	}

	that.state = next
	subscribers := make([]subscription, len(that.subscribers))
	copy(subscribers, that.subscribers)
	that.mu.Unlock()

	log.Debug("action applied", "step", next.StepNumber, "history", len(next.History))

	that.notify(subscribers)

	return true, nil
}

// notify - calls the listeners in registration order, skipping any removed by an earlier listener.
func (that *Store) notify(subscribers []subscription) {
	for _, sub := range subscribers {
		if !that.isSubscribed(sub.id) {
			continue
		}

		sub.listener()
	}
}

func (that *Store) isSubscribed(id uint64) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, sub := range that.subscribers {
		if sub.id == id {
			return true
		}
	}

	return false
}

// Subscribe - registers a listener called after every successful mutation
// and returns a function that removes it. The returned function is safe to call more than once.
func (that *Store) Subscribe(listener func()) func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.nextID++
	id := that.nextID
	that.subscribers = append(that.subscribers, subscription{id: id, listener: listener})

	var once sync.Once

	return func() {
		once.Do(func() {
			that.unsubscribe(id)
		})
	}
}

func (that *Store) unsubscribe(id uint64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for i, sub := range that.subscribers {
		if sub.id == id {
			that.subscribers = append(that.subscribers[:i:i], that.subscribers[i+1:]...)
			return
		}
	}
}

func (that *Store) CurrentSnapshot() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state.Current()
}

// History - returns a copy of every snapshot of the active branch.
func (that *Store) History() []entity.Snapshot {
	return that.State().History
}

func (that *Store) StepNumber() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state.StepNumber
}

// State - returns a consistent copy of history and cursor.
func (that *Store) State() tictactoe.State {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state.Clone()
}

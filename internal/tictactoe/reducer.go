package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// State is the whole game: every snapshot of the active branch and the step being shown.
type State struct {
	History    []entity.Snapshot `json:"history"`
	StepNumber int               `json:"step_number"`
}

// Action is a command the reducer knows how to apply.
type Action interface {
	isAction()
}

// MoveAction places the next mark into Cell, branching off the current step.
type MoveAction struct {
	Cell int `mapstructure:"cell"`
}

// JumpAction moves the cursor to Step without touching the history.
type JumpAction struct {
	Step int `mapstructure:"step"`
}

func (MoveAction) isAction() {}
func (JumpAction) isAction() {}

func NewState() State {
	return State{
		History:    []entity.Snapshot{entity.NewSnapshot()},
		StepNumber: 0,
	}
}

func (that State) Current() entity.Snapshot {
	return that.History[that.StepNumber]
}

// Clone - returns a copy that shares nothing mutable with the receiver.
func (that State) Clone() State {
	history := make([]entity.Snapshot, len(that.History))
	copy(history, that.History)

	return State{History: history, StepNumber: that.StepNumber}
}

// Reduce - applies the action and returns the next state.
// The bool is false when the action had no effect, in which case the input state is returned.
// The input state is never modified.
func Reduce(state State, action Action) (State, bool, error) {
	switch act := action.(type) {
	case MoveAction:
		return applyMove(state, act.Cell)
	case JumpAction:
		return jumpTo(state, act.Step)
	default:
		return state, false, fmt.Errorf("%w: %T", apperror.ErrUnknownAction, action)
	}
}

func applyMove(state State, cell int) (State, bool, error) {
	if !entity.IsValidCell(cell) {
		return state, false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	current := state.Current()
	if !current.CanPlay(cell) {
		return state, false, nil
	}

	// drop the abandoned future before appending
	history := make([]entity.Snapshot, state.StepNumber+1, state.StepNumber+2)
	copy(history, state.History[:state.StepNumber+1])
	history = append(history, current.Play(cell))

	return State{
		History:    history,
		StepNumber: len(history) - 1,
	}, true, nil
}

func jumpTo(state State, step int) (State, bool, error) {
	if step < 0 || step >= len(state.History) {
		return state, false, fmt.Errorf("%w: step %d of %d", apperror.ErrInvalidStep, step, len(state.History))
	}

	return State{
		History:    state.History,
		StepNumber: step,
	}, true, nil
}

package view

import (
	"strconv"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

// Labels are the texts used for the move list and the status line.
type Labels struct {
	Start      string
	Move       string
	Winner     string
	NextPlayer string
}

func DefaultLabels() Labels {
	return Labels{
		Start:      "Game start",
		Move:       "Move #",
		Winner:     "Winner: ",
		NextPlayer: "Next player: ",
	}
}

type Square struct {
	Index     int    `json:"index"`
	Value     string `json:"value"`
	Clickable bool   `json:"clickable"`
}

type Move struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// Props is everything a renderer needs to draw one frame.
type Props struct {
	Squares    [entity.BoardSize]Square `json:"squares"`
	Status     string                   `json:"status"`
	Winner     string                   `json:"winner,omitempty"`
	NextPlayer string                   `json:"next_player,omitempty"`
	Draw       bool                     `json:"draw"`
	Moves      []Move                   `json:"moves"`
	StepNumber int                      `json:"step_number"`
}

// MapStateToProps - derives view props from the store state. It has no side effects.
func MapStateToProps(state tictactoe.State, labels Labels) Props {
	current := state.Current()

	props := Props{
		Moves:      make([]Move, 0, len(state.History)),
		StepNumber: state.StepNumber,
	}

	for i, cell := range current.Board {
		props.Squares[i] = Square{
			Index:     i,
			Value:     string(cell),
			Clickable: current.CanPlay(i),
		}
	}

	if current.IsFinished() {
		props.Winner = string(current.Winner)
		props.Status = labels.Winner + props.Winner
	} else {
		props.NextPlayer = string(current.NextMark())
		props.Status = labels.NextPlayer + props.NextPlayer
		props.Draw = current.Board.IsFull()
	}

	for step := range state.History {
		props.Moves = append(props.Moves, Move{
			Step:    step,
			Label:   moveLabel(step, labels),
			Current: step == state.StepNumber,
		})
	}

	return props
}

func moveLabel(step int, labels Labels) string {
	if step == 0 {
		return labels.Start
	}
	return labels.Move + strconv.Itoa(step)
}

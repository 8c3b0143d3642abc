package terminal

import (
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-history/internal/view"
)

// Render - draws the props as text. Empty squares show their index.
func Render(props view.Props) string {
	var b strings.Builder

	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			square := props.Squares[row*3+col]
			if square.Value == "" {
				cells = append(cells, strconv.Itoa(square.Index))
				continue
			}
			cells = append(cells, square.Value)
		}

		b.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if row < 2 {
			b.WriteString("---+---+---\n")
		}
	}

	b.WriteString(props.Status)
	if props.Draw {
		b.WriteString(" (draw)")
	}
	b.WriteString("\n")

	for _, move := range props.Moves {
		marker := "  "
		if move.Current {
			marker = "> "
		}
		b.WriteString(marker + strconv.Itoa(move.Step) + ". " + move.Label + "\n")
	}

	return b.String()
}

package entity

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"

	BoardSize = 9
)

// WinCombos are checked in order, the first complete line decides the winner.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Mark is the content of a single cell.
type Mark string

func (that Mark) IsEmpty() bool {
	return that == EmptyCell
}

// Board is a 3x3 grid in row-major order.
type Board [BoardSize]Mark

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

// Snapshot is one immutable point of the game history.
type Snapshot struct {
	Board   Board `json:"board"`
	Winner  Mark  `json:"winner,omitempty"`
	NextIsX bool  `json:"next_is_x"`
}

func NewSnapshot() Snapshot {
	return Snapshot{NextIsX: true}
}

func (that Snapshot) IsFinished() bool {
	return !that.Winner.IsEmpty()
}

// NextMark - returns the mark that will be placed by the next move.
func (that Snapshot) NextMark() Mark {
	if that.NextIsX {
		return PlayerX
	}
	return PlayerO
}

// CanPlay - reports whether a move into the cell is allowed from this snapshot.
// The cell must be a valid board index.
func (that Snapshot) CanPlay(cell int) bool {
	return !that.IsFinished() && that.Board[cell].IsEmpty()
}

// Play - returns the snapshot that follows a move into the cell.
// The caller is expected to check CanPlay first.
func (that Snapshot) Play(cell int) Snapshot {
	board := that.Board
	board[cell] = that.NextMark()

	return Snapshot{
		Board:   board,
		Winner:  CalculateWinner(board),
		NextIsX: !that.NextIsX,
	}
}

// CalculateWinner - returns the mark of the first complete line, or EmptyCell.
func CalculateWinner(board Board) Mark {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

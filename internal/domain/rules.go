package domain

// Window is a run of ToWin contiguous cells along one scan direction.
type Window [ToWin]Piece

// Count returns how many cells of the window hold the piece.
func (w Window) Count(piece Piece) int {
	n := 0
	for _, p := range w {
		if p == piece {
			n++
		}
	}
	return n
}

// Direction is a (row, column) step between neighbouring cells of a window.
type Direction struct {
	DeltaRow int
	DeltaCol int
}

// Directions lists the four scan orientations in the order they are checked:
// horizontal left-to-right, vertical top-to-bottom, "\" down-right and
// "/" up-right.
var Directions = [4]Direction{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}

// ForEachWindow calls fn for every window on the board. Start bounds are
// derived from ToWin, so every window lies fully inside the grid. Iteration
// stops early when fn returns false.
func ForEachWindow(board Board, fn func(Window) bool) {
	for _, d := range Directions {
		span := ToWin - 1
		for row := 0; row < Rows; row++ {
			endRow := row + d.DeltaRow*span
			if endRow < 0 || endRow >= Rows {
				continue
			}
			for col := 0; col+d.DeltaCol*span < Columns; col++ {
				var w Window
				for i := 0; i < ToWin; i++ {
					w[i] = board[row+d.DeltaRow*i][col+d.DeltaCol*i]
				}
				if !fn(w) {
					return
				}
			}
		}
	}
}

// IsWinningMove reports whether the piece has ToWin in a row anywhere on the
// board. The first matching window short-circuits the scan.
func IsWinningMove(board Board, piece Piece) bool {
	if piece == Empty {
		return false
	}

	won := false
	ForEachWindow(board, func(w Window) bool {
		if w.Count(piece) == ToWin {
			won = true
			return false
		}
		return true
	})
	return won
}

// GetValidMoves returns every playable column in ascending order.
func GetValidMoves(board Board) []int {
	validMoves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if IsValidMove(board, col) {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

func IsBoardFull(board Board) bool {
	for c := 0; c < Columns; c++ {
		if board[0][c] == Empty {
			return false
		}
	}

	return true
}

// IsTerminal is true once either side has won or no column is playable.
func IsTerminal(board Board) bool {
	return IsWinningMove(board, PlayerPiece) || IsWinningMove(board, AIPiece) || IsBoardFull(board)
}

// Outcome classifies a board. An AI line is reported before a player line,
// matching the order the search checks leaves in.
func Outcome(board Board) GameStatus {
	switch {
	case IsWinningMove(board, AIPiece):
		return StatusAIWin
	case IsWinningMove(board, PlayerPiece):
		return StatusPlayerWin
	case IsBoardFull(board):
		return StatusDraw
	}
	return StatusInProgress
}

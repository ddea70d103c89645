package bot

import (
	"github.com/iamasit07/connect4-ai/internal/domain"
)

const (
	// Window weights, from the scoring piece's point of view.
	SCORE_FOUR          = 100
	SCORE_THREE_OPEN    = 5
	SCORE_TWO_OPEN      = 2
	SCORE_OPP_THREE     = -4
	CENTER_PIECE_WEIGHT = 3
)

// EvaluateBoard calculates a heuristic score for the board from piece's side.
// It is only meaningful relative to other positions in the same search.
func EvaluateBoard(board domain.Board, piece domain.Piece) int {
	score := 0

	// Center column preference
	centerCol := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		if board[row][centerCol] == piece {
			score += CENTER_PIECE_WEIGHT
		}
	}

	domain.ForEachWindow(board, func(w domain.Window) bool {
		score += ScoreWindow(w, piece)
		return true
	})

	return score
}

// ScoreWindow scores a single window. The opponent penalty is evaluated
// independently of the piece branches.
func ScoreWindow(window domain.Window, piece domain.Piece) int {
	score := 0
	opponent := piece.Opponent()

	mine := window.Count(piece)
	empty := window.Count(domain.Empty)

	switch {
	case mine == domain.ToWin:
		score += SCORE_FOUR
	case mine == domain.ToWin-1 && empty == 1:
		score += SCORE_THREE_OPEN
	case mine == domain.ToWin-2 && empty == 2:
		score += SCORE_TWO_OPEN
	}

	if window.Count(opponent) == domain.ToWin-1 && empty == 1 {
		score += SCORE_OPP_THREE
	}

	return score
}

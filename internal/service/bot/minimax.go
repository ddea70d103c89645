package bot

import (
	"math"

	"github.com/iamasit07/connect4-ai/internal/domain"
)

const (
	MINIMAX_WIN  = 1000000
	MINIMAX_LOSS = -1000000

	// NoColumn is reported by leaves, which have no move to recommend.
	NoColumn = -1
)

// Unbounded window edges for a root call.
const (
	NegInf = math.MinInt
	PosInf = math.MaxInt
)

// Result is the outcome of one search call.
type Result struct {
	Column int
	Score  int
}

func (r Result) HasColumn() bool {
	return r.Column != NoColumn
}

// Stats describes the work done by the most recent search.
type Stats struct {
	Nodes   int
	Leaves  int
	Cutoffs int
}

// Minimax runs a depth-limited search with alpha-beta pruning. Scores are
// always on the AI's scale: the AI maximizes and the player minimizes.
func (e *Engine) Minimax(board domain.Board, depth int, alpha, beta int, maximizing bool) Result {
	e.stats = Stats{}
	return e.minimax(board, depth, alpha, beta, maximizing)
}

func (e *Engine) minimax(board domain.Board, depth int, alpha, beta int, maximizing bool) Result {
	e.stats.Nodes++

	validMoves := domain.GetValidMoves(board)
	aiWon := domain.IsWinningMove(board, domain.AIPiece)
	playerWon := domain.IsWinningMove(board, domain.PlayerPiece)
	terminal := aiWon || playerWon || len(validMoves) == 0

	// Leaves are scored for the AI no matter whose turn it is.
	if depth <= 0 || terminal {
		e.stats.Leaves++
		switch {
		case aiWon:
			return Result{Column: NoColumn, Score: MINIMAX_WIN}
		case playerWon:
			return Result{Column: NoColumn, Score: MINIMAX_LOSS}
		default:
			return Result{Column: NoColumn, Score: EvaluateBoard(board, domain.AIPiece)}
		}
	}

	piece := domain.PlayerPiece
	best := Result{Score: PosInf}
	if maximizing {
		piece = domain.AIPiece
		best.Score = NegInf
	}

	// The default column is drawn at random; with infinite starting scores the
	// first child always replaces it.
	best.Column = validMoves[e.rng.Intn(len(validMoves))]

	for _, col := range validMoves {
		row, err := domain.GetOpenRow(board, col)
		if err != nil {
			continue
		}
		child := domain.CopyBoard(board)
		domain.DropPiece(&child, row, col, piece)

		score := e.minimax(child, depth-1, alpha, beta, !maximizing).Score

		if maximizing {
			if score > best.Score {
				best.Score = score
				best.Column = col
			}
			alpha = max(alpha, best.Score)
		} else {
			if score < best.Score {
				best.Score = score
				best.Column = col
			}
			beta = min(beta, best.Score)
		}

		if e.prune && alpha >= beta {
			e.stats.Cutoffs++
			break
		}
	}

	return best
}

package bot

import (
	"math/rand"
	"time"

	"github.com/iamasit07/connect4-ai/internal/domain"
)

// Engine picks moves for the automated side. An Engine owns its random source
// and search statistics, so it must not be shared between goroutines.
type Engine struct {
	depth int
	rng   *rand.Rand
	prune bool
	stats Stats
}

type Option func(*Engine)

// WithDepth sets the number of plies searched. Values below 1 are ignored.
func WithDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.depth = depth
		}
	}
}

func WithDifficulty(d Difficulty) Option {
	return WithDepth(d.Depth())
}

// WithRand injects the source used to draw the default column at each node.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithoutPruning turns the search into a plain exhaustive minimax.
func WithoutPruning() Option {
	return func(e *Engine) {
		e.prune = false
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		depth: DefaultDepth,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		prune: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Depth() int {
	return e.depth
}

func (e *Engine) Stats() Stats {
	return e.stats
}

// ChooseMove returns the column the AI should play.
func (e *Engine) ChooseMove(board domain.Board) (int, error) {
	return e.Suggest(board, domain.AIPiece)
}

// Suggest returns the best column for either side. The AI maximizes and the
// player minimizes the same AI-perspective score.
func (e *Engine) Suggest(board domain.Board, piece domain.Piece) (int, error) {
	if len(domain.GetValidMoves(board)) == 0 {
		return NoColumn, domain.ErrNoValidMoves
	}

	res := e.Minimax(board, e.depth, NegInf, PosInf, piece == domain.AIPiece)
	if !res.HasColumn() {
		// the position is already decided
		return NoColumn, domain.ErrGameOver
	}
	return res.Column, nil
}

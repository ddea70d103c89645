// Package selfplay pits two engines against each other in batches.
package selfplay

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
)

type Config struct {
	Games       int
	Workers     int
	DepthAI     int
	DepthPlayer int
	// OpeningMoves random plies played before the engines take over, so
	// games differ from one another.
	OpeningMoves int
	Seed         int64
}

type Result struct {
	Index    int
	First    domain.Piece
	Status   domain.GameStatus
	Moves    int
	Duration time.Duration
}

// Tally sums finished games. Ratings are Elo, both sides starting at 1200
// and updated in the order results arrive.
type Tally struct {
	Games        int
	AIWins       int
	PlayerWins   int
	Draws        int
	Moves        int
	AIRating     float64
	PlayerRating float64
	Elapsed      time.Duration
}

func newTally() Tally {
	return Tally{AIRating: startingRating, PlayerRating: startingRating}
}

func (t *Tally) add(r Result) {
	t.Games++
	t.Moves += r.Moves

	var score float64
	switch r.Status {
	case domain.StatusAIWin:
		t.AIWins++
		score = 1
	case domain.StatusPlayerWin:
		t.PlayerWins++
	case domain.StatusDraw:
		t.Draws++
		score = 0.5
	}
	t.AIRating, t.PlayerRating = updateRatings(t.AIRating, t.PlayerRating, score)
}

func (t Tally) String() string {
	avg := 0.0
	if t.Games > 0 {
		avg = float64(t.Moves) / float64(t.Games)
	}
	return fmt.Sprintf("games=%d ai_wins=%d player_wins=%d draws=%d avg_moves=%.1f elo_ai=%.0f elo_player=%.0f elapsed=%s",
		t.Games, t.AIWins, t.PlayerWins, t.Draws, avg, t.AIRating, t.PlayerRating, t.Elapsed.Round(time.Millisecond))
}

// Run plays cfg.Games games across cfg.Workers goroutines. The AI side opens
// every even-numbered game. Cancelling ctx stops handing out new games.
func Run(ctx context.Context, cfg Config) (Tally, error) {
	if cfg.Games < 1 {
		return Tally{}, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	jobs := make(chan int)
	results := make(chan Result)

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			worker(id, seed+int64(id), cfg, jobs, results)
		}(w)
	}

	go func() {
		defer close(jobs)
		for i := 0; i < cfg.Games; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	tally := newTally()
	var firstErr error
	for r := range results {
		if r.Status == domain.StatusInProgress {
			if firstErr == nil {
				firstErr = fmt.Errorf("game %d did not finish", r.Index)
			}
			continue
		}
		tally.add(r)
	}
	tally.Elapsed = time.Since(start)

	if firstErr == nil {
		firstErr = ctx.Err()
	}
	return tally, firstErr
}

// worker owns its engines and rand source; neither is shared across goroutines.
func worker(id int, seed int64, cfg Config, jobs <-chan int, results chan<- Result) {
	rng := rand.New(rand.NewSource(seed))
	ai := bot.NewEngine(bot.WithDepth(cfg.DepthAI), bot.WithRand(rng))
	player := bot.NewEngine(bot.WithDepth(cfg.DepthPlayer), bot.WithRand(rng))

	for i := range jobs {
		first := domain.PlayerPiece
		if i%2 == 0 {
			first = domain.AIPiece
		}

		start := time.Now()
		g, err := PlayGame(ai, player, first, rng, cfg.OpeningMoves)
		if err != nil {
			log.Printf("[SELFPLAY] Worker %d game %d failed: %v", id, i, err)
		}
		results <- Result{
			Index:    i,
			First:    first,
			Status:   g.Status,
			Moves:    g.MoveCount(),
			Duration: time.Since(start),
		}
	}
}

// PlayGame plays one game to the end. The first opening plies are random
// valid columns drawn from rng.
func PlayGame(ai, player *bot.Engine, first domain.Piece, rng *rand.Rand, opening int) (*domain.Game, error) {
	g := domain.NewGame(first)

	for !g.IsFinished() {
		var col int
		if g.MoveCount() < opening {
			moves := domain.GetValidMoves(g.Board)
			col = moves[rng.Intn(len(moves))]
		} else {
			engine := player
			if g.Turn == domain.AIPiece {
				engine = ai
			}
			var err error
			col, err = engine.Suggest(g.Board, g.Turn)
			if err != nil {
				return g, fmt.Errorf("%s to move: %w", g.Turn, err)
			}
		}

		if _, err := g.MakeMove(g.Turn, col); err != nil {
			return g, fmt.Errorf("%s column %d: %w", g.Turn, col, err)
		}
	}
	return g, nil
}

package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
)

// SessionConfig describes how a session sets up each game.
type SessionConfig struct {
	Difficulty bot.Difficulty
	// Depth overrides the difficulty preset when positive.
	Depth int
	// FirstMover forces who opens; Empty draws it at random.
	FirstMover domain.Piece
	// Rand is owned by the session. When nil, a source is built from Seed,
	// or from the clock if Seed is zero.
	Rand      *rand.Rand
	Seed      int64
	Publisher Publisher
}

// ParseFirstMover maps "human"/"player", "ai"/"bot" and "random"/"" to the
// piece that opens. Random is domain.Empty.
func ParseFirstMover(s string) (domain.Piece, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random":
		return domain.Empty, nil
	case "human", "player":
		return domain.PlayerPiece, nil
	case "ai", "bot":
		return domain.AIPiece, nil
	}
	return domain.Empty, fmt.Errorf("unknown first mover %q", s)
}

// Session owns one human-vs-AI game: the board, whose turn it is and the
// engine playing the AI side.
type Session struct {
	ID         string
	Difficulty bot.Difficulty
	CreatedAt  time.Time

	mu         sync.Mutex
	game       *domain.Game
	startedAt  time.Time
	finishedAt time.Time
	lastActive time.Time
	engine     *bot.Engine
	rng        *rand.Rand
	firstMove  domain.Piece
	publisher  Publisher
}

// Snapshot is a copy of a session's state, safe to hand to other goroutines.
type Snapshot struct {
	ID         string            `json:"gameId"`
	Board      domain.Board      `json:"-"`
	Turn       domain.Piece      `json:"turn"`
	Status     domain.GameStatus `json:"status"`
	Winner     domain.Piece      `json:"winner"`
	Moves      []domain.Move     `json:"moves"`
	Difficulty bot.Difficulty    `json:"difficulty"`
	Depth      int               `json:"depth"`
	BotName    string            `json:"botName"`
	CreatedAt  time.Time         `json:"createdAt"`
}

func NewSession(cfg SessionConfig) *Session {
	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	difficulty := cfg.Difficulty
	if difficulty == "" {
		difficulty = bot.Hard
	}

	opts := []bot.Option{bot.WithDifficulty(difficulty), bot.WithRand(rng)}
	if cfg.Depth > 0 {
		opts = append(opts, bot.WithDepth(cfg.Depth))
	}

	s := &Session{
		ID:         uuid.NewString(),
		Difficulty: difficulty,
		CreatedAt:  time.Now(),
		engine:     bot.NewEngine(opts...),
		rng:        rng,
		firstMove:  cfg.FirstMover,
		publisher:  cfg.Publisher,
	}
	s.startGameLocked()

	return s
}

func (s *Session) startGameLocked() {
	first := s.firstMove
	if first == domain.Empty {
		first = domain.PlayerPiece
		if s.rng.Intn(2) == 1 {
			first = domain.AIPiece
		}
	}

	s.game = domain.NewGame(first)
	s.finishedAt = time.Time{}
	s.startedAt = time.Now()
	s.lastActive = s.startedAt

	log.Printf("[SESSION] Game %s started: %s moves first, depth %d", s.ID, first, s.engine.Depth())
	s.publish(EventGameStart, map[string]any{
		"first":      first.String(),
		"difficulty": string(s.Difficulty),
		"depth":      s.engine.Depth(),
	})
}

// Reset starts a new game in the same session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.startGameLocked()
}

// PlayHuman applies the human's column. Invalid columns are rejected with
// domain.ErrInvalidMove and leave the board untouched.
func (s *Session) PlayHuman(column int) (domain.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyLocked(domain.PlayerPiece, column)
}

// PlayAI lets the engine pick and apply the AI's move.
func (s *Session) PlayAI() (domain.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.IsFinished() {
		return domain.Move{}, domain.ErrGameOver
	}
	if s.game.Turn != domain.AIPiece {
		return domain.Move{}, domain.ErrNotYourTurn
	}

	start := time.Now()
	column, err := s.engine.ChooseMove(s.game.Board)
	if err != nil {
		return domain.Move{}, err
	}
	stats := s.engine.Stats()
	log.Printf("[BOT] Game %s: chose column %d in %s (%d nodes, %d cutoffs)",
		s.ID, column, time.Since(start).Round(time.Millisecond), stats.Nodes, stats.Cutoffs)

	return s.applyLocked(domain.AIPiece, column)
}

// Hint suggests a column for the human using the session's engine.
func (s *Session) Hint() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.IsFinished() {
		return bot.NoColumn, domain.ErrGameOver
	}
	return s.engine.Suggest(s.game.Board, domain.PlayerPiece)
}

func (s *Session) applyLocked(piece domain.Piece, column int) (domain.Move, error) {
	move, err := s.game.MakeMove(piece, column)
	if err != nil {
		return domain.Move{}, err
	}
	s.lastActive = time.Now()

	s.publish(EventMove, map[string]any{
		"by":     piece.String(),
		"column": move.Column,
		"row":    move.Row,
	})

	if s.game.IsFinished() {
		s.finishedAt = s.lastActive
		log.Printf("[SESSION] Game %s finished: %s after %d moves", s.ID, s.game.Status, s.game.MoveCount())
		s.publish(EventGameEnd, map[string]any{
			"status":   string(s.game.Status),
			"moves":    s.game.MoveCount(),
			"duration": s.finishedAt.Sub(s.startedAt).Seconds(),
		})
	}

	return move, nil
}

func (s *Session) publish(name string, data map[string]any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(context.Background(), Event{
		Name:   name,
		GameID: s.ID,
		At:     time.Now().UTC(),
		Data:   data,
	})
}

func (s *Session) Turn() domain.Piece {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Turn
}

func (s *Session) Status() domain.GameStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Status
}

func (s *Session) IsFinished() bool {
	return s.Status().IsTerminal()
}

// LastActive is the time of the last move or game start.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	moves := make([]domain.Move, len(s.game.Moves))
	copy(moves, s.game.Moves)

	return Snapshot{
		ID:         s.ID,
		Board:      s.game.Board,
		Turn:       s.game.Turn,
		Status:     s.game.Status,
		Winner:     s.game.Winner,
		Moves:      moves,
		Difficulty: s.Difficulty,
		Depth:      s.engine.Depth(),
		BotName:    s.Difficulty.BotName(),
		CreatedAt:  s.CreatedAt,
	}
}

package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(_ context.Context, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Name)
	}
	return out
}

func newTestSession(first domain.Piece, rec *recorder) *Session {
	cfg := SessionConfig{
		Difficulty: bot.Easy,
		Depth:      2,
		FirstMover: first,
		Rand:       rand.New(rand.NewSource(42)),
	}
	if rec != nil {
		cfg.Publisher = rec
	}
	return NewSession(cfg)
}

func TestSessionHumanThenAI(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(domain.PlayerPiece, rec)

	if s.Turn() != domain.PlayerPiece {
		t.Fatalf("expected the player to move first")
	}

	move, err := s.PlayHuman(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if move.Row != domain.Rows-1 || move.Column != 3 || move.Piece != domain.PlayerPiece {
		t.Fatalf("unexpected move %+v", move)
	}
	if s.Turn() != domain.AIPiece {
		t.Fatalf("expected the AI to be on turn")
	}

	aiMove, err := s.PlayAI()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aiMove.Piece != domain.AIPiece {
		t.Fatalf("expected an AI move, got %+v", aiMove)
	}

	state := s.State()
	if len(state.Moves) != 2 || state.Status != domain.StatusInProgress {
		t.Fatalf("unexpected state %+v", state)
	}
	if state.Depth != 2 || state.BotName != "Alice" {
		t.Fatalf("expected depth override and easy bot name, got %d %s", state.Depth, state.BotName)
	}

	want := []string{EventGameStart, EventMove, EventMove}
	if diff := cmp.Diff(want, rec.names()); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionRejectsInvalidColumn(t *testing.T) {
	s := newTestSession(domain.PlayerPiece, nil)
	before := s.State().Board

	for _, col := range []int{-1, domain.Columns, 99} {
		if _, err := s.PlayHuman(col); !errors.Is(err, domain.ErrInvalidMove) {
			t.Fatalf("column %d: expected ErrInvalidMove, got %v", col, err)
		}
	}
	if s.State().Board != before {
		t.Fatalf("rejected moves must not change the board")
	}
	if s.Turn() != domain.PlayerPiece {
		t.Fatalf("rejected moves must not pass the turn")
	}
}

func TestSessionEnforcesTurns(t *testing.T) {
	s := newTestSession(domain.AIPiece, nil)

	if _, err := s.PlayHuman(0); !errors.Is(err, domain.ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn for the human, got %v", err)
	}
	if _, err := s.PlayAI(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.PlayAI(); !errors.Is(err, domain.ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn for the AI, got %v", err)
	}
}

func TestSessionPlaysToCompletion(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(domain.PlayerPiece, rec)

	for i := 0; i < domain.Rows*domain.Columns && !s.IsFinished(); i++ {
		if s.Turn() == domain.PlayerPiece {
			moves := domain.GetValidMoves(s.State().Board)
			if _, err := s.PlayHuman(moves[0]); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			continue
		}
		if _, err := s.PlayAI(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if !s.IsFinished() {
		t.Fatalf("game did not finish")
	}
	names := rec.names()
	if names[len(names)-1] != EventGameEnd {
		t.Fatalf("expected game.end last, got %v", names)
	}

	if _, err := s.PlayHuman(0); !errors.Is(err, domain.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if _, err := s.PlayAI(); !errors.Is(err, domain.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if _, err := s.Hint(); !errors.Is(err, domain.ErrGameOver) {
		t.Fatalf("expected ErrGameOver from hint, got %v", err)
	}
}

func TestSessionHint(t *testing.T) {
	s := newTestSession(domain.PlayerPiece, nil)

	col, err := s.Hint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !domain.IsValidMove(s.State().Board, col) {
		t.Fatalf("hint %d is not playable", col)
	}
	if len(s.State().Moves) != 0 {
		t.Fatalf("hint must not play a move")
	}
}

func TestSessionReset(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(domain.PlayerPiece, rec)

	if _, err := s.PlayHuman(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Reset()

	state := s.State()
	if state.Board != domain.NewBoard() || len(state.Moves) != 0 {
		t.Fatalf("expected a fresh board after reset")
	}
	if state.Turn != domain.PlayerPiece {
		t.Fatalf("forced first mover should survive a reset")
	}
	if got := rec.names(); got[len(got)-1] != EventGameStart {
		t.Fatalf("expected game.start after reset, got %v", got)
	}
}

func TestSessionRandomFirstMover(t *testing.T) {
	seen := map[domain.Piece]bool{}
	for seed := int64(0); seed < 20; seed++ {
		s := NewSession(SessionConfig{Depth: 1, Rand: rand.New(rand.NewSource(seed))})
		seen[s.Turn()] = true
	}
	if !seen[domain.PlayerPiece] || !seen[domain.AIPiece] {
		t.Fatalf("expected both sides to open across seeds, got %v", seen)
	}
}

func TestParseFirstMover(t *testing.T) {
	tests := map[string]domain.Piece{
		"":       domain.Empty,
		"random": domain.Empty,
		"Human":  domain.PlayerPiece,
		"player": domain.PlayerPiece,
		" ai ":   domain.AIPiece,
		"bot":    domain.AIPiece,
	}
	for in, want := range tests {
		got, err := ParseFirstMover(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseFirstMover("coin"); err == nil {
		t.Fatalf("expected error for unknown first mover")
	}
}

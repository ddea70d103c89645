package domain

import (
	"errors"
	"testing"
)

func TestGameAlternatesTurns(t *testing.T) {
	g := NewGame(PlayerPiece)

	if _, err := g.MakeMove(AIPiece, 3); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}

	m, err := g.MakeMove(PlayerPiece, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Row != Rows-1 || m.Column != 3 || m.Piece != PlayerPiece {
		t.Fatalf("unexpected move %+v", m)
	}
	if g.Turn != AIPiece {
		t.Fatalf("expected AI to move next, got %s", g.Turn)
	}
	if g.MoveCount() != 1 {
		t.Fatalf("expected 1 move recorded, got %d", g.MoveCount())
	}
}

func TestGameRejectsInvalidColumnWithoutMutating(t *testing.T) {
	g := NewGame(AIPiece)
	before := g.Board

	if _, err := g.MakeMove(AIPiece, Columns); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if g.Board != before || g.Turn != AIPiece || g.MoveCount() != 0 {
		t.Fatalf("rejected move changed game state")
	}
}

func TestGameDetectsWin(t *testing.T) {
	g := NewGame(AIPiece)
	// AI builds the bottom row while the player stacks on column 6.
	for i, col := range []int{0, 6, 1, 6, 2, 6} {
		piece := AIPiece
		if i%2 == 1 {
			piece = PlayerPiece
		}
		if _, err := g.MakeMove(piece, col); err != nil {
			t.Fatalf("move %d: unexpected error: %v", i, err)
		}
	}

	if _, err := g.MakeMove(AIPiece, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Status != StatusAIWin || g.Winner != AIPiece {
		t.Fatalf("expected AI win, got status %s winner %s", g.Status, g.Winner)
	}
	if !g.IsFinished() {
		t.Fatalf("game should be finished")
	}
	if _, err := g.MakeMove(PlayerPiece, 5); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	last, ok := g.LastMove()
	if !ok || last.Column != 3 {
		t.Fatalf("unexpected last move %+v", last)
	}
}

func TestGameDetectsDraw(t *testing.T) {
	g := NewGame(PlayerPiece)
	g.Board = MustParseBoard(
		"XXXO.XX",
		"XXXOXXX",
		"OOOXOOO",
		"OOOXOOO",
		"XXXOXXX",
		"XXXOXXX",
	)

	if _, err := g.MakeMove(PlayerPiece, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Status != StatusDraw {
		t.Fatalf("expected draw, got %s", g.Status)
	}
	if g.Winner != Empty {
		t.Fatalf("draw must not have a winner")
	}
}

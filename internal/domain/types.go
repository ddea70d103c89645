package domain

import "fmt"

type Piece int8

const (
	Empty       Piece = 0
	PlayerPiece Piece = 1
	AIPiece     Piece = 2
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Opponent returns the other non-empty piece. Empty has no opponent.
func (p Piece) Opponent() Piece {
	switch p {
	case PlayerPiece:
		return AIPiece
	case AIPiece:
		return PlayerPiece
	}
	return Empty
}

func (p Piece) String() string {
	switch p {
	case PlayerPiece:
		return "player"
	case AIPiece:
		return "ai"
	}
	return "empty"
}

// Symbol is the single character used when the board is printed.
func (p Piece) Symbol() string {
	switch p {
	case PlayerPiece:
		return "X"
	case AIPiece:
		return "O"
	}
	return "."
}

// ParsePiece parses the string value and returns a piece if one exists.
func ParsePiece(value string) (Piece, error) {
	switch value {
	case "player", "human":
		return PlayerPiece, nil
	case "ai", "bot":
		return AIPiece, nil
	case "empty":
		return Empty, nil
	}
	return Empty, fmt.Errorf("invalid piece %q", value)
}

// to represent the game status
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusPlayerWin  GameStatus = "player_win"
	StatusAIWin      GameStatus = "ai_win"
	StatusDraw       GameStatus = "draw"
)

func (s GameStatus) IsTerminal() bool {
	return s != StatusInProgress
}

// winStatus maps a winning piece to its terminal status.
func winStatus(p Piece) GameStatus {
	if p == AIPiece {
		return StatusAIWin
	}
	return StatusPlayerWin
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove  Error = "invalid move"
	ErrColumnFull   Error = "column is full"
	ErrGameOver     Error = "game is over"
	ErrNotYourTurn  Error = "not your turn"
	ErrNoValidMoves Error = "no valid moves"
)

// Is lets a full column be matched as an invalid move by errors.Is.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}
	if e == t {
		return true
	}
	return e == ErrColumnFull && t == ErrInvalidMove
}

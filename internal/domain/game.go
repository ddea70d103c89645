package domain

// Move is one applied ply.
type Move struct {
	Column int   `json:"column"`
	Row    int   `json:"row"`
	Piece  Piece `json:"piece"`
}

type Game struct {
	Board  Board
	Turn   Piece
	Status GameStatus
	Winner Piece
	Moves  []Move
}

func NewGame(first Piece) *Game {
	if first != AIPiece {
		first = PlayerPiece
	}

	return &Game{
		Board:  NewBoard(),
		Turn:   first,
		Status: StatusInProgress,
		Winner: Empty,
	}
}

// MakeMove applies a validated move for the piece whose turn it is. A rejected
// move leaves the game untouched.
func (g *Game) MakeMove(piece Piece, column int) (Move, error) {
	if g.Status.IsTerminal() {
		return Move{}, ErrGameOver
	}

	if piece != g.Turn {
		return Move{}, ErrNotYourTurn
	}

	if column < 0 || column >= Columns {
		return Move{}, ErrInvalidMove
	}

	row, err := Play(&g.Board, column, piece)
	if err != nil {
		return Move{}, err
	}

	move := Move{Column: column, Row: row, Piece: piece}
	g.Moves = append(g.Moves, move)

	if IsWinningMove(g.Board, piece) {
		g.Status = winStatus(piece)
		g.Winner = piece
		return move, nil
	}

	if len(GetValidMoves(g.Board)) == 0 {
		g.Status = StatusDraw
		return move, nil
	}

	g.Turn = piece.Opponent()
	return move, nil
}

func (g *Game) MoveCount() int {
	return len(g.Moves)
}

func (g *Game) IsFinished() bool {
	return g.Status.IsTerminal()
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (Move, bool) {
	if len(g.Moves) == 0 {
		return Move{}, false
	}
	return g.Moves[len(g.Moves)-1], true
}

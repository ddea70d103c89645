package domain

import (
	"fmt"
	"strings"
)

// Board is a fixed grid where row 0 is the top. It is a value type: assigning
// or passing a Board copies every cell.
type Board [Rows][Columns]Piece

func NewBoard() Board {
	return Board{}
}

func inBounds(row, column int) bool {
	return row >= 0 && row < Rows && column >= 0 && column < Columns
}

func IsValidMove(board Board, column int) bool {
	if column < 0 || column >= Columns {
		return false
	}

	// here board[0] represents the top row (0 -> top and 5 -> bottom)
	return board[0][column] == Empty
}

// GetOpenRow scans from the bottom row upward and returns the first empty row
// in the column.
func GetOpenRow(board Board, column int) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidMove
	}

	for row := Rows - 1; row >= 0; row-- {
		if board[row][column] == Empty {
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

// DropPiece sets a single cell. Gravity and occupancy are the caller's
// responsibility; only the grid bounds are checked.
func DropPiece(board *Board, row, column int, piece Piece) error {
	if !inBounds(row, column) {
		return ErrInvalidMove
	}
	board[row][column] = piece
	return nil
}

// Play validates the column, finds the open row and drops the piece there.
func Play(board *Board, column int, piece Piece) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidMove
	}

	row, err := GetOpenRow(*board, column)
	if err != nil {
		return -1, err
	}

	board[row][column] = piece
	return row, nil
}

// CopyBoard returns an independent copy. Board is an array so this is a plain
// value copy; the function exists to make the intent explicit at call sites.
func CopyBoard(board Board) Board {
	return board
}

// SimulateMove will simulate a move and give the result to the caller
func SimulateMove(board Board, column int, piece Piece) (Board, int, error) {
	row, err := Play(&board, column, piece)
	if err != nil {
		return Board{}, -1, err
	}
	return board, row, nil
}

func (b Board) Count(piece Piece) int {
	n := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b[row][col] == piece {
				n++
			}
		}
	}
	return n
}

// ColumnHeight is the number of pieces stacked in a column.
func (b Board) ColumnHeight(column int) int {
	h := 0
	for row := Rows - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			break
		}
		h++
	}
	return h
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b[row][col].Symbol())
		}
		sb.WriteByte('\n')
	}
	for col := 0; col < Columns; col++ {
		if col > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte('0' + col))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// ParseBoard builds a board from Rows lines of Columns symbols each, using the
// same symbols String prints. Spaces are ignored.
func ParseBoard(lines ...string) (Board, error) {
	var b Board
	if len(lines) != Rows {
		return b, fmt.Errorf("parse board: want %d rows, got %d", Rows, len(lines))
	}

	for row, line := range lines {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != Columns {
			return b, fmt.Errorf("parse board: row %d: want %d cells, got %d", row, Columns, len(line))
		}
		for col, ch := range line {
			switch ch {
			case '.':
				b[row][col] = Empty
			case 'X':
				b[row][col] = PlayerPiece
			case 'O':
				b[row][col] = AIPiece
			default:
				return b, fmt.Errorf("parse board: row %d col %d: unknown symbol %q", row, col, ch)
			}
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard for fixtures. It panics on malformed input.
func MustParseBoard(lines ...string) Board {
	b, err := ParseBoard(lines...)
	if err != nil {
		panic(err)
	}
	return b
}

// Ints flattens the board for JSON payloads.
func (b Board) Ints() [][]int {
	out := make([][]int, Rows)
	for row := range b {
		out[row] = make([]int, Columns)
		for col := range b[row] {
			out[row][col] = int(b[row][col])
		}
	}
	return out
}

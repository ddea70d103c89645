package websocket

import (
	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/game"
)

const (
	MsgMove    = "move"
	MsgNewGame = "new_game"
	MsgHint    = "hint"

	MsgGameStart = "game_start"
	MsgMoveMade  = "move_made"
	MsgGameOver  = "game_over"
	MsgError     = "error"
)

type ClientMessage struct {
	Type   string `json:"type"`
	Column *int   `json:"column,omitempty"`
}

type ServerMessage struct {
	Type       string  `json:"type"`
	Message    string  `json:"message,omitempty"`
	GameID     string  `json:"gameId,omitempty"`
	BotName    string  `json:"botName,omitempty"`
	Difficulty string  `json:"difficulty,omitempty"`
	Depth      int     `json:"depth,omitempty"`
	Column     *int    `json:"column,omitempty"`
	Row        *int    `json:"row,omitempty"`
	Player     string  `json:"player,omitempty"`
	Board      [][]int `json:"board,omitempty"`
	NextTurn   string  `json:"nextTurn,omitempty"`
	Status     string  `json:"status,omitempty"`
	Winner     string  `json:"winner,omitempty"`
}

func intPtr(v int) *int { return &v }

func gameStartMessage(s game.Snapshot) ServerMessage {
	return ServerMessage{
		Type:       MsgGameStart,
		GameID:     s.ID,
		BotName:    s.BotName,
		Difficulty: string(s.Difficulty),
		Depth:      s.Depth,
		Board:      s.Board.Ints(),
		NextTurn:   s.Turn.String(),
	}
}

func moveMadeMessage(m domain.Move, s game.Snapshot) ServerMessage {
	msg := ServerMessage{
		Type:   MsgMoveMade,
		GameID: s.ID,
		Column: intPtr(m.Column),
		Row:    intPtr(m.Row),
		Player: m.Piece.String(),
		Board:  s.Board.Ints(),
	}
	if !s.Status.IsTerminal() {
		msg.NextTurn = s.Turn.String()
	}
	return msg
}

func gameOverMessage(s game.Snapshot) ServerMessage {
	msg := ServerMessage{
		Type:   MsgGameOver,
		GameID: s.ID,
		Status: string(s.Status),
		Board:  s.Board.Ints(),
	}
	if s.Winner != domain.Empty {
		msg.Winner = s.Winner.String()
	}
	return msg
}

func errorMessage(text string) ServerMessage {
	return ServerMessage{Type: MsgError, Message: text}
}

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-ai/internal/service/game"
)

func newTestServer(t *testing.T) (*httptest.Server, *Handler) {
	t.Helper()
	sm := game.NewSessionManager(game.SessionConfig{Depth: 1, Seed: 1})
	h := NewHandler(NewConnectionManager(), sm, nil)
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)
	return srv, h
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func send(t *testing.T, conn *websocket.Conn, msg map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestHumanMoveGetsAIReply(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "first=human&difficulty=easy")

	start := read(t, conn)
	if start.Type != MsgGameStart || start.NextTurn != "player" || start.BotName != "Alice" || start.GameID == "" {
		t.Fatalf("unexpected start %+v", start)
	}
	if len(start.Board) != 6 || len(start.Board[0]) != 7 {
		t.Fatalf("expected a 6x7 board")
	}

	send(t, conn, map[string]any{"type": "move", "column": 0})

	human := read(t, conn)
	if human.Type != MsgMoveMade || human.Player != "player" || human.Column == nil || *human.Column != 0 || *human.Row != 5 {
		t.Fatalf("unexpected human move %+v", human)
	}
	ai := read(t, conn)
	if ai.Type != MsgMoveMade || ai.Player != "ai" || ai.NextTurn != "player" {
		t.Fatalf("unexpected AI move %+v", ai)
	}
}

func TestErrorsAndHints(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "first=human")
	read(t, conn)

	send(t, conn, map[string]any{"type": "move", "column": 9})
	if msg := read(t, conn); msg.Type != MsgError || msg.Message != "Invalid column" {
		t.Fatalf("expected invalid column error, got %+v", msg)
	}

	send(t, conn, map[string]any{"type": "move"})
	if msg := read(t, conn); msg.Type != MsgError {
		t.Fatalf("expected error for missing column, got %+v", msg)
	}

	send(t, conn, map[string]any{"type": "dance"})
	if msg := read(t, conn); msg.Type != MsgError || msg.Message != "Unknown message type" {
		t.Fatalf("expected unknown type error, got %+v", msg)
	}

	send(t, conn, map[string]any{"type": "hint"})
	hint := read(t, conn)
	if hint.Type != MsgHint || hint.Column == nil || *hint.Column < 0 || *hint.Column > 6 {
		t.Fatalf("unexpected hint %+v", hint)
	}
}

func TestAIOpensAndNewGame(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "first=ai")

	if msg := read(t, conn); msg.Type != MsgGameStart || msg.NextTurn != "ai" {
		t.Fatalf("unexpected start %+v", msg)
	}
	if msg := read(t, conn); msg.Type != MsgMoveMade || msg.Player != "ai" {
		t.Fatalf("expected the AI to open, got %+v", msg)
	}

	send(t, conn, map[string]any{"type": "new_game"})
	if msg := read(t, conn); msg.Type != MsgGameStart {
		t.Fatalf("expected a new game, got %+v", msg)
	}
	if msg := read(t, conn); msg.Type != MsgMoveMade || msg.Player != "ai" {
		t.Fatalf("expected the AI to open the new game, got %+v", msg)
	}
}

func TestPlayToGameOver(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "first=human")
	read(t, conn)

	for i := 0; i < 200; i++ {
		send(t, conn, map[string]any{"type": "move", "column": i % 7})
	turn:
		for {
			msg := read(t, conn)
			switch {
			case msg.Type == MsgGameOver:
				if msg.Status == "" || msg.Status == "in_progress" {
					t.Fatalf("unexpected game over %+v", msg)
				}
				return
			case msg.Type == MsgError:
				break turn
			case msg.Type == MsgMoveMade && msg.Player == "ai" && msg.NextTurn == "player":
				break turn
			}
		}
	}
	t.Fatalf("game never ended")
}

func TestSessionRemovedOnDisconnect(t *testing.T) {
	srv, h := newTestServer(t)
	conn := dial(t, srv, "first=human")
	read(t, conn)

	if h.SessionManager.Count() != 1 || h.ConnManager.Count() != 1 {
		t.Fatalf("expected one live session")
	}
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for h.SessionManager.Count() != 0 || h.ConnManager.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("session not cleaned up after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBadQueryRejected(t *testing.T) {
	srv, _ := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?difficulty=legendary"
	if _, resp, err := websocket.DefaultDialer.Dial(url, nil); err == nil || resp == nil || resp.StatusCode != 400 {
		t.Fatalf("expected 400 for unknown difficulty, got %v", err)
	}
}

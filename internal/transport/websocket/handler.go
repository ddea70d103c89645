package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
	"github.com/iamasit07/connect4-ai/internal/service/game"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler serves human-vs-AI games, one session per connection.
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

// NewHandler builds a handler. checkOrigin may be nil to accept any origin.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, checkOrigin func(r *http.Request) bool) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades the request and plays a game over the socket.
// Query parameters "difficulty" and "first" override the server defaults.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.sessionConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn, cfg)
}

func (h *Handler) sessionConfig(r *http.Request) (game.SessionConfig, error) {
	cfg := h.SessionManager.Defaults()
	q := r.URL.Query()

	if v := q.Get("difficulty"); v != "" {
		d, err := bot.ParseDifficulty(v)
		if err != nil {
			return cfg, err
		}
		cfg.Difficulty = d
		cfg.Depth = 0
	}
	if v := q.Get("first"); v != "" {
		first, err := game.ParseFirstMover(v)
		if err != nil {
			return cfg, err
		}
		cfg.FirstMover = first
	}
	return cfg, nil
}

func (h *Handler) handleConnection(conn *websocket.Conn, cfg game.SessionConfig) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	session := h.SessionManager.CreateSession(cfg)
	h.ConnManager.AddConnection(session.ID, conn)
	log.Printf("[WS] Connection opened for game %s", session.ID)

	defer func() {
		log.Printf("[WS] Connection closed for game %s", session.ID)
		h.ConnManager.RemoveConnection(session.ID)
		_ = h.SessionManager.RemoveSession(session.ID)
	}()

	h.startGame(session)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client disconnected unexpectedly: %v", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.send(session, errorMessage("Invalid message format"))
			continue
		}

		h.processMessage(session, msg)
	}
}

// processMessage routes client actions
func (h *Handler) processMessage(session *game.Session, msg ClientMessage) {
	switch msg.Type {
	case MsgMove:
		if msg.Column == nil {
			h.send(session, errorMessage("column is required"))
			return
		}
		move, err := session.PlayHuman(*msg.Column)
		if err != nil {
			h.send(session, errorMessage(moveErrorText(err)))
			return
		}
		h.announceMove(session, move)
		h.playAI(session)

	case MsgNewGame:
		session.Reset()
		h.startGame(session)

	case MsgHint:
		col, err := session.Hint()
		if err != nil {
			h.send(session, errorMessage(moveErrorText(err)))
			return
		}
		h.send(session, ServerMessage{Type: MsgHint, GameID: session.ID, Column: intPtr(col)})

	default:
		h.send(session, errorMessage("Unknown message type"))
	}
}

func (h *Handler) startGame(session *game.Session) {
	h.send(session, gameStartMessage(session.State()))
	h.playAI(session)
}

// playAI answers with the engine's move when it is the AI's turn.
func (h *Handler) playAI(session *game.Session) {
	if session.IsFinished() || session.Turn() != domain.AIPiece {
		return
	}
	move, err := session.PlayAI()
	if err != nil {
		log.Printf("[WS] AI move failed for game %s: %v", session.ID, err)
		h.send(session, errorMessage("AI could not move"))
		return
	}
	h.announceMove(session, move)
}

func (h *Handler) announceMove(session *game.Session, move domain.Move) {
	state := session.State()
	h.send(session, moveMadeMessage(move, state))
	if state.Status.IsTerminal() {
		h.send(session, gameOverMessage(state))
	}
}

func (h *Handler) send(session *game.Session, msg ServerMessage) {
	if err := h.ConnManager.SendMessage(session.ID, msg); err != nil {
		log.Printf("[WS] Write error for game %s: %v", session.ID, err)
	}
}

func moveErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrColumnFull):
		return "Column is full"
	case errors.Is(err, domain.ErrInvalidMove):
		return "Invalid column"
	case errors.Is(err, domain.ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, domain.ErrGameOver):
		return "Game is over"
	}
	return err.Error()
}

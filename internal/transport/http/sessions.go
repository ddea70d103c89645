package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/game"
)

type SessionsHandler struct {
	SessionManager *game.SessionManager
}

func NewSessionsHandler(sm *game.SessionManager) *SessionsHandler {
	return &SessionsHandler{SessionManager: sm}
}

type sessionResponse struct {
	GameID     string `json:"gameId"`
	BotName    string `json:"botName"`
	Difficulty string `json:"difficulty"`
	Depth      int    `json:"depth"`
	Status     string `json:"status"`
	Turn       string `json:"turn"`
	MoveCount  int    `json:"moveCount"`
	StartedAt  string `json:"startedAt"`
}

type sessionDetailResponse struct {
	sessionResponse
	Board  [][]int       `json:"board"`
	Moves  []domain.Move `json:"moves"`
	Render string        `json:"render"`
}

func toSessionResponse(s game.Snapshot) sessionResponse {
	return sessionResponse{
		GameID:     s.ID,
		BotName:    s.BotName,
		Difficulty: string(s.Difficulty),
		Depth:      s.Depth,
		Status:     string(s.Status),
		Turn:       s.Turn.String(),
		MoveCount:  len(s.Moves),
		StartedAt:  s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListSessions returns every live human-vs-AI game
func (h *SessionsHandler) ListSessions(c *gin.Context) {
	activeGames := h.SessionManager.ActiveGames()

	response := make([]sessionResponse, 0, len(activeGames))
	for _, g := range activeGames {
		response = append(response, toSessionResponse(g))
	}

	c.JSON(http.StatusOK, response)
}

// GetSession returns one game with its board
func (h *SessionsHandler) GetSession(c *gin.Context) {
	session, exists := h.SessionManager.GetSession(c.Param("id"))
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	state := session.State()
	c.JSON(http.StatusOK, sessionDetailResponse{
		sessionResponse: toSessionResponse(state),
		Board:           state.Board.Ints(),
		Moves:           state.Moves,
		Render:          state.Board.String(),
	})
}

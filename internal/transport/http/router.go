package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-ai/internal/service/game"
	"github.com/iamasit07/connect4-ai/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-ai/internal/transport/websocket"
)

// NewRouter wires the HTTP API and the WebSocket endpoint.
func NewRouter(sm *game.SessionManager, wsHandler *websocket.Handler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	sessionsHandler := NewSessionsHandler(sm)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "activeGames": sm.Count()})
	})

	api := router.Group("/api")
	{
		api.GET("/sessions", sessionsHandler.ListSessions)
		api.GET("/sessions/:id", sessionsHandler.GetSession)
	}

	router.GET("/ws", gin.WrapF(wsHandler.HandleWebSocket))

	return router
}

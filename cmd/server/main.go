package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect4-ai/internal/analytics"
	"github.com/iamasit07/connect4-ai/internal/config"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
	"github.com/iamasit07/connect4-ai/internal/service/cleanup"
	"github.com/iamasit07/connect4-ai/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-ai/internal/transport/http"
	"github.com/iamasit07/connect4-ai/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-ai/internal/transport/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	difficulty, err := bot.ParseDifficulty(cfg.AIDifficulty)
	if err != nil {
		log.Printf("Invalid AI_DIFFICULTY, using %s: %v", difficulty, err)
	}
	firstMover, err := game.ParseFirstMover(cfg.FirstMover)
	if err != nil {
		log.Printf("Invalid FIRST_MOVER, using random: %v", err)
	}

	// 1. Analytics
	publisher := analytics.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if closer, ok := publisher.(io.Closer); ok {
		defer closer.Close()
	}

	// 2. Services
	sessionManager := game.NewSessionManager(game.SessionConfig{
		Difficulty: difficulty,
		Depth:      cfg.AIDepth,
		FirstMover: firstMover,
		Seed:       cfg.RandomSeed,
		Publisher:  publisher,
	})
	connManager := websocket.NewConnectionManager()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.SessionTTL)
	cleanupWorker.Start(ctx)

	// 4. HTTP
	wsHandler := websocket.NewHandler(connManager, sessionManager, func(r *http.Request) bool {
		return middleware.AllowOrigin(cfg.AllowedOrigins, r.Header.Get("Origin"))
	})
	router := transportHttp.NewRouter(sessionManager, wsHandler, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Server is shutting down...")
	connManager.CloseAll("Server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}

package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamasit07/connect4-ai/internal/analytics"
	"github.com/iamasit07/connect4-ai/internal/config"
	"github.com/iamasit07/connect4-ai/internal/service/bot"
	"github.com/iamasit07/connect4-ai/internal/service/game"
	"github.com/iamasit07/connect4-ai/internal/transport/console"
	"github.com/iamasit07/connect4-ai/internal/transport/terminal"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.LoadConfig()

	difficulty := flag.String("difficulty", cfg.AIDifficulty, "AI difficulty: easy, medium or hard")
	depth := flag.Int("depth", cfg.AIDepth, "search depth in plies, overrides difficulty when positive")
	first := flag.String("first", cfg.FirstMover, "who moves first: human, ai or random")
	seed := flag.Int64("seed", cfg.RandomSeed, "random seed, 0 uses the clock")
	ui := flag.String("ui", cfg.UIMode, "front-end: console or tui")
	verbose := flag.Bool("v", false, "print session logs in console mode")
	flag.Parse()

	d, err := bot.ParseDifficulty(*difficulty)
	if err != nil {
		log.Fatalf("Invalid -difficulty: %v", err)
	}
	firstMover, err := game.ParseFirstMover(*first)
	if err != nil {
		log.Fatalf("Invalid -first: %v", err)
	}

	if *ui == "tui" || !*verbose {
		log.SetOutput(io.Discard)
	}

	publisher := analytics.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if closer, ok := publisher.(io.Closer); ok {
		defer closer.Close()
	}

	session := game.NewSession(game.SessionConfig{
		Difficulty: d,
		Depth:      *depth,
		FirstMover: firstMover,
		Seed:       *seed,
		Publisher:  publisher,
	})

	switch *ui {
	case "tui":
		runTUI(session)
	case "console":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := console.NewRunner(os.Stdin, os.Stdout, session).Run(ctx); err != nil && ctx.Err() == nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("Game error: %v", err)
		}
	default:
		log.SetOutput(os.Stderr)
		log.Fatalf("Unknown -ui %q, expected console or tui", *ui)
	}
}

func runTUI(session *game.Session) {
	ui, err := terminal.New(session)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to start terminal UI: %v", err)
	}
	defer ui.Shutdown()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ui.Run():
	case <-sig:
	}
}

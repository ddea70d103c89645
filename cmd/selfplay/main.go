package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/iamasit07/connect4-ai/internal/service/bot"
	"github.com/iamasit07/connect4-ai/internal/service/selfplay"
)

func main() {
	games := flag.Int("games", 100, "number of games to play")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent games")
	depthAI := flag.Int("depth-ai", bot.DefaultDepth, "search depth of the AI side")
	depthPlayer := flag.Int("depth-player", 3, "search depth of the player side")
	opening := flag.Int("opening", 2, "random opening plies per game")
	seed := flag.Int64("seed", 0, "random seed, 0 uses the clock")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("[SELFPLAY] %d games, %d workers, ai depth %d vs player depth %d", *games, *workers, *depthAI, *depthPlayer)

	tally, err := selfplay.Run(ctx, selfplay.Config{
		Games:        *games,
		Workers:      *workers,
		DepthAI:      *depthAI,
		DepthPlayer:  *depthPlayer,
		OpeningMoves: *opening,
		Seed:         *seed,
	})
	log.Printf("[SELFPLAY] %s", tally)
	if err != nil {
		log.Fatalf("[SELFPLAY] %v", err)
	}
}

package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/iamasit07/connect4-ai/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	Interval       time.Duration
	TTL            time.Duration
}

func NewWorker(sm *game.SessionManager, interval, ttl time.Duration) *Worker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Worker{SessionManager: sm, Interval: interval, TTL: ttl}
}

// Start runs the cleanup ticker until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] Background worker stopped")
				return
			case now := <-ticker.C:
				w.RunOnce(now)
			}
		}
	}()
	log.Printf("[CLEANUP] Background worker started (every %s, ttl %s)", w.Interval, w.TTL)
}

// RunOnce drops sessions idle for longer than the TTL as of now.
func (w *Worker) RunOnce(now time.Time) int {
	removed := w.SessionManager.CleanupOldSessions(now, w.TTL)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d idle sessions, %d still active", removed, w.SessionManager.Count())
	}
	return removed
}

package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/game"
)

func TestRunOnceRemovesIdleSessions(t *testing.T) {
	sm := game.NewSessionManager(game.SessionConfig{})
	s := sm.CreateSession(game.SessionConfig{Depth: 1, FirstMover: domain.PlayerPiece})

	w := NewWorker(sm, time.Minute, 30*time.Minute)
	if n := w.RunOnce(s.LastActive().Add(10 * time.Minute)); n != 0 {
		t.Fatalf("expected no removals, got %d", n)
	}
	if n := w.RunOnce(s.LastActive().Add(time.Hour)); n != 1 {
		t.Fatalf("expected 1 removal, got %d", n)
	}
}

func TestStartSweepsOnTick(t *testing.T) {
	sm := game.NewSessionManager(game.SessionConfig{})
	sm.CreateSession(game.SessionConfig{Depth: 1, FirstMover: domain.PlayerPiece})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWorker(sm, 5*time.Millisecond, 0)
	time.Sleep(2 * time.Millisecond)
	w.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for sm.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("worker did not remove the idle session")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewWorkerDefaultInterval(t *testing.T) {
	w := NewWorker(game.NewSessionManager(game.SessionConfig{}), 0, time.Hour)
	if w.Interval != 10*time.Minute {
		t.Fatalf("expected default interval, got %s", w.Interval)
	}
}

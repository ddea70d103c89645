package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/iamasit07/connect4-ai/internal/service/game"
)

func TestNewPublisherWithoutBrokers(t *testing.T) {
	p := NewPublisher(nil, "connect4.events")
	if _, ok := p.(Noop); !ok {
		t.Fatalf("expected Noop publisher, got %T", p)
	}
	p.Publish(context.Background(), game.Event{Name: game.EventMove})
}

func TestNilKafkaPublisherIsSafe(t *testing.T) {
	var p *KafkaPublisher
	p.Publish(context.Background(), game.Event{Name: game.EventMove})
	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEncodeEvent(t *testing.T) {
	ev := game.Event{
		Name:   game.EventMove,
		GameID: "g-1",
		At:     time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		Data:   map[string]any{"by": "ai", "column": 3},
	}

	b, err := encodeEvent(ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"event":  "move",
		"gameId": "g-1",
		"ts":     "2026-03-04T05:06:07Z",
		"data":   map[string]any{"by": "ai", "column": float64(3)},
	}
	if diff := cmp.Diff(want, raw); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestConsumerHandle(t *testing.T) {
	c := &Consumer{Metrics: NewMetrics()}

	b, err := encodeEvent(game.Event{Name: game.EventGameStart, GameID: "g", At: time.Now()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.handle(b)
	c.handle([]byte("not json"))

	if got := c.Metrics.Snapshot().TotalGames; got != 1 {
		t.Fatalf("expected 1 game, got %d", got)
	}
}

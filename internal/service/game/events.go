package game

import (
	"context"
	"time"
)

const (
	EventGameStart = "game.start"
	EventMove      = "move"
	EventGameEnd   = "game.end"
)

// Event is a game lifecycle notification handed to a Publisher.
type Event struct {
	Name   string         `json:"event"`
	GameID string         `json:"gameId"`
	At     time.Time      `json:"ts"`
	Data   map[string]any `json:"data,omitempty"`
}

// Publisher receives game events. Implementations must not block the caller
// for long; a session publishes while holding its lock.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, ev Event)

func (f PublisherFunc) Publish(ctx context.Context, ev Event) {
	f(ctx, ev)
}

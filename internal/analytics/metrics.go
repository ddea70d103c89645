package analytics

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/game"
)

// Snapshot is a point-in-time copy of the totals.
type Snapshot struct {
	TotalGames      int
	TotalMoves      int
	AIWins          int
	PlayerWins      int
	Draws           int
	InProgress      int
	GamesByHour     map[int]int
	AverageDuration time.Duration
}

// Metrics aggregates game events into running totals.
type Metrics struct {
	mu         sync.Mutex
	totals     Snapshot
	finished   int
	gameStarts map[string]time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		totals:     Snapshot{GamesByHour: make(map[int]int)},
		gameStarts: make(map[string]time.Time),
	}
}

// Apply folds one event into the totals. Unknown event names are ignored.
func (m *Metrics) Apply(ev game.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &m.totals
	switch ev.Name {
	case game.EventGameStart:
		t.TotalGames++
		t.GamesByHour[ev.At.Hour()]++
		m.gameStarts[ev.GameID] = ev.At

	case game.EventMove:
		t.TotalMoves++

	case game.EventGameEnd:
		if start, exists := m.gameStarts[ev.GameID]; exists {
			duration := ev.At.Sub(start)
			m.finished++
			t.AverageDuration += (duration - t.AverageDuration) / time.Duration(m.finished)
			delete(m.gameStarts, ev.GameID)
		}

		switch domain.GameStatus(fmt.Sprint(ev.Data["status"])) {
		case domain.StatusAIWin:
			t.AIWins++
		case domain.StatusPlayerWin:
			t.PlayerWins++
		case domain.StatusDraw:
			t.Draws++
		}
	}
}

func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.totals
	s.InProgress = len(m.gameStarts)
	s.GamesByHour = make(map[int]int, len(m.totals.GamesByHour))
	for h, n := range m.totals.GamesByHour {
		s.GamesByHour[h] = n
	}
	return s
}

func (s Snapshot) Print() {
	log.Println("=== GAME ANALYTICS ===")
	log.Printf("Total Games: %d (%d in progress)", s.TotalGames, s.InProgress)
	log.Printf("Total Moves: %d", s.TotalMoves)
	log.Printf("Average Game Duration: %v", s.AverageDuration.Round(time.Second))
	log.Printf("AI Wins: %d, Player Wins: %d, Draws: %d", s.AIWins, s.PlayerWins, s.Draws)

	hours := make([]int, 0, len(s.GamesByHour))
	for h := range s.GamesByHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	log.Println("Games by Hour:")
	for _, h := range hours {
		log.Printf("  %02d:00 - %d games", h, s.GamesByHour[h])
	}
	log.Println("=====================")
}

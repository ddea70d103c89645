package game

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*Session // gameID → Session
	mu       sync.RWMutex
	defaults SessionConfig
}

// NewSessionManager returns a manager whose sessions start from defaults.
func NewSessionManager(defaults SessionConfig) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		defaults: defaults,
	}
}

// Defaults returns a copy of the config new sessions start from.
func (sm *SessionManager) Defaults() SessionConfig {
	return sm.defaults
}

func (sm *SessionManager) CreateSession(cfg SessionConfig) *Session {
	if cfg.Publisher == nil {
		cfg.Publisher = sm.defaults.Publisher
	}

	session := NewSession(cfg)

	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s (%s, depth %d)", session.ID, session.Difficulty, session.State().Depth)
	return session
}

func (sm *SessionManager) GetSession(gameID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[gameID]; !exists {
		return fmt.Errorf("session %s not found", gameID)
	}

	log.Printf("[SESSION] Removing session %s", gameID)
	delete(sm.sessions, gameID)
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// ActiveGames returns snapshots of every registered session, oldest first.
func (sm *SessionManager) ActiveGames() []Snapshot {
	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	out := make([]Snapshot, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.State())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// CleanupOldSessions drops sessions with no activity for longer than ttl and
// returns how many were removed.
func (sm *SessionManager) CleanupOldSessions(now time.Time, ttl time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	for gameID, session := range sm.sessions {
		if now.Sub(session.LastActive()) > ttl {
			delete(sm.sessions, gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}

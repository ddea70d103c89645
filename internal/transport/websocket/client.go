package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// ConnectionManager tracks one socket per game session.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// conn.WriteJSON is not safe for concurrent use
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // protects the maps
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[gameID]; exists && oldConn != conn {
		oldConn.Close()
	}
	cm.connections[gameID] = conn
	cm.writeMu[gameID] = &sync.Mutex{}
}

func (cm *ConnectionManager) RemoveConnection(gameID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[gameID]; exists {
		conn.Close()
		delete(cm.connections, gameID)
		delete(cm.writeMu, gameID)
	}
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// SendMessage writes a JSON message to the game's socket. Unknown games are
// ignored.
func (cm *ConnectionManager) SendMessage(gameID string, message ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[gameID]
	mu, muExists := cm.writeMu[gameID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

// CloseAll notifies every client and closes the sockets, used on shutdown.
func (cm *ConnectionManager) CloseAll(reason string) {
	cm.mu.RLock()
	ids := make([]string, 0, len(cm.connections))
	for id := range cm.connections {
		ids = append(ids, id)
	}
	cm.mu.RUnlock()

	for _, id := range ids {
		_ = cm.SendMessage(id, errorMessage(reason))
		cm.RemoveConnection(id)
	}
}

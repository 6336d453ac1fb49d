package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connectfour/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// client is one feed connection. gorilla connections allow a single
// concurrent writer, so every write goes through writeMu.
type client struct {
	conn     *websocket.Conn
	gameID   domain.GameID
	playerID string
	writeMu  sync.Mutex
}

func (c *client) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

func (c *client) close(code int, reason string) {
	_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
	c.conn.Close()
}

// ConnectionManager tracks open feed connections so they can be closed on
// shutdown; http.Server.Shutdown does not touch hijacked connections.
type ConnectionManager struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{clients: make(map[*client]struct{})}
}

func (cm *ConnectionManager) add(c *client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.clients[c] = struct{}{}
}

func (cm *ConnectionManager) remove(c *client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.clients, c)
}

// Count returns the number of open connections, optionally for one game.
func (cm *ConnectionManager) Count(id domain.GameID) int {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if id == "" {
		return len(cm.clients)
	}
	n := 0
	for c := range cm.clients {
		if c.gameID == id {
			n++
		}
	}
	return n
}

// CloseAll sends a going-away close frame to every connection.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	clients := make([]*client, 0, len(cm.clients))
	for c := range cm.clients {
		clients = append(clients, c)
	}
	cm.mu.Unlock()

	for _, c := range clients {
		c.close(websocket.CloseGoingAway, "server shutting down")
	}
}

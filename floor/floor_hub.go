// Package floor fans reservation and table events out to the front-of-house
// screens connected over websocket.
package floor

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub keeps the connected screens and the role each one logged in with.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast sends msg to every client. Clients that fail a write are dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, role := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithField("role", role).Printf("Error sending message to client: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
	utils.InfoLogger.Debugf("Broadcast %s to %d clients", msg.Event, len(h.clients))
}

package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgItemSaved     MessageType = "item_saved"
	MsgItemSubmitted MessageType = "item_submitted"
	MsgWatcherJoined MessageType = "watcher_joined"
	MsgError         MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages the committee members watching feedback items live
type Hub struct {
	// itemID -> staffID -> connection
	watchers map[string]map[string]*Connection

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one watcher's WebSocket connection
type Connection struct {
	ItemID  string
	StaffID string
	Send    chan []byte
	Hub     *Hub
}

// BroadcastMessage is a message for every watcher of one item
type BroadcastMessage struct {
	ItemID  string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		watchers:   make(map[string]map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.watchers[conn.ItemID] == nil {
				h.watchers[conn.ItemID] = make(map[string]*Connection)
			}
			h.watchers[conn.ItemID][conn.StaffID] = conn
			log.Printf("Watcher %s connected to item %s", conn.StaffID, conn.ItemID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.watchers[conn.ItemID]; ok {
				if existing, ok := conns[conn.StaffID]; ok && existing == conn {
					delete(conns, conn.StaffID)
					close(conn.Send)
					log.Printf("Watcher %s disconnected from item %s", conn.StaffID, conn.ItemID)
				}
				if len(conns) == 0 {
					delete(h.watchers, conn.ItemID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for _, conn := range h.watchers[msg.ItemID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToWatchers sends a message to every watcher of an item
// (implements service.Broadcaster)
func (h *Hub) BroadcastToWatchers(itemID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		ItemID: itemID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

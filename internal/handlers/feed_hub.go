package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"designmecha-mes/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHub is the single broadcast hub pushing plan lifecycle events to
// production board clients.
var FeedHub = NewHub()

// PlanEvent is one lifecycle notification on the feed.
type PlanEvent struct {
	Type     string                  `json:"type"` // created, updated, completed, reverted, deleted
	PlanID   uint                    `json:"planId"`
	Status   models.ProductionStatus `json:"status,omitempty"`
	Operator string                  `json:"operator,omitempty"`
}

type feedClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected feed clients and fans events out to all of them.
type Hub struct {
	clients    map[*feedClient]bool
	broadcast  chan []byte
	register   chan *feedClient
	unregister chan *feedClient
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 16),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
		clients:    make(map[*feedClient]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			slog.Info("Feed client connected", "clients", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish serializes the event and hands it to the broadcast loop. Safe to
// call with no clients connected.
func (h *Hub) Publish(event PlanEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal feed event", "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		slog.Warn("Feed broadcast buffer full, dropping event", "planId", event.PlanID)
	}
}

func (c *feedClient) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// The feed is one-way; the read pump only drains control frames and
// detects disconnects.
func (c *feedClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Unexpected websocket close", "error", err)
			}
			break
		}
	}
}

// ProductionFeedEndpoint upgrades the connection and attaches it to the hub.
func ProductionFeedEndpoint(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}

	client := &feedClient{
		hub:  FeedHub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

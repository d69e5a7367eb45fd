package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"fw-panel/internal/models"
)

// Hub fans live activity out to connected dashboard clients: every new log
// entry as it happens, plus a statistics snapshot every two seconds.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	stats      func() (models.Statistics, error)
	mutex      sync.RWMutex
}

// feedMessage is the envelope pushed over /ws/feed.
type feedMessage struct {
	Type  string             `json:"type"` // "log" or "statistics"
	Log   string             `json:"log,omitempty"`
	Stats *models.Statistics `json:"statistics,omitempty"`
}

var WSHub *Hub

func NewHub(stats func() (models.Statistics, error)) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		stats:      stats,
	}
}

func (h *Hub) Run() {
	go h.broadcastStats()

	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) broadcastStats() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		h.mutex.RLock()
		clientCount := len(h.clients)
		h.mutex.RUnlock()

		if clientCount == 0 {
			continue
		}

		stats, err := h.stats()
		if err != nil {
			continue
		}

		data, err := json.Marshal(feedMessage{Type: "statistics", Stats: &stats})
		if err != nil {
			continue
		}

		h.broadcast <- data
	}
}

// PublishLog pushes one activity log entry to all connected clients.
// Registered as the orchestrator's log sink.
func (h *Hub) PublishLog(entry string) {
	data, err := json.Marshal(feedMessage{Type: "log", Log: entry})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- data:
	default:
		// feed is best-effort; drop rather than block the orchestrator
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.register <- conn
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}

func HandleWebSocket(c *websocket.Conn) {
	WSHub.Register(c)
	defer WSHub.Unregister(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

func InitHub(stats func() (models.Statistics, error)) {
	WSHub = NewHub(stats)
	go WSHub.Run()
}

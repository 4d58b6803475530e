package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"storecounter/internal/dto"
	"storecounter/internal/logger"
	"storecounter/internal/model"
)

const (
	writeWait      = 10 * time.Second
	broadcastQueue = 64

	// DefaultPongWait is how long a viewer may stay silent before its read deadline expires.
	DefaultPongWait = 60 * time.Second
)

// HubService fans stored records out to connected live viewers.
type HubService struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	pongWait   time.Duration
	mutex      sync.RWMutex
	logger     *logger.Logger
}

// Option adjusts a HubService.
type Option func(*HubService)

// WithPongWait sets the viewer read deadline; pings go out at 9/10 of it.
func WithPongWait(d time.Duration) Option {
	return func(h *HubService) {
		h.pongWait = d
	}
}

func NewHubService(logger *logger.Logger, opts ...Option) *HubService {
	h := &HubService{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, broadcastQueue),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		pongWait:   DefaultPongWait,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PongWait is the read deadline viewers get; every pong extends it.
func (h *HubService) PongWait() time.Duration {
	return h.pongWait
}

// Run serves register/unregister/broadcast requests and pings viewers until
// ctx is cancelled, then closes every remaining client.
func (h *HubService) Run(ctx context.Context) {
	defer close(h.done)

	ticker := time.NewTicker(h.pongWait * 9 / 10)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("Live viewer connected. Total: %d", total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("Live viewer disconnected. Total: %d", total)

		case <-ticker.C:
			h.mutex.Lock()
			for client := range h.clients {
				if err := client.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					h.logger.Warning("Error pinging live viewer: %v", err)
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				client.SetWriteDeadline(time.Now().Add(writeWait))
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Warning("Error sending live event: %v", err)
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register adds a viewer. It returns false once the hub has stopped.
func (h *HubService) Register(client *websocket.Conn) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *HubService) Unregister(client *websocket.Conn) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues a record for every viewer. Events are dropped when the queue is full.
func (h *HubService) Publish(rec model.HistoryRecord) {
	message, err := json.Marshal(dto.LiveEvent{Type: "record", Record: dto.NewHistoryItem(rec)})
	if err != nil {
		h.logger.Error("Error encoding live event: %v", err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
		h.logger.Warning("Live queue full, dropping event for record #%d", rec.ID)
	}
}

func (h *HubService) GetClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Package ws pushes table events to connected screens over websockets.
package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/yahtzee-go/internal/api/response"
	"github.com/mcoot/yahtzee-go/internal/events"
	"github.com/mcoot/yahtzee-go/internal/model"
)

// Hub manages websocket clients watching a single table
type Hub struct {
	tableID model.TableID
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a new Hub for a table
func NewHub(tableID model.TableID, logger *slog.Logger) *Hub {
	return &Hub{
		tableID:    tableID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("table_id", string(tableID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Debug("ws hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("ws client registered",
				slog.String("remote", client.remote),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("ws client unregistered",
					slog.String("remote", client.remote),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.deliver(message)

		case <-h.done:
			// Messages queued before Close still go out ahead of the close frame
			for pending := true; pending; {
				select {
				case message := <-h.broadcast:
					h.deliver(message)
				default:
					pending = false
				}
			}

			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Debug("ws hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

func (h *Hub) deliver(message []byte) {
	h.mu.RLock()
	dropped := 0
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			dropped++
		}
	}
	h.mu.RUnlock()
	if dropped > 0 {
		h.logger.Warn("ws messages dropped - client buffer full", slog.Int("dropped", dropped))
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("ws broadcast dropped - hub buffer full")
	}
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HubManager keeps one hub per table and publishes table events to them
type HubManager struct {
	hubs   map[model.TableID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

var _ events.Publisher = (*HubManager)(nil)

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.TableID]*Hub),
		logger: logger.With(slog.String("component", "ws")),
	}
}

// GetOrCreateHub returns the hub for a table, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(tableID model.TableID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[tableID]; ok {
		return hub
	}

	hub := NewHub(tableID, m.logger)
	m.hubs[tableID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a table, or nil if it doesn't exist
func (m *HubManager) GetHub(tableID model.TableID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[tableID]
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(tableID model.TableID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[tableID]; ok {
		hub.Close()
		delete(m.hubs, tableID)
		m.logger.Info("ws hub removed", slog.String("table_id", string(tableID)))
	}
}

// Publish encodes the event and broadcasts it to the table's watchers.
// Events for tables nobody is watching are dropped. A table's last event
// (game complete or abandoned) also removes its hub.
func (m *HubManager) Publish(event model.Event) {
	hub := m.GetHub(event.TableID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(response.EventFromModel(event))
	if err != nil {
		m.logger.Error("ws failed to encode event",
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()))
		return
	}
	hub.Broadcast(data)

	if event.Type == model.EventGameComplete || event.Type == model.EventGameAbandoned {
		m.RemoveHub(event.TableID)
	}
}

// CloseAll closes every hub, disconnecting all clients
func (m *HubManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}

// Package hub provides a thread-safe websocket broadcast hub using the
// channel-based fan-out pattern. The twin server uses it to stream
// animation decisions to connected renderers and dashboards.
package hub

import (
	"encoding/json"

	"github.com/vitatwin/go-twin/internal/log"
)

// Hub maintains the set of active clients and fans messages out to them.
type Hub struct {
	name string

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// New creates a hub. name labels it in logs.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's main loop. Call it in a goroutine; it returns after
// Stop, closing every client's send channel.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Debug("hub client connected", "hub", h.name, "client", client.id, "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			log.Debug("hub client disconnected", "hub", h.name, "client", client.id, "remaining", len(h.clients))

		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Slow client: drop it rather than block the hub.
					close(client.send)
					delete(h.clients, client)
					log.Warn("hub dropped slow client", "hub", h.name, "client", client.id)
				}
			}

		case <-h.done:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}

// Stop shuts the hub down and disconnects all clients.
func (h *Hub) Stop() {
	close(h.done)
}

// add registers a client. After Stop the client's send channel is closed
// instead, so its pumps shut the connection down; the register channel has
// no receiver once Run returns.
func (h *Hub) add(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
}

// remove unregisters a client. Safe after Stop, when Run no longer
// receives and the done branch already closed the client's send channel.
func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast sends raw bytes to all connected clients. Drops the message if
// the hub's queue is full.
func (h *Hub) Broadcast(data []byte) {
	select {
	case h.broadcast <- data:
	default:
		log.Warn("hub broadcast queue full, dropping message", "hub", h.name)
	}
}

// BroadcastJSON encodes v and broadcasts it. Returns ErrStopped after the
// hub has shut down.
func (h *Hub) BroadcastJSON(v any) error {
	select {
	case <-h.done:
		return ErrStopped
	default:
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(data)
	return nil
}

package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Room names. Customer trackers join a dynamic per-order room.
const (
	RoomAdmin   = "admin"
	RoomKitchen = "kitchen"
)

// OrderRoom returns the per-order tracking room name
func OrderRoom(orderID string) string {
	return "order-" + orderID
}

// Event names pushed to subscribers
const (
	EventNewOrder           = "new-order"
	EventOrderStatusUpdated = "order-status-updated"
	EventInventoryUpdated   = "inventory-updated"
	EventDashboardUpdate    = "dashboard-update"
)

// Event is the wire envelope for every broadcast
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// sendBuffer bounds how far a slow subscriber may fall behind before
// events are dropped for it.
const sendBuffer = 32

// Client is one connected subscriber. Receive drains the events broadcast
// to any room the client has joined.
type Client struct {
	hub   *Hub
	send  chan []byte
	rooms map[string]bool
}

// Receive returns the client's event stream. Closed when the client closes.
func (c *Client) Receive() <-chan []byte {
	return c.send
}

// Hub fans out events to room-scoped subscribers. Delivery is
// fire-and-forget: no acknowledgement, no replay, and a subscriber that
// cannot keep up has events dropped rather than blocking the sender.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]bool)}
}

// NewClient registers a subscriber with no room memberships yet
func (h *Hub) NewClient() *Client {
	return &Client{
		hub:   h,
		send:  make(chan []byte, sendBuffer),
		rooms: make(map[string]bool),
	}
}

// Join subscribes the client to a room
func (h *Hub) Join(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]bool)
		h.rooms[room] = members
	}
	members[c] = true
	c.rooms[room] = true
}

// Leave unsubscribes the client from a room
func (h *Hub) Leave(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(room, c)
}

func (h *Hub) leaveLocked(room string, c *Client) {
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.rooms, room)
}

// Close removes the client from all rooms and closes its event stream
func (h *Hub) Close(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range c.rooms {
		h.leaveLocked(room, c)
	}
	close(c.send)
}

// Broadcast sends an event to every subscriber of the given rooms. A
// client in more than one of the rooms receives the event once.
func (h *Hub) Broadcast(event string, data any, rooms ...string) {
	b, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Printf("realtime: marshal %s: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := make(map[*Client]bool)
	for _, room := range rooms {
		for c := range h.rooms[room] {
			if delivered[c] {
				continue
			}
			delivered[c] = true
			select {
			case c.send <- b:
			default:
				// slow subscriber: drop, never block the caller
			}
		}
	}
}

// RoomSize reports the number of subscribers in a room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

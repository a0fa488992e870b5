package websocket

import (
	"log"
	"sync"

	"github.com/wkalinowski/huddle/internal/metrics"
)

// Hub is the transport gateway: it owns every live connection and the
// room-keyed groups used for broadcast addressing. All sends are best-effort;
// a connection with a full queue just misses the frame.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
	}
}

// Register adds a client and tells it its own connection id.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	metrics.ActiveConnections.Inc()
	log.Printf("Client registered: %s", client.ID)

	client.SendEvent(EventConnected, map[string]string{
		"connectionId": client.ID,
	})
}

// Unregister removes a client from every room group and closes its send
// queue. Safe to call for a client that was never registered.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	for roomID, room := range h.rooms {
		if _, ok := room[client.ID]; ok {
			delete(room, client.ID)
			if len(room) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)

	metrics.ActiveConnections.Dec()
	log.Printf("Client unregistered: %s", client.ID)
}

// AddToRoom puts a connection into a room's broadcast group.
func (h *Hub) AddToRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]*Client)
	}
	h.rooms[roomID][client.ID] = client
}

// RemoveFromRoom takes a connection out of a room's broadcast group.
func (h *Hub) RemoveFromRoom(connID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[roomID]; ok {
		delete(room, connID)
		if len(room) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// SendToConn delivers a frame to one connection and reports whether the
// target was registered. Sends to connections that no longer exist are
// swallowed, which is what the relay contract wants. The read lock is held
// across the send so Unregister cannot close the queue underneath it.
func (h *Hub) SendToConn(connID string, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[connID]
	if !ok {
		return false
	}

	select {
	case client.Send <- data:
	default:
		log.Printf("Client %s send channel full", client.ID)
	}
	return true
}

// BroadcastToRoom delivers a frame to every connection in a room. Pass a
// non-empty excludeConnID to leave the originator out.
func (h *Hub) BroadcastToRoom(roomID string, data []byte, excludeConnID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[roomID] {
		if client.ID == excludeConnID {
			continue
		}
		select {
		case client.Send <- data:
		default:
			log.Printf("Client %s send channel full", client.ID)
		}
	}
}

// RoomConnIDs returns the connection ids currently grouped under a room.
func (h *Hub) RoomConnIDs(roomID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.rooms[roomID]))
	for id := range h.rooms[roomID] {
		ids = append(ids, id)
	}
	return ids
}

// Package registry tracks which usernames are connected to which room right
// now. It is purely in-memory bookkeeping; durable room existence is checked
// by the caller before anything lands here.
package registry

import (
	"sync"

	"github.com/wkalinowski/huddle/internal/metrics"
)

// ActiveRoomState mirrors a durable room for as long as at least one
// connection is bound to it. Participants are kept in join order; identity is
// the username string, so two connections claiming the same name collapse
// into one entry.
type ActiveRoomState struct {
	RoomID       string
	Name         string
	Mode         string
	participants []string
}

type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*ActiveRoomState
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*ActiveRoomState),
	}
}

// EnsureActive returns the in-memory state for a room, creating it on first
// join. Repeated calls with the same id return the same state.
func (r *Registry) EnsureActive(roomID, name, mode string) *ActiveRoomState {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state, ok := r.rooms[roomID]; ok {
		return state
	}

	state := &ActiveRoomState{
		RoomID: roomID,
		Name:   name,
		Mode:   mode,
	}
	r.rooms[roomID] = state
	metrics.ActiveRooms.Inc()

	return state
}

// AddParticipant inserts a username into the room's participant set. Adding a
// name that is already present is a no-op. Unknown rooms are ignored.
func (r *Registry) AddParticipant(roomID, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.rooms[roomID]
	if !ok {
		return
	}

	for _, p := range state.participants {
		if p == username {
			return
		}
	}
	state.participants = append(state.participants, username)
}

// RemoveParticipant removes a username from the room. When the last
// participant leaves, the room's in-memory state is evicted entirely.
func (r *Registry) RemoveParticipant(roomID, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.rooms[roomID]
	if !ok {
		return
	}

	for i, p := range state.participants {
		if p == username {
			state.participants = append(state.participants[:i], state.participants[i+1:]...)
			break
		}
	}

	if len(state.participants) == 0 {
		delete(r.rooms, roomID)
		metrics.ActiveRooms.Dec()
	}
}

// Participants returns a point-in-time copy of the room's participant list,
// never the live slice, so callers can iterate while membership changes.
func (r *Registry) Participants(roomID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rooms[roomID]
	if !ok {
		return []string{}
	}

	snapshot := make([]string, len(state.participants))
	copy(snapshot, state.participants)
	return snapshot
}

// Contains reports whether a room has live in-memory state.
func (r *Registry) Contains(roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[roomID]
	return ok
}

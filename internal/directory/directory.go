// Package directory maps live connections to the (room, username) pair they
// are acting as. A connection holds at most one binding at a time.
package directory

import (
	"sync"
)

type Binding struct {
	RoomID   string
	Username string
}

type Directory struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

func NewDirectory() *Directory {
	return &Directory{
		bindings: make(map[string]Binding),
	}
}

// Bind associates a connection with a room and username, silently replacing
// any prior binding for that connection.
func (d *Directory) Bind(connID, roomID, username string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.bindings[connID] = Binding{RoomID: roomID, Username: username}
}

// Unbind atomically removes and returns the binding for a connection. The
// second return value is false when the connection was never bound.
func (d *Directory) Unbind(connID string) (Binding, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.bindings[connID]
	if ok {
		delete(d.bindings, connID)
	}
	return b, ok
}

// Lookup returns the binding for a connection without removing it. A missing
// binding is not an error here; callers decide what it means.
func (d *Directory) Lookup(connID string) (Binding, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	b, ok := d.bindings[connID]
	return b, ok
}

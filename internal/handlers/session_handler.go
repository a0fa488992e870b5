package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/wkalinowski/huddle/internal/cache"
	"github.com/wkalinowski/huddle/internal/database"
	"github.com/wkalinowski/huddle/internal/directory"
	"github.com/wkalinowski/huddle/internal/handlers/dto"
	"github.com/wkalinowski/huddle/internal/metrics"
	"github.com/wkalinowski/huddle/internal/models"
	"github.com/wkalinowski/huddle/internal/registry"
	ws "github.com/wkalinowski/huddle/internal/websocket"
)

// SessionHandler is the session coordinator: every inbound connection event
// lands here, gets checked against the directory and registry, optionally
// hits the store, and fans back out through the hub.
type SessionHandler struct {
	db    *database.Database
	cache *cache.RoomCache
	reg   *registry.Registry
	dir   *directory.Directory
	hub   *ws.Hub

	// msgMu serializes persist+broadcast for chat messages so the broadcast
	// order always matches the store-assigned id order.
	msgMu sync.Mutex
}

func NewSessionHandler(db *database.Database, roomCache *cache.RoomCache, reg *registry.Registry, dir *directory.Directory, hub *ws.Hub) *SessionHandler {
	return &SessionHandler{
		db:    db,
		cache: roomCache,
		reg:   reg,
		dir:   dir,
		hub:   hub,
	}
}

// HandleEvent dispatches a decoded inbound event for one connection.
func (h *SessionHandler) HandleEvent(client *ws.Client, ev *ws.Event) error {
	switch ev.Type {
	case ws.EventJoinRoom:
		return h.handleJoin(client, ev)

	case ws.EventSendMessage:
		return h.handleSendMessage(client, ev)

	case ws.EventWebRTCOffer, ws.EventWebRTCAnswer, ws.EventWebRTCICE:
		return h.handleSignal(client, ev)

	case ws.EventMediaStateChanged:
		return h.handleMediaState(client, ev)

	default:
		log.Printf("Unknown event type: %s", ev.Type)
		return nil
	}
}

func (h *SessionHandler) handleJoin(client *ws.Client, ev *ws.Event) error {
	var payload dto.JoinRoomPayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		client.SendError(ws.ErrKindValidation, "missing required fields")
		return err
	}

	if payload.RoomID == "" || payload.Username == "" {
		client.SendError(ws.ErrKindValidation, "missing required fields")
		return nil
	}

	room, err := h.activeRoom(context.Background(), payload.RoomID)
	if err != nil {
		if !errors.Is(err, database.ErrRoomNotFound) {
			log.Printf("Room lookup failed for %s: %v", payload.RoomID, err)
		}
		client.SendError(ws.ErrKindNotFound, "room does not exist")
		return nil
	}

	// Join history is advisory; a failed insert must not block the join.
	if err := h.db.RecordJoin(room.ID, payload.Username); err != nil {
		log.Printf("Failed to record join history for %s in %s: %v", payload.Username, room.ID, err)
	}

	h.dir.Bind(client.ID, room.ID, payload.Username)
	h.hub.AddToRoom(client, room.ID)

	h.reg.EnsureActive(room.ID, room.Name, room.Mode)
	h.reg.AddParticipant(room.ID, payload.Username)

	// Snapshot taken after the insert, so both notifications already list
	// the new member.
	participants := h.reg.Participants(room.ID)

	if data, err := ws.NewEvent(ws.EventUserJoined, dto.UserJoinedPayload{
		Username:     payload.Username,
		Participants: participants,
	}); err == nil {
		h.hub.BroadcastToRoom(room.ID, data, client.ID)
	}

	client.SendEvent(ws.EventRoomJoined, dto.RoomJoinedPayload{
		RoomID:       room.ID,
		RoomName:     room.Name,
		Mode:         room.Mode,
		Participants: participants,
	})

	metrics.JoinsTotal.Inc()
	log.Printf("%s joined room %s", payload.Username, room.ID)

	return nil
}

func (h *SessionHandler) handleSendMessage(client *ws.Client, ev *ws.Event) error {
	binding, ok := h.dir.Lookup(client.ID)
	if !ok {
		client.SendError(ws.ErrKindNotInRoom, "not in a room")
		return nil
	}

	var payload dto.SendMessagePayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		client.SendError(ws.ErrKindValidation, "missing required fields")
		return err
	}

	message := &models.Message{
		RoomID:    binding.RoomID,
		Author:    binding.Username,
		Content:   payload.Message,
		Timestamp: time.Now().UTC(),
	}

	h.msgMu.Lock()
	defer h.msgMu.Unlock()

	if err := h.db.SaveMessage(message); err != nil {
		// The message is dropped, not retried; nothing is broadcast.
		log.Printf("Failed to save message from %s in %s: %v", binding.Username, binding.RoomID, err)
		return nil
	}

	data, err := ws.NewEvent(ws.EventNewMessage, dto.NewMessagePayload{
		ID:        message.ID,
		Author:    message.Author,
		Message:   message.Content,
		Timestamp: message.Timestamp,
	})
	if err != nil {
		return err
	}

	// Everyone in the room gets the broadcast, the sender included; clients
	// render their own messages from this frame only.
	h.hub.BroadcastToRoom(binding.RoomID, data, "")

	metrics.MessagesTotal.Inc()
	log.Printf("Message from %s in room %s", binding.Username, binding.RoomID)

	return nil
}

// handleSignal forwards an opaque signaling payload to a single target
// connection, tagged with the sender's connection id. The payload is never
// interpreted beyond extracting the target.
func (h *SessionHandler) handleSignal(client *ws.Client, ev *ws.Event) error {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		return err
	}

	var target string
	if raw, ok := payload["targetConnectionId"]; ok {
		if err := json.Unmarshal(raw, &target); err != nil {
			return err
		}
	}
	if target == "" {
		return nil
	}

	delete(payload, "targetConnectionId")
	sender, err := json.Marshal(client.ID)
	if err != nil {
		return err
	}
	payload["senderConnectionId"] = sender

	data, err := ws.NewEvent(ev.Type, payload)
	if err != nil {
		return err
	}

	// A vanished target is a silent no-op; the sender is never told.
	if h.hub.SendToConn(target, data) {
		metrics.SignalsRelayedTotal.Inc()
	}

	return nil
}

func (h *SessionHandler) handleMediaState(client *ws.Client, ev *ws.Event) error {
	binding, ok := h.dir.Lookup(client.ID)
	if !ok {
		// Unbound connections are ignored here, with no error event.
		return nil
	}

	var payload dto.MediaStatePayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		return err
	}

	data, err := ws.NewEvent(ws.EventPeerMediaStateChanged, dto.PeerMediaStatePayload{
		Username:     binding.Username,
		ConnectionID: client.ID,
		Audio:        payload.Audio,
		Video:        payload.Video,
	})
	if err != nil {
		return err
	}

	h.hub.BroadcastToRoom(binding.RoomID, data, client.ID)

	return nil
}

// HandleDisconnect tears down whatever state the connection held. Called once
// from the read pump when the socket goes away.
func (h *SessionHandler) HandleDisconnect(client *ws.Client) {
	binding, ok := h.dir.Unbind(client.ID)
	if !ok {
		return
	}

	h.hub.RemoveFromRoom(client.ID, binding.RoomID)
	h.reg.RemoveParticipant(binding.RoomID, binding.Username)

	if data, err := ws.NewEvent(ws.EventUserLeft, dto.UserLeftPayload{
		Username:     binding.Username,
		Participants: h.reg.Participants(binding.RoomID),
	}); err == nil {
		h.hub.BroadcastToRoom(binding.RoomID, data, "")
	}

	log.Printf("%s left room %s", binding.Username, binding.RoomID)
}

// activeRoom is the read path for durable rooms: cache first, store on a
// miss, successful lookups written back to the cache.
func (h *SessionHandler) activeRoom(ctx context.Context, roomID string) (*models.Room, error) {
	return lookupActiveRoom(ctx, h.cache, h.db, roomID)
}

func lookupActiveRoom(ctx context.Context, roomCache *cache.RoomCache, db *database.Database, roomID string) (*models.Room, error) {
	if roomCache != nil {
		room, err := roomCache.Get(ctx, roomID)
		if err != nil {
			log.Printf("Room cache read failed for %s: %v", roomID, err)
		}
		if room != nil {
			return room, nil
		}
	}

	room, err := db.GetActiveRoom(roomID)
	if err != nil {
		return nil, err
	}

	if roomCache != nil {
		if err := roomCache.Set(ctx, room); err != nil {
			log.Printf("Room cache write failed for %s: %v", roomID, err)
		}
	}

	return room, nil
}

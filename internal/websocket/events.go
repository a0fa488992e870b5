package websocket

import (
	"encoding/json"
)

// EventType names follow the wire protocol spoken by clients.
type EventType string

const (
	// Inbound
	EventJoinRoom          EventType = "join-room"
	EventSendMessage       EventType = "send-message"
	EventWebRTCOffer       EventType = "webrtc-offer"
	EventWebRTCAnswer      EventType = "webrtc-answer"
	EventWebRTCICE         EventType = "webrtc-ice-candidate"
	EventMediaStateChanged EventType = "media-state-changed"

	// Outbound
	EventConnected             EventType = "connected"
	EventRoomJoined            EventType = "room-joined"
	EventUserJoined            EventType = "user-joined"
	EventUserLeft              EventType = "user-left"
	EventNewMessage            EventType = "new-message"
	EventError                 EventType = "error"
	EventPeerMediaStateChanged EventType = "peer-media-state-changed"
)

// Error kinds carried alongside client-facing error messages.
const (
	ErrKindNotFound    = "not_found"
	ErrKindValidation  = "validation"
	ErrKindNotInRoom   = "not_in_room"
	ErrKindPersistence = "persistence"
)

// Event is the envelope every websocket frame carries in both directions.
// Payloads stay raw until the coordinator knows what to decode them into.
type Event struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func NewEvent(t EventType, payload interface{}) ([]byte, error) {
	ev := Event{Type: t}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		ev.Data = data
	}

	return json.Marshal(ev)
}

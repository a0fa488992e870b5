package dto

import (
	"time"
)

// Inbound event payloads.

type JoinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type SendMessagePayload struct {
	Message string `json:"message"`
}

type MediaStatePayload struct {
	Audio bool `json:"audio"`
	Video bool `json:"video"`
}

// Outbound event payloads.

type RoomJoinedPayload struct {
	RoomID       string   `json:"roomId"`
	RoomName     string   `json:"roomName"`
	Mode         string   `json:"mode"`
	Participants []string `json:"participants"`
}

type UserJoinedPayload struct {
	Username     string   `json:"username"`
	Participants []string `json:"participants"`
}

type UserLeftPayload struct {
	Username     string   `json:"username"`
	Participants []string `json:"participants"`
}

type NewMessagePayload struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type PeerMediaStatePayload struct {
	Username     string `json:"username"`
	ConnectionID string `json:"connectionId"`
	Audio        bool   `json:"audio"`
	Video        bool   `json:"video"`
}

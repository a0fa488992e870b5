package dto

import (
	"github.com/pion/webrtc/v3"

	"github.com/wkalinowski/huddle/internal/models"
)

type CreateRoomRequest struct {
	Name    string `json:"name" binding:"required"`
	Mode    string `json:"mode" binding:"required,oneof=chat video"`
	Creator string `json:"creator" binding:"required"`
}

type CreateRoomResponse struct {
	RoomID        string `json:"roomId"`
	ShareableLink string `json:"shareableLink"`
}

type RoomResponse struct {
	Room         *models.Room     `json:"room"`
	Participants []string         `json:"participants"`
	Messages     []models.Message `json:"messages"`
}

type InviteResponse struct {
	RoomID   string `json:"roomId"`
	RoomName string `json:"roomName"`
	Mode     string `json:"mode"`
}

type WebRTCConfig struct {
	ICEServers []webrtc.ICEServer `json:"iceServers"`
}

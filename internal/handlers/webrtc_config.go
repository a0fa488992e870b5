package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v3"

	"github.com/wkalinowski/huddle/internal/handlers/dto"
)

// ICEServers builds the ICE server list handed to video-mode clients. STUN
// defaults to public Google servers; TURN is added when configured.
func ICEServers() []webrtc.ICEServer {
	stunServers := []string{
		"stun:stun.l.google.com:19302",
		"stun:stun1.l.google.com:19302",
	}
	if custom := os.Getenv("STUN_SERVERS"); custom != "" {
		stunServers = []string{custom}
	}

	servers := make([]webrtc.ICEServer, 0, len(stunServers)+1)
	for _, stun := range stunServers {
		servers = append(servers, webrtc.ICEServer{
			URLs: []string{stun},
		})
	}

	if turnURL := os.Getenv("TURN_URL"); turnURL != "" {
		servers = append(servers, webrtc.ICEServer{
			URLs:       []string{turnURL},
			Username:   os.Getenv("TURN_USERNAME"),
			Credential: os.Getenv("TURN_PASSWORD"),
		})
	}

	return servers
}

type ConfigHandler struct {
	iceServers []webrtc.ICEServer
}

func NewConfigHandler() *ConfigHandler {
	return &ConfigHandler{iceServers: ICEServers()}
}

// GetWebRTCConfig returns the ICE configuration used by clients to open
// their peer connections. The server itself never touches media.
func (h *ConfigHandler) GetWebRTCConfig(c *gin.Context) {
	c.JSON(http.StatusOK, dto.WebRTCConfig{ICEServers: h.iceServers})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	ws "github.com/wkalinowski/huddle/internal/websocket"
)

// WebSocketHandler upgrades HTTP requests into hub-managed connections.
type WebSocketHandler struct {
	hub      *ws.Hub
	session  *SessionHandler
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, session *SessionHandler) *WebSocketHandler {
	return &WebSocketHandler{
		hub:     hub,
		session: session,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict origins once the frontend host is pinned down
				return true
			},
		},
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.session)
}

package server

import (
	"github.com/gin-gonic/gin"

	"github.com/wkalinowski/huddle/internal/handlers"
	"github.com/wkalinowski/huddle/internal/metrics"
)

func APIEndpoints(r *gin.Engine, roomH *handlers.RoomHandler, configH *handlers.ConfigHandler, wsH *handlers.WebSocketHandler) {
	r.Use(metrics.Middleware())

	api := r.Group("/api")
	{
		api.POST("/rooms", roomH.CreateRoom)
		api.GET("/rooms/:id", roomH.GetRoom)
		api.GET("/rooms/:id/messages", roomH.GetRoomMessages)
		api.DELETE("/rooms/:id", roomH.DeactivateRoom)
		api.GET("/invites/:token", roomH.ResolveInvite)
		api.GET("/config/webrtc", configH.GetWebRTCConfig)
	}

	r.GET("/ws", wsH.HandleWebSocket)
	r.GET("/metrics", metrics.Handler())
}

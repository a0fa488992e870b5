package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wkalinowski/huddle/internal/cache"
	"github.com/wkalinowski/huddle/internal/database"
	"github.com/wkalinowski/huddle/internal/handlers/dto"
	"github.com/wkalinowski/huddle/internal/models"
	"github.com/wkalinowski/huddle/pkg/auth"
)

const (
	roomHistoryLimit    = 50
	defaultMessageLimit = 100
)

type RoomHandler struct {
	db        *database.Database
	cache     *cache.RoomCache
	invites   *auth.InviteManager
	publicURL string
}

func NewRoomHandler(db *database.Database, roomCache *cache.RoomCache, invites *auth.InviteManager, publicURL string) *RoomHandler {
	return &RoomHandler{
		db:        db,
		cache:     roomCache,
		invites:   invites,
		publicURL: publicURL,
	}
}

// CreateRoom creates a durable room and hands back a shareable link with a
// signed invite token baked in.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	room := &models.Room{
		ID:        newRoomID(),
		Name:      req.Name,
		Mode:      req.Mode,
		Creator:   req.Creator,
		CreatedAt: time.Now(),
		Active:    true,
	}

	if err := h.db.CreateRoom(room); err != nil {
		log.Printf("Failed to create room: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	invite, err := h.invites.Generate(room.ID)
	if err != nil {
		log.Printf("Failed to sign invite for %s: %v", room.ID, err)
	}

	link := fmt.Sprintf("%s/?room=%s&mode=%s", h.baseURL(c), room.ID, room.Mode)
	if invite != "" {
		link += "&invite=" + invite
	}

	c.JSON(http.StatusCreated, dto.CreateRoomResponse{
		RoomID:        room.ID,
		ShareableLink: link,
	})
}

// GetRoom returns room details, every username that ever joined, and the last
// 50 messages in chronological order.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID := c.Param("id")

	room, err := lookupActiveRoom(c.Request.Context(), h.cache, h.db, roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room does not exist"})
		return
	}

	participants, err := h.db.DistinctParticipants(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load participants"})
		return
	}

	messages, err := h.db.RecentMessages(roomID, roomHistoryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, dto.RoomResponse{
		Room:         room,
		Participants: participants,
		Messages:     messages,
	})
}

// GetRoomMessages returns the last N messages in chronological order.
func (h *RoomHandler) GetRoomMessages(c *gin.Context) {
	roomID := c.Param("id")

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultMessageLimit
	}

	messages, err := h.db.RecentMessages(roomID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// DeactivateRoom soft-deletes a room. History stays; new joins start failing
// the existence check.
func (h *RoomHandler) DeactivateRoom(c *gin.Context) {
	roomID := c.Param("id")

	if err := h.db.DeactivateRoom(roomID); err != nil {
		if err == database.ErrRoomNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "room does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate room"})
		return
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(c.Request.Context(), roomID); err != nil {
			log.Printf("Room cache invalidation failed for %s: %v", roomID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "room deactivated"})
}

// ResolveInvite exchanges a signed invite token for the room it points at.
func (h *RoomHandler) ResolveInvite(c *gin.Context) {
	roomID, err := h.invites.Verify(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invite"})
		return
	}

	room, err := lookupActiveRoom(c.Request.Context(), h.cache, h.db, roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room does not exist"})
		return
	}

	c.JSON(http.StatusOK, dto.InviteResponse{
		RoomID:   room.ID,
		RoomName: room.Name,
		Mode:     room.Mode,
	})
}

func (h *RoomHandler) baseURL(c *gin.Context) string {
	if h.publicURL != "" {
		return strings.TrimRight(h.publicURL, "/")
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

// newRoomID mints an opaque room token, e.g. "room_9f3ab21c".
func newRoomID() string {
	return "room_" + strings.Split(uuid.NewString(), "-")[0]
}

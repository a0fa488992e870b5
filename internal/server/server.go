package server

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/wkalinowski/huddle/internal/cache"
	"github.com/wkalinowski/huddle/internal/database"
	"github.com/wkalinowski/huddle/internal/directory"
	"github.com/wkalinowski/huddle/internal/handlers"
	"github.com/wkalinowski/huddle/internal/registry"
	ws "github.com/wkalinowski/huddle/internal/websocket"
	"github.com/wkalinowski/huddle/pkg/auth"
)

const defaultCacheTTL = 5 * time.Minute

type Server struct {
	Router  *gin.Engine
	DB      *database.Database
	Redis   *redis.Client
	Hub     *ws.Hub
	Session *handlers.SessionHandler
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	ttl := defaultCacheTTL
	if raw := os.Getenv("ROOM_CACHE_TTL"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}
	roomCache := cache.NewRoomCache(rdb, ttl)

	invites := auth.NewInviteManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := ws.NewHub()
	reg := registry.NewRegistry()
	dir := directory.NewDirectory()

	session := handlers.NewSessionHandler(dbConn, roomCache, reg, dir, hub)
	roomH := handlers.NewRoomHandler(dbConn, roomCache, invites, os.Getenv("PUBLIC_URL"))
	configH := handlers.NewConfigHandler()
	wsH := handlers.NewWebSocketHandler(hub, session)

	router := gin.Default()
	APIEndpoints(router, roomH, configH, wsH)

	return &Server{
		Router:  router,
		DB:      dbConn,
		Redis:   rdb,
		Hub:     hub,
		Session: session,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}

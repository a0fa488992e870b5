// Package cache keeps a short-lived Redis copy of durable room records so the
// join path and room lookups don't hit Postgres on every request.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/wkalinowski/huddle/internal/models"
)

const keyPrefix = "room:"

type RoomCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRoomCache(rdb *redis.Client, ttl time.Duration) *RoomCache {
	return &RoomCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached room, or (nil, nil) on a miss. Redis errors are
// returned so callers can log them and fall through to the store.
func (c *RoomCache) Get(ctx context.Context, roomID string) (*models.Room, error) {
	data, err := c.rdb.Get(ctx, keyPrefix+roomID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var room models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *RoomCache) Set(ctx context.Context, room *models.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+room.ID, data, c.ttl).Err()
}

func (c *RoomCache) Invalidate(ctx context.Context, roomID string) error {
	return c.rdb.Del(ctx, keyPrefix+roomID).Err()
}

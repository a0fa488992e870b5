package models

import (
	"time"
)

// Participant is a join-history row. It records that a username joined a room
// at some point; it is never deleted and does not reflect live presence.
type Participant struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID   string    `gorm:"not null;index" json:"room_id"`
	Username string    `gorm:"not null" json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}
